package nextsets

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/qsdiary/internal/catalog"
	"github.com/2beens/qsdiary/internal/telemetry/tracing"
	"github.com/2beens/qsdiary/internal/users"
	"github.com/2beens/qsdiary/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=nextsets_mocks_test.go -package=nextsets_test

const maxParallelLookups = 4

type workoutsRepo interface {
	FindOne(ctx context.Context, filter workouts.Filter) (*workouts.Workout, error)
}

type Service struct {
	repo    workoutsRepo
	catalog *catalog.Catalog
}

func NewService(repo workoutsRepo, cat *catalog.Catalog) *Service {
	return &Service{
		repo:    repo,
		catalog: cat,
	}
}

// ComputeNextSets prescribes the next session of every enabled schedule entry
// of the user, based on the latest workout at or before asOf. The result is
// ordered by the date of that workout, oldest first; entries without history
// come first.
func (s *Service) ComputeNextSets(ctx context.Context, user users.User, asOf time.Time) (_ []Prescription, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nextsets.compute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries := user.EnabledSchedules()
	span.SetAttributes(attribute.String("user.id", user.ID), attribute.Int("schedule.entries", len(entries)))

	loc := user.Location()
	prescriptions := make([]Prescription, len(entries))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLookups)
	for i, entry := range entries {
		g.Go(func() error {
			if err := entry.Validate(); err != nil {
				log.Warnf("user [%s] schedule entry for exercise %d skipped: %s", user.ID, entry.ExerciseID, err)
				prescriptions[i] = nanPrescription(entry)
				return nil
			}

			last, err := s.repo.FindOne(gCtx, workouts.Filter{
				UserID:     user.ID,
				ExerciseID: entry.ExerciseID,
				AtOrBefore: &asOf,
			})
			if err != nil {
				return fmt.Errorf("find last workout of exercise %d: %w", entry.ExerciseID, err)
			}

			p := Compute(s.catalog, entry, last)
			p.Due = IsDue(asOf, p.WorkedOutAt, entry.Frequency, loc)
			prescriptions[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(prescriptions, func(i, j int) bool {
		return prescriptions[i].lastWorkedOut().Before(prescriptions[j].lastWorkedOut())
	})

	return prescriptions, nil
}
