package records

import (
	"context"
	"fmt"

	"github.com/2beens/qsdiary/internal/catalog"
	"github.com/2beens/qsdiary/internal/telemetry/metrics"
	"github.com/2beens/qsdiary/internal/telemetry/tracing"
	"github.com/2beens/qsdiary/internal/workouts"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=records_mocks_test.go -package=records_test

type workoutsRepo interface {
	Get(ctx context.Context, userID, id string) (*workouts.Workout, error)
	Find(ctx context.Context, filter workouts.Filter) ([]workouts.Workout, error)
}

type ExerciseRecords struct {
	ExerciseIndex int      `json:"exerciseIndex"`
	ExerciseID    int      `json:"exerciseId"`
	Sets          []Result `json:"sets"`
}

type WorkoutRecords struct {
	WorkoutID string            `json:"workoutId"`
	Exercises []ExerciseRecords `json:"exercises"`
}

type Service struct {
	repo           workoutsRepo
	catalog        *catalog.Catalog
	metricsManager *metrics.Manager
}

func NewService(repo workoutsRepo, cat *catalog.Catalog, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		catalog:        cat,
		metricsManager: metricsManager,
	}
}

// WorkoutRecords classifies every set of the workout against the user's
// history of the same exercises.
func (s *Service) WorkoutRecords(ctx context.Context, userID, workoutID string) (_ *WorkoutRecords, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.records.workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID))

	w, err := s.repo.Get(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	history := make(map[int][]workouts.Workout)
	for _, exerciseID := range w.ExerciseIDs() {
		if catalog.IsClimbingExercise(exerciseID) {
			continue
		}
		if _, ok := s.catalog.Get(exerciseID); !ok {
			continue
		}
		preceding, err := s.repo.Find(ctx, workouts.Filter{
			UserID:     userID,
			ExerciseID: exerciseID,
			Before:     &w.WorkedOutAt,
			Ascending:  true,
		})
		if err != nil {
			return nil, fmt.Errorf("find history of exercise %d: %w", exerciseID, err)
		}
		history[exerciseID] = preceding
	}

	res := &WorkoutRecords{
		WorkoutID: w.ID,
		Exercises: make([]ExerciseRecords, 0, len(w.Exercises)),
	}
	for ei, ex := range w.Exercises {
		exRecords := ExerciseRecords{
			ExerciseIndex: ei,
			ExerciseID:    ex.ExerciseID,
			Sets:          make([]Result, 0, len(ex.Sets)),
		}
		for si := range ex.Sets {
			r := Classify(s.catalog, Target{
				Workout:       *w,
				Preceding:     history[ex.ExerciseID],
				ExerciseID:    ex.ExerciseID,
				ExerciseIndex: ei,
				SetIndex:      si,
			})
			s.countRecord(r)
			exRecords.Sets = append(exRecords.Sets, r)
		}
		res.Exercises = append(res.Exercises, exRecords)
	}

	return res, nil
}

func (s *Service) countRecord(r Result) {
	if s.metricsManager == nil {
		return
	}
	if r.AllTimePR {
		s.metricsManager.CounterPersonalRecords.With(prometheus.Labels{"horizon": "all_time"}).Inc()
	}
	if r.OneYearPR {
		s.metricsManager.CounterPersonalRecords.With(prometheus.Labels{"horizon": "one_year"}).Inc()
	}
	if r.ThreeMonthPR {
		s.metricsManager.CounterPersonalRecords.With(prometheus.Labels{"horizon": "three_months"}).Inc()
	}
}
