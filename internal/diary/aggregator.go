package diary

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/2beens/qsdiary/internal/dates"
	"github.com/2beens/qsdiary/internal/sources"
	"github.com/2beens/qsdiary/internal/telemetry/metrics"
	"github.com/2beens/qsdiary/internal/telemetry/tracing"
	"github.com/2beens/qsdiary/internal/users"
	"github.com/2beens/qsdiary/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=aggregator_mocks_test.go -package=diary_test

type workoutsRepo interface {
	Find(ctx context.Context, filter workouts.Filter) ([]workouts.Workout, error)
}

type foodSource interface {
	FoodEntries(ctx context.Context, userID string, from, to time.Time) ([]sources.FoodEntry, error)
}

type ascendsSource interface {
	Ascends(ctx context.Context, userID string, from, to time.Time) ([]sources.Ascend, error)
}

type runsSource interface {
	Runs(ctx context.Context, userID string, from, to time.Time) ([]sources.Run, error)
}

// Entry holds everything recorded on one calendar day. The order inside each
// slice is not defined.
type Entry struct {
	Workouts []workouts.Workout  `json:"workouts,omitempty"`
	Food     []sources.FoodEntry `json:"food,omitempty"`
	Ascends  []sources.Ascend    `json:"ascends,omitempty"`
	Runs     []sources.Run       `json:"runs,omitempty"`
}

type Day struct {
	Key   string    `json:"dayKey"`
	Date  time.Time `json:"date"`
	Entry Entry     `json:"entry"`
}

// Aggregator merges the records of every source into per day entries. Third
// party sources are optional: a nil source contributes nothing.
type Aggregator struct {
	repo           workoutsRepo
	food           foodSource
	ascends        ascendsSource
	runs           runsSource
	metricsManager *metrics.Manager
}

func NewAggregator(
	repo workoutsRepo,
	food foodSource,
	ascends ascendsSource,
	runs runsSource,
	metricsManager *metrics.Manager,
) *Aggregator {
	return &Aggregator{
		repo:           repo,
		food:           food,
		ascends:        ascends,
		runs:           runs,
		metricsManager: metricsManager,
	}
}

type dayBuckets struct {
	mu       sync.Mutex
	loc      *time.Location
	from, to time.Time
	byKey    map[string]*Entry
}

func (b *dayBuckets) add(at time.Time, appendTo func(e *Entry)) {
	if at.Before(b.from) || !at.Before(b.to) {
		return
	}
	key := dates.DayKey(at.In(b.loc))

	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.byKey[key]
	if !ok {
		e = &Entry{}
		b.byKey[key] = e
	}
	appendTo(e)
}

// Entries returns the days in [from, to) with at least one record, newest
// day first. Days are calendar days in the user's time zone. Soft deleted
// workouts never show up. A failing third party source is logged and left
// out, a failing workouts store fails the whole call.
func (a *Aggregator) Entries(ctx context.Context, user users.User, from, to time.Time) (_ []Day, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.diary.entries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", user.ID),
		attribute.String("from", from.Format(time.RFC3339)),
		attribute.String("to", to.Format(time.RFC3339)),
	)
	a.metricsManager.CounterDiaryRequests.Inc()

	buckets := &dayBuckets{
		loc:   user.Location(),
		from:  from,
		to:    to,
		byKey: map[string]*Entry{},
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, source := range []workouts.Source{workouts.SourceSelf, workouts.SourceFitocracy} {
		g.Go(func() error {
			found, err := a.repo.Find(gCtx, workouts.Filter{
				UserID:    user.ID,
				Sources:   []workouts.Source{source},
				From:      &from,
				To:        &to,
				Ascending: true,
			})
			if err != nil {
				return fmt.Errorf("find %s workouts: %w", source, err)
			}
			for _, w := range found {
				if w.Deleted() {
					continue
				}
				buckets.add(w.WorkedOutAt, func(e *Entry) { e.Workouts = append(e.Workouts, w) })
			}
			return nil
		})
	}
	if a.food != nil {
		g.Go(func() error {
			entries, err := a.food.FoodEntries(gCtx, user.ID, from, to)
			if err != nil {
				log.Warnf("diary, user [%s]: food entries left out: %s", user.ID, err)
				return nil
			}
			for _, f := range entries {
				buckets.add(f.EatenAt, func(e *Entry) { e.Food = append(e.Food, f) })
			}
			return nil
		})
	}
	if a.ascends != nil {
		g.Go(func() error {
			ascends, err := a.ascends.Ascends(gCtx, user.ID, from, to)
			if err != nil {
				log.Warnf("diary, user [%s]: ascends left out: %s", user.ID, err)
				return nil
			}
			for _, asc := range ascends {
				buckets.add(asc.ClimbedAt, func(e *Entry) { e.Ascends = append(e.Ascends, asc) })
			}
			return nil
		})
	}
	if a.runs != nil {
		g.Go(func() error {
			runs, err := a.runs.Runs(gCtx, user.ID, from, to)
			if err != nil {
				log.Warnf("diary, user [%s]: runs left out: %s", user.ID, err)
				return nil
			}
			for _, r := range runs {
				buckets.add(r.StartedAt, func(e *Entry) { e.Runs = append(e.Runs, r) })
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	days := make([]Day, 0, len(buckets.byKey))
	for key, e := range buckets.byKey {
		date, err := dates.ParseDayKey(key, buckets.loc)
		if err != nil {
			return nil, err
		}
		days = append(days, Day{Key: key, Date: date, Entry: *e})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})

	span.SetAttributes(attribute.Int("days", len(days)))
	return days, nil
}
