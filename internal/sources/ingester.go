package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/qsdiary/internal/catalog"
	"github.com/2beens/qsdiary/internal/dates"
	"github.com/2beens/qsdiary/internal/telemetry/metrics"
	"github.com/2beens/qsdiary/internal/telemetry/tracing"
	"github.com/2beens/qsdiary/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=ingester_mocks_test.go -package=sources_test

type workoutsStore interface {
	Upsert(ctx context.Context, w workouts.Workout) error
}

type usersLister interface {
	IDs(ctx context.Context) ([]string, error)
}

type fitocracyClient interface {
	Workouts(ctx context.Context, userID string, from, to time.Time) ([]workouts.Workout, error)
}

// Ingester periodically copies recent Fitocracy workouts of every user into
// the workouts store.
type Ingester struct {
	store          workoutsStore
	users          usersLister
	fitocracy      fitocracyClient
	catalog        *catalog.Catalog
	metricsManager *metrics.Manager
	interval       time.Duration
	lookback       time.Duration
}

func NewIngester(
	store workoutsStore,
	users usersLister,
	fitocracy fitocracyClient,
	cat *catalog.Catalog,
	metricsManager *metrics.Manager,
	interval, lookback time.Duration,
) *Ingester {
	return &Ingester{
		store:          store,
		users:          users,
		fitocracy:      fitocracy,
		catalog:        cat,
		metricsManager: metricsManager,
		interval:       interval,
		lookback:       lookback,
	}
}

// Run ingests once right away and then on every tick, until ctx is done.
func (i *Ingester) Run(ctx context.Context) {
	log.Infof("fitocracy ingester started, interval %s, lookback %s", i.interval, i.lookback)

	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		if ingested, err := i.IngestOnce(ctx, time.Now()); err != nil {
			log.Errorf("fitocracy ingest: %s", err)
		} else {
			log.Debugf("fitocracy ingest done, %d workouts stored", ingested)
		}

		select {
		case <-ctx.Done():
			log.Infoln("fitocracy ingester stopped")
			return
		case <-ticker.C:
		}
	}
}

// IngestOnce stores the Fitocracy workouts of the last lookback period. A user
// whose workouts cannot be fetched is skipped, so are workouts failing
// validation. Store failures abort the run.
func (i *Ingester) IngestOnce(ctx context.Context, now time.Time) (ingested int, err error) {
	ctx, span := tracing.GlobalIngestTracer.Start(ctx, "sources.ingester.ingestOnce")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := time.Now()
	defer func() {
		i.metricsManager.HistIngestDuration.Observe(time.Since(start).Seconds())
	}()

	userIDs, err := i.users.IDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	from, to := IngestWindow(now, i.lookback)
	span.SetAttributes(
		attribute.String("window.from", from.Format(time.RFC3339)),
		attribute.String("window.to", to.Format(time.RFC3339)),
	)
	for _, userID := range userIDs {
		fetched, err := i.fitocracy.Workouts(ctx, userID, from, to)
		if err != nil {
			log.Warnf("fitocracy ingest, user [%s]: %s", userID, err)
			continue
		}

		for _, w := range fetched {
			if err := workouts.Validate(i.catalog, w); err != nil {
				log.Warnf("fitocracy ingest, user [%s], workout %s skipped: %s", userID, w.ID, err)
				continue
			}
			if err := i.store.Upsert(ctx, w); err != nil {
				return ingested, fmt.Errorf("upsert workout %s: %w", w.ID, err)
			}
			ingested++
			i.metricsManager.CounterIngestedWorkouts.WithLabelValues(string(w.Source)).Inc()
		}
	}

	span.SetAttributes(attribute.Int("ingested", ingested))
	return ingested, nil
}

// IngestWindow returns the period fetched by a run at now. It ends at the next
// UTC midnight, so all runs of one day request the same URLs and share the
// last good copy kept by the fetcher.
func IngestWindow(now time.Time, lookback time.Duration) (from, to time.Time) {
	to = dates.StartOfDay(now, time.UTC).AddDate(0, 0, 1)
	return to.Add(-lookback), to
}
