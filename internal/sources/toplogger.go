package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/2beens/qsdiary/internal/workouts"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const sourceTopLogger = "toplogger"

type topLoggerAscend struct {
	ID        string    `json:"id"`
	ClimbID   string    `json:"climbId"`
	ClimbedAt time.Time `json:"climbedAt"`
	// Outcome is 0 attempt, 1 zone, 2 top, 3 flash, 4 repeat.
	Outcome int `json:"outcome"`
}

type Climb struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Grade float64 `json:"grade"`
	Color string  `json:"color"`
	Wall  string  `json:"wall"`
	Angle float64 `json:"angle"`
}

// Ascend is a logged TopLogger ascend joined with the climb it was made on.
type Ascend struct {
	ID        string    `json:"id"`
	ClimbedAt time.Time `json:"climbedAt"`
	Climb     Climb     `json:"climb"`
	workouts.ClimbingProblemResult
}

type TopLogger struct {
	baseURL string
	fetcher *Fetcher
}

func NewTopLogger(baseURL string, fetcher *Fetcher) *TopLogger {
	return &TopLogger{
		baseURL: baseURL,
		fetcher: fetcher,
	}
}

// Ascends returns the user's ascends climbed in [from, to), each joined with
// its climb. Ascends of climbs missing from the gym's climbs list are dropped.
func (t *TopLogger) Ascends(ctx context.Context, userID string, from, to time.Time) ([]Ascend, error) {
	if t.baseURL == "" {
		return nil, nil
	}

	var (
		remote []topLoggerAscend
		climbs []Climb
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := url.Values{}
		q.Set("from", from.UTC().Format(time.RFC3339))
		q.Set("to", to.UTC().Format(time.RFC3339))
		reqURL := fmt.Sprintf("%s/users/%s/ascends?%s", t.baseURL, url.PathEscape(userID), q.Encode())
		return t.fetcher.FetchJSON(gCtx, sourceTopLogger, reqURL, &remote)
	})
	g.Go(func() error {
		reqURL := fmt.Sprintf("%s/users/%s/climbs", t.baseURL, url.PathEscape(userID))
		return t.fetcher.FetchJSON(gCtx, sourceTopLogger, reqURL, &climbs)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return joinAscends(remote, climbs, from, to), nil
}

func joinAscends(remote []topLoggerAscend, climbs []Climb, from, to time.Time) []Ascend {
	climbsByID := make(map[string]Climb, len(climbs))
	for _, c := range climbs {
		climbsByID[c.ID] = c
	}

	ascends := make([]Ascend, 0, len(remote))
	for _, ra := range remote {
		if ra.ClimbedAt.Before(from) || !ra.ClimbedAt.Before(to) {
			continue
		}
		climb, ok := climbsByID[ra.ClimbID]
		if !ok {
			log.Debugf("toplogger ascend %s: climb %s not found", ra.ID, ra.ClimbID)
			continue
		}

		res := workouts.OutcomeResult(ra.Outcome)
		res.Grade = climb.Grade
		res.Color = climb.Color
		res.Angle = climb.Angle
		ascends = append(ascends, Ascend{
			ID:                    ra.ID,
			ClimbedAt:             ra.ClimbedAt,
			Climb:                 climb,
			ClimbingProblemResult: res,
		})
	}
	return ascends
}
