package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

const sourceRunDouble = "rundouble"

type Run struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"startedAt"`
	DistanceKm      float64   `json:"distanceKm"`
	DurationSeconds float64   `json:"durationSeconds"`
	Plan            string    `json:"plan,omitempty"`
}

// PaceMinPerKm is the average pace of the run, 0 without a distance.
func (r Run) PaceMinPerKm() float64 {
	if r.DistanceKm <= 0 {
		return 0
	}
	return r.DurationSeconds / 60 / r.DistanceKm
}

type RunDouble struct {
	baseURL string
	fetcher *Fetcher
}

func NewRunDouble(baseURL string, fetcher *Fetcher) *RunDouble {
	return &RunDouble{
		baseURL: baseURL,
		fetcher: fetcher,
	}
}

// Runs returns the user's runs started in [from, to).
func (r *RunDouble) Runs(ctx context.Context, userID string, from, to time.Time) ([]Run, error) {
	if r.baseURL == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("from", from.UTC().Format(time.RFC3339))
	q.Set("to", to.UTC().Format(time.RFC3339))
	reqURL := fmt.Sprintf("%s/users/%s/runs?%s", r.baseURL, url.PathEscape(userID), q.Encode())

	var runs []Run
	if err := r.fetcher.FetchJSON(ctx, sourceRunDouble, reqURL, &runs); err != nil {
		return nil, err
	}

	inRange := runs[:0]
	for _, run := range runs {
		if !run.StartedAt.Before(from) && run.StartedAt.Before(to) {
			inRange = append(inRange, run)
		}
	}
	return inRange, nil
}
