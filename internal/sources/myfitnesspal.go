package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

const sourceMyFitnessPal = "myfitnesspal"

type FoodEntry struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Meal     string    `json:"meal"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
	EatenAt  time.Time `json:"eatenAt"`
}

type MyFitnessPal struct {
	baseURL string
	fetcher *Fetcher
}

func NewMyFitnessPal(baseURL string, fetcher *Fetcher) *MyFitnessPal {
	return &MyFitnessPal{
		baseURL: baseURL,
		fetcher: fetcher,
	}
}

// FoodEntries returns the user's diary food entries eaten in [from, to).
func (m *MyFitnessPal) FoodEntries(ctx context.Context, userID string, from, to time.Time) ([]FoodEntry, error) {
	if m.baseURL == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("from", from.UTC().Format(time.RFC3339))
	q.Set("to", to.UTC().Format(time.RFC3339))
	reqURL := fmt.Sprintf("%s/users/%s/food-entries?%s", m.baseURL, url.PathEscape(userID), q.Encode())

	var entries []FoodEntry
	if err := m.fetcher.FetchJSON(ctx, sourceMyFitnessPal, reqURL, &entries); err != nil {
		return nil, err
	}

	inRange := entries[:0]
	for _, e := range entries {
		if !e.EatenAt.Before(from) && e.EatenAt.Before(to) {
			inRange = append(inRange, e)
		}
	}
	return inRange, nil
}
