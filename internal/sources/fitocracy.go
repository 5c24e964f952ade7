package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/2beens/qsdiary/internal/catalog"
	"github.com/2beens/qsdiary/internal/workouts"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const sourceFitocracy = "fitocracy"

// fitocracyNamespace seeds the ids of ingested workouts, so the same remote
// workout always lands on the same row.
var fitocracyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://www.fitocracy.com/workouts"))

type FitocracySet struct {
	Reps       float64 `json:"reps"`
	WeightKg   float64 `json:"weightKg"`
	Seconds    float64 `json:"seconds"`
	DistanceKm float64 `json:"distanceKm"`
	Assisted   bool    `json:"assisted"`
	Note       string  `json:"note"`
}

type FitocracyAction struct {
	Exercise string         `json:"exercise"`
	Sets     []FitocracySet `json:"sets"`
}

type FitocracyWorkout struct {
	ID          string            `json:"id"`
	PerformedAt time.Time         `json:"performedAt"`
	Actions     []FitocracyAction `json:"actions"`
}

type Fitocracy struct {
	baseURL string
	fetcher *Fetcher
	catalog *catalog.Catalog
}

func NewFitocracy(baseURL string, fetcher *Fetcher, cat *catalog.Catalog) *Fitocracy {
	return &Fitocracy{
		baseURL: baseURL,
		fetcher: fetcher,
		catalog: cat,
	}
}

// Workouts fetches the user's Fitocracy workouts performed in [from, to) and
// normalizes them into workouts of source fitocracy.
func (f *Fitocracy) Workouts(ctx context.Context, userID string, from, to time.Time) ([]workouts.Workout, error) {
	if f.baseURL == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("from", from.UTC().Format(time.RFC3339))
	q.Set("to", to.UTC().Format(time.RFC3339))
	reqURL := fmt.Sprintf("%s/users/%s/workouts?%s", f.baseURL, url.PathEscape(userID), q.Encode())

	var remote []FitocracyWorkout
	if err := f.fetcher.FetchJSON(ctx, sourceFitocracy, reqURL, &remote); err != nil {
		return nil, err
	}

	normalized := make([]workouts.Workout, 0, len(remote))
	for _, rw := range remote {
		if rw.PerformedAt.Before(from) || !rw.PerformedAt.Before(to) {
			continue
		}
		normalized = append(normalized, f.normalize(userID, rw))
	}
	return normalized, nil
}

func (f *Fitocracy) normalize(userID string, rw FitocracyWorkout) workouts.Workout {
	w := workouts.Workout{
		ID:          uuid.NewSHA1(fitocracyNamespace, []byte(userID+"/"+rw.ID)).String(),
		UserID:      userID,
		Source:      workouts.SourceFitocracy,
		WorkedOutAt: rw.PerformedAt,
	}

	for _, action := range rw.Actions {
		def, ok := f.catalog.Lookup(action.Exercise)
		if !ok {
			log.Debugf("fitocracy workout %s: unknown exercise %q skipped", rw.ID, action.Exercise)
			continue
		}

		ex := workouts.Exercise{
			ExerciseID:  def.ID,
			DisplayName: action.Exercise,
			Sets:        make([]workouts.Set, 0, len(action.Sets)),
		}
		for _, s := range action.Sets {
			ex.Sets = append(ex.Sets, fitocracySet(def, s))
		}
		w.Exercises = append(w.Exercises, ex)
	}
	return w
}

func fitocracySet(def catalog.Exercise, s FitocracySet) workouts.Set {
	set := workouts.Set{
		Inputs:  make([]workouts.Input, len(def.Inputs)),
		Comment: s.Note,
	}
	for i, in := range def.Inputs {
		set.Inputs[i].Unit = string(in.Unit)
		switch in.Type {
		case catalog.InputReps:
			set.Inputs[i].Value = s.Reps
		case catalog.InputWeight:
			set.Inputs[i].Value = s.WeightKg
		case catalog.InputWeightassist:
			set.Inputs[i].Value = s.WeightKg
			if s.WeightKg > 0 {
				set.Inputs[i].AssistType = workouts.AssistWeighted
				if s.Assisted {
					set.Inputs[i].AssistType = workouts.AssistAssisted
				}
			}
		case catalog.InputTime:
			set.Inputs[i].Value = s.Seconds
			if in.Unit == catalog.UnitMin {
				set.Inputs[i].Value = s.Seconds / 60
			}
		case catalog.InputDistance:
			set.Inputs[i].Value = s.DistanceKm
			if in.Unit == catalog.UnitM {
				set.Inputs[i].Value = s.DistanceKm * 1000
			}
		}
	}
	return set
}
