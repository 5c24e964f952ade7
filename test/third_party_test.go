//go:build integration_test || all_tests

package test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/qsdiary/internal/sources"

	"github.com/gorilla/mux"
)

// thirdPartyFake serves the Fitocracy, MyFitnessPal, TopLogger and RunDouble
// APIs with one record each, only for its own user.
type thirdPartyFake struct {
	userID   string
	workouts []sources.FitocracyWorkout
	food     []sources.FoodEntry
	climbs   []sources.Climb
	ascends  []map[string]any
	runs     []sources.Run
}

func newThirdPartyFake(now time.Time, userID string) *thirdPartyFake {
	return &thirdPartyFake{
		userID: userID,
		workouts: []sources.FitocracyWorkout{{
			ID:          "fito-1",
			PerformedAt: now.Add(-2 * time.Hour),
			Actions: []sources.FitocracyAction{{
				Exercise: "Squat",
				Sets: []sources.FitocracySet{
					{Reps: 5, WeightKg: 80},
					{Reps: 5, WeightKg: 82.5},
				},
			}},
		}},
		food: []sources.FoodEntry{{
			ID:       "food-1",
			Name:     "Oats",
			Meal:     "breakfast",
			Calories: 380,
			Protein:  13,
			Carbs:    60,
			Fat:      7,
			EatenAt:  now.Add(-3 * time.Hour),
		}},
		climbs: []sources.Climb{{
			ID:    "climb-1",
			Name:  "Yellow overhang",
			Grade: 6.3,
			Color: "yellow",
			Wall:  "cave",
			Angle: 30,
		}},
		ascends: []map[string]any{{
			"id":        "ascend-1",
			"climbId":   "climb-1",
			"climbedAt": now.Add(-time.Hour),
			"outcome":   3,
		}},
		runs: []sources.Run{{
			ID:              "run-1",
			StartedAt:       now.Add(-4 * time.Hour),
			DistanceKm:      5,
			DurationSeconds: 1500,
			Plan:            "5k",
		}},
	}
}

func (f *thirdPartyFake) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/fitocracy/users/{id}/workouts", f.serve(func() any { return f.workouts }))
	r.HandleFunc("/myfitnesspal/users/{id}/food-entries", f.serve(func() any { return f.food }))
	r.HandleFunc("/toplogger/users/{id}/ascends", f.serve(func() any { return f.ascends }))
	r.HandleFunc("/toplogger/users/{id}/climbs", f.serve(func() any { return f.climbs }))
	r.HandleFunc("/rundouble/users/{id}/runs", f.serve(func() any { return f.runs }))
	return r
}

func (f *thirdPartyFake) serve(payload func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if mux.Vars(r)["id"] != f.userID {
			_, _ = w.Write([]byte("[]"))
			return
		}
		_ = json.NewEncoder(w).Encode(payload())
	}
}
