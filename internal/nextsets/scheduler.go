package nextsets

import (
	"math"
	"time"

	"github.com/2beens/qsdiary/internal/catalog"
	"github.com/2beens/qsdiary/internal/dates"
	"github.com/2beens/qsdiary/internal/users"
	"github.com/2beens/qsdiary/internal/workouts"
)

// Compute derives the next prescription of one schedule entry from the last
// workout containing its exercise (nil when there is none). It never fails:
// anything it cannot reason about yields NaN numbers.
func Compute(cat *catalog.Catalog, entry users.ExerciseSchedule, last *workouts.Workout) Prescription {
	if catalog.IsClimbingExercise(entry.ExerciseID) {
		p := nanPrescription(entry)
		p.Successful = true
		if last != nil {
			p.WorkedOutAt = &last.WorkedOutAt
		}
		return p
	}

	def, ok := cat.Get(entry.ExerciseID)
	if !ok {
		return nanPrescription(entry)
	}
	weightIdx := def.InputIndex(catalog.InputWeight, catalog.InputWeightassist)
	repsIdx := def.InputIndex(catalog.InputReps)
	if weightIdx < 0 || repsIdx < 0 {
		return nanPrescription(entry)
	}

	p := Prescription{
		ExerciseID:            entry.ExerciseID,
		NextWorkingSets:       float64(entry.WorkingSets),
		NextWorkingSetsReps:   float64(entry.WorkingReps),
		NextWorkingSetsWeight: entry.BaseWeight,
		ScheduleEntry:         entry,
	}
	if last == nil {
		return p
	}
	p.WorkedOutAt = &last.WorkedOutAt

	var sets []workouts.Set
	for _, ex := range last.Exercises {
		if ex.ExerciseID == entry.ExerciseID {
			sets = append(sets, ex.Sets...)
		}
	}

	workingReps := float64(entry.WorkingReps)
	heaviest, found := math.Inf(-1), false
	for _, s := range sets {
		reps, weight := s.InputValue(repsIdx), s.InputValue(weightIdx)
		if math.IsNaN(reps) || math.IsNaN(weight) || reps < workingReps {
			continue
		}
		if weight > heaviest {
			heaviest, found = weight, true
		}
	}
	var working []workouts.Set
	if found {
		for _, s := range sets {
			if s.InputValue(weightIdx) == heaviest {
				working = append(working, s)
			}
		}
	} else {
		// no set reached the working reps: a failed session at the base weight
		heaviest = entry.BaseWeight
	}

	successful := len(working) > 0 && len(working) >= entry.WorkingSets
	for _, s := range working {
		if s.InputValue(repsIdx) < workingReps {
			successful = false
			break
		}
	}
	p.Successful = successful

	var goal float64
	switch {
	case successful && working[len(working)-1].InputValue(repsIdx) == 2*workingReps:
		goal = heaviest + 2*entry.Increment
	case successful:
		goal = heaviest + entry.Increment
	default:
		goal = heaviest * entry.DeloadFactor
	}

	if def.IsBarbell() {
		if whole := math.Floor(goal); goal-whole < 0.5 {
			goal = whole
		}
	}
	p.NextWorkingSetsWeight = goal

	return p
}

// IsDue reports whether the frequency has passed between the day of the last
// workout and the day of asOf, both taken in loc. Without history an entry is
// always due.
func IsDue(asOf time.Time, last *time.Time, frequency dates.Duration, loc *time.Location) bool {
	if last == nil {
		return true
	}
	return frequency.Covers(dates.DaysBetween(*last, asOf, loc))
}
