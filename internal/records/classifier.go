package records

import (
	"math"
	"time"

	"github.com/2beens/qsdiary/internal/catalog"
	"github.com/2beens/qsdiary/internal/workouts"
)

const (
	oneYear     = 365 * 24 * time.Hour
	threeMonths = 90 * 24 * time.Hour
)

// Result tells at which horizons a set is a personal record.
type Result struct {
	AllTimePR    bool `json:"allTimePR"`
	OneYearPR    bool `json:"oneYearPR"`
	ThreeMonthPR bool `json:"threeMonthPR"`
}

func (r Result) Any() bool {
	return r.AllTimePR || r.OneYearPR || r.ThreeMonthPR
}

// Target points at one set: Workout.Exercises[ExerciseIndex].Sets[SetIndex].
type Target struct {
	// Date the horizons are measured from; the workout's date when zero.
	Date          time.Time
	Workout       workouts.Workout
	Preceding     []workouts.Workout
	ExerciseID    int
	ExerciseIndex int
	SetIndex      int
}

// Classify checks the target set against every earlier set of the same
// exercise: sets in preceding workouts and sets logged before it in its own
// workout. A set stops being a record at a horizon once an earlier set inside
// that horizon dominates it.
func Classify(cat *catalog.Catalog, target Target) Result {
	if catalog.IsClimbingExercise(target.ExerciseID) {
		return Result{}
	}
	def, ok := cat.Get(target.ExerciseID)
	if !ok {
		return Result{}
	}

	w := target.Workout
	if target.ExerciseIndex < 0 || target.ExerciseIndex >= len(w.Exercises) {
		return Result{}
	}
	ex := w.Exercises[target.ExerciseIndex]
	if ex.ExerciseID != target.ExerciseID || target.SetIndex < 0 || target.SetIndex >= len(ex.Sets) {
		return Result{}
	}

	cmp := newComparator(def)
	set := ex.Sets[target.SetIndex]
	if !cmp.hasValue(set) {
		return Result{}
	}

	date := target.Date
	if date.IsZero() {
		date = w.WorkedOutAt
	}

	res := Result{AllTimePR: true, OneYearPR: true, ThreeMonthPR: true}

	// earlier sets of the same workout, by position
	for ei := 0; ei <= target.ExerciseIndex; ei++ {
		candidate := w.Exercises[ei]
		if candidate.ExerciseID != target.ExerciseID {
			continue
		}
		setsBefore := len(candidate.Sets)
		if ei == target.ExerciseIndex {
			setsBefore = target.SetIndex
		}
		for si := 0; si < setsBefore; si++ {
			if cmp.dominates(candidate.Sets[si], set) {
				return Result{}
			}
		}
	}

	for _, pw := range target.Preceding {
		if pw.Deleted() || pw.ID == w.ID || !pw.WorkedOutAt.Before(w.WorkedOutAt) {
			continue
		}

		age := date.Sub(pw.WorkedOutAt)
		for _, candidate := range pw.Exercises {
			if candidate.ExerciseID != target.ExerciseID {
				continue
			}
			for _, candidateSet := range candidate.Sets {
				if !cmp.dominates(candidateSet, set) {
					continue
				}
				res.AllTimePR = false
				if age <= oneYear {
					res.OneYearPR = false
				}
				if age <= threeMonths {
					res.ThreeMonthPR = false
				}
				if !res.Any() {
					return res
				}
			}
		}
	}

	return res
}

type comparator struct {
	slots []slot
}

type slot struct {
	index         int
	lowerIsBetter bool
}

func newComparator(def catalog.Exercise) comparator {
	c := comparator{}
	for i, in := range def.Inputs {
		// options are categorical, nothing to rank
		if in.Type == catalog.InputOptions {
			continue
		}
		c.slots = append(c.slots, slot{index: i, lowerIsBetter: in.Type.LowerIsBetter()})
	}
	return c
}

// hasValue is false for sets where every comparable input is zero, NaN or
// missing.
func (c comparator) hasValue(set workouts.Set) bool {
	for _, s := range c.slots {
		if s.index >= len(set.Inputs) {
			continue
		}
		v := set.InputValue(s.index)
		if !math.IsNaN(v) && v != 0 {
			return true
		}
	}
	return false
}

// dominates reports whether candidate is at least as good as target on every
// comparable input, each input ranked in its own direction.
func (c comparator) dominates(candidate, target workouts.Set) bool {
	if len(c.slots) == 0 || !c.hasValue(candidate) {
		return false
	}
	for _, s := range c.slots {
		if s.index >= len(candidate.Inputs) {
			return false
		}
		cv := candidate.InputValue(s.index)
		tv := target.InputValue(s.index)
		if math.IsNaN(cv) {
			return false
		}
		if math.IsNaN(tv) {
			tv = 0
		}
		if s.lowerIsBetter {
			// a zero time or pace was not measured
			if cv == 0 || (tv != 0 && cv > tv) {
				return false
			}
			continue
		}
		if cv < tv {
			return false
		}
	}
	return true
}
