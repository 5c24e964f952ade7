package workouts

import (
	"math"

	"github.com/2beens/qsdiary/internal/catalog"
)

const (
	outcomeAttempt = iota
	outcomeZone
	outcomeTop
	outcomeFlash
	outcomeRepeat
)

// ClimbingProblemResult is the outcome of one climbing problem, derived from a
// climbing set. It is never persisted.
type ClimbingProblemResult struct {
	Attempt bool    `json:"attempt"`
	Zone    bool    `json:"zone"`
	Top     bool    `json:"top"`
	Flash   bool    `json:"flash"`
	Repeat  bool    `json:"repeat"`
	Grade   float64 `json:"grade"`
	Color   string  `json:"color,omitempty"`
	Angle   float64 `json:"angle,omitempty"`
}

// OutcomeResult maps an outcome index (attempt, zone, top, flash, repeat) to
// its flags. A flash or repeat is also a top, a top is also a zone.
func OutcomeResult(outcome int) ClimbingProblemResult {
	return ClimbingProblemResult{
		Attempt: true,
		Zone:    outcome >= outcomeZone,
		Top:     outcome >= outcomeTop,
		Flash:   outcome == outcomeFlash,
		Repeat:  outcome == outcomeRepeat,
	}
}

// ClimbingResult reads a climbing set through the definition's grade, angle
// and options inputs.
func ClimbingResult(def catalog.Exercise, set Set) (ClimbingProblemResult, bool) {
	if !catalog.IsClimbingExercise(def.ID) {
		return ClimbingProblemResult{}, false
	}

	optionsIdx := def.InputIndex(catalog.InputOptions)
	if optionsIdx < 0 || optionsIdx >= len(set.Inputs) {
		return ClimbingProblemResult{}, false
	}
	outcome := set.Inputs[optionsIdx].Value
	if math.IsNaN(outcome) || outcome < outcomeAttempt || outcome > outcomeRepeat {
		return ClimbingProblemResult{}, false
	}

	res := OutcomeResult(int(outcome))
	if i := def.InputIndex(catalog.InputGrade); i >= 0 {
		res.Grade = set.InputValue(i)
	}
	if i := def.InputIndex(catalog.InputAngle); i >= 0 {
		res.Angle = set.InputValue(i)
	}
	return res, true
}
