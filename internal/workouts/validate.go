package workouts

import (
	"errors"
	"fmt"
	"math"

	"github.com/2beens/qsdiary/internal/catalog"

	"go.uber.org/multierr"
)

var (
	ErrInvalidWorkout  = errors.New("invalid workout")
	ErrUnknownExercise = errors.New("unknown exercise")
	ErrInputMismatch   = errors.New("set inputs do not match exercise inputs")
	ErrInvalidInput    = errors.New("invalid input value")
)

// Validate checks a workout before it is stored. Sets must carry exactly one
// input per definition input, so the classifier and scheduler can rely on
// positional alignment. All violations are returned together.
func Validate(cat *catalog.Catalog, w Workout) error {
	var err error
	if w.UserID == "" {
		err = multierr.Append(err, fmt.Errorf("%w: missing user id", ErrInvalidWorkout))
	}
	if w.WorkedOutAt.IsZero() {
		err = multierr.Append(err, fmt.Errorf("%w: missing worked out at", ErrInvalidWorkout))
	}
	if !w.Source.Valid() {
		err = multierr.Append(err, fmt.Errorf("%w: source %q", ErrInvalidWorkout, w.Source))
	}

	for ei, ex := range w.Exercises {
		def, ok := cat.Get(ex.ExerciseID)
		if !ok {
			err = multierr.Append(err, fmt.Errorf("exercise #%d: %w: %d", ei, ErrUnknownExercise, ex.ExerciseID))
			continue
		}
		for si, set := range ex.Sets {
			if len(set.Inputs) != len(def.Inputs) {
				err = multierr.Append(err, fmt.Errorf(
					"exercise #%d set #%d: %w: got %d, want %d",
					ei, si, ErrInputMismatch, len(set.Inputs), len(def.Inputs),
				))
				continue
			}
			for ii, in := range set.Inputs {
				if inputErr := validateInput(def.Inputs[ii], in); inputErr != nil {
					err = multierr.Append(err, fmt.Errorf("exercise #%d set #%d input #%d: %w", ei, si, ii, inputErr))
				}
			}
		}
	}

	return err
}

func validateInput(def catalog.Input, in Input) error {
	if math.IsNaN(in.Value) || math.IsInf(in.Value, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, in.Value)
	}
	if in.Value < 0 {
		return fmt.Errorf("%w: negative %s %v", ErrInvalidInput, def.Type, in.Value)
	}
	switch in.AssistType {
	case AssistNone:
	case AssistAssisted, AssistWeighted:
		if def.Type != catalog.InputWeightassist {
			return fmt.Errorf("%w: assist type on %s input", ErrInvalidInput, def.Type)
		}
	default:
		return fmt.Errorf("%w: assist type %q", ErrInvalidInput, in.AssistType)
	}
	if def.Type == catalog.InputOptions && len(def.Options) > 0 && int(in.Value) >= len(def.Options) {
		return fmt.Errorf("%w: option %v out of range", ErrInvalidInput, in.Value)
	}
	return nil
}
