package catalog

import (
	"fmt"
	"slices"
	"strings"
)

type InputType string

const (
	InputReps         InputType = "reps"
	InputWeight       InputType = "weight"
	InputWeightassist InputType = "weightassist"
	InputTime         InputType = "time"
	InputDistance     InputType = "distance"
	InputPace         InputType = "pace"
	InputOptions      InputType = "options"
	InputGrade        InputType = "grade"
	InputAngle        InputType = "angle"
	InputPercent      InputType = "percent"
)

var inputTypes = []InputType{
	InputReps, InputWeight, InputWeightassist, InputTime, InputDistance,
	InputPace, InputOptions, InputGrade, InputAngle, InputPercent,
}

// LowerIsBetter is true for inputs where a smaller value is the better
// performance (faster pace, shorter time).
func (t InputType) LowerIsBetter() bool {
	return t == InputPace || t == InputTime
}

func (t *InputType) UnmarshalText(text []byte) error {
	v := InputType(strings.ToLower(string(text)))
	if !slices.Contains(inputTypes, v) {
		return fmt.Errorf("unknown input type: %q", text)
	}
	*t = v
	return nil
}

type Unit string

const (
	UnitNone  Unit = ""
	UnitKg    Unit = "kg"
	UnitLbs   Unit = "lbs"
	UnitSec   Unit = "sec"
	UnitMin   Unit = "min"
	UnitM     Unit = "m"
	UnitKm    Unit = "km"
	UnitMinKm Unit = "min/km"
	UnitDeg   Unit = "deg"
	UnitPct   Unit = "pct"
)

type Tag string

const (
	TagBarbell    Tag = "barbell"
	TagDumbbell   Tag = "dumbbell"
	TagKettlebell Tag = "kettlebell"
	TagMachine    Tag = "machine"
	TagCable      Tag = "cable"
	TagBodyweight Tag = "bodyweight"

	TagLegs      Tag = "legs"
	TagChest     Tag = "chest"
	TagBack      Tag = "back"
	TagShoulders Tag = "shoulders"
	TagArms      Tag = "arms"
	TagCore      Tag = "core"
	TagFingers   Tag = "fingers"

	TagStrength Tag = "strength"
	TagCardio   Tag = "cardio"
	TagRunning  Tag = "running"
	TagClimbing Tag = "climbing"
)

type Input struct {
	Type    InputType `toml:"type" json:"type"`
	Unit    Unit      `toml:"unit" json:"unit,omitempty"`
	Options []string  `toml:"options" json:"options,omitempty"`
}

type Exercise struct {
	ID      int      `toml:"id" json:"id"`
	Name    string   `toml:"name" json:"name"`
	Aliases []string `toml:"aliases" json:"aliases,omitempty"`
	Inputs  []Input  `toml:"inputs" json:"inputs"`
	Tags    []Tag    `toml:"tags" json:"tags,omitempty"`
}

// InputIndex returns the position of the first input whose type is one of
// types, or -1.
func (e Exercise) InputIndex(types ...InputType) int {
	for i, in := range e.Inputs {
		if slices.Contains(types, in.Type) {
			return i
		}
	}
	return -1
}

func (e Exercise) HasTag(tag Tag) bool {
	return slices.Contains(e.Tags, tag)
}

// IsBarbell marks exercises loaded with fixed plates, whose prescribed weight
// gets rounded.
func (e Exercise) IsBarbell() bool {
	return e.HasTag(TagBarbell)
}

// IsClimbingExercise reports the exercises that track climbing problems
// (grades, tops, flashes) and never go through the weight/reps path.
func IsClimbingExercise(id int) bool {
	switch id {
	case 2001, 2003, 2004, 2008:
		return true
	default:
		return false
	}
}

func (e Exercise) clone() Exercise {
	c := e
	c.Aliases = slices.Clone(e.Aliases)
	c.Tags = slices.Clone(e.Tags)
	c.Inputs = make([]Input, len(e.Inputs))
	for i, in := range e.Inputs {
		c.Inputs[i] = in
		c.Inputs[i].Options = slices.Clone(in.Options)
	}
	return c
}
