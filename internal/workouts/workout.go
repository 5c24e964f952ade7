package workouts

import (
	"time"
)

type AssistType string

const (
	AssistNone     AssistType = ""
	AssistAssisted AssistType = "assisted"
	AssistWeighted AssistType = "weighted"
)

type Input struct {
	Value      float64    `json:"value"`
	Unit       string     `json:"unit,omitempty"`
	AssistType AssistType `json:"assistType,omitempty"`
}

// EffectiveValue applies the assist sign convention: assistance counts as
// negative load.
func (in Input) EffectiveValue() float64 {
	if in.AssistType == AssistAssisted {
		return -in.Value
	}
	return in.Value
}

type Set struct {
	Inputs    []Input    `json:"inputs"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Comment   string     `json:"comment,omitempty"`
}

// InputValue returns the effective value at position i. Out of range positions
// read as zero.
func (s Set) InputValue(i int) float64 {
	if i < 0 || i >= len(s.Inputs) {
		return 0
	}
	return s.Inputs[i].EffectiveValue()
}

type Exercise struct {
	ExerciseID  int    `json:"exerciseId"`
	Sets        []Set  `json:"sets"`
	DisplayName string `json:"displayName,omitempty"`
	Comment     string `json:"comment,omitempty"`
}

type Workout struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Exercises   []Exercise `json:"exercises"`
	WorkedOutAt time.Time  `json:"workedOutAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	Source      Source     `json:"source"`
	LocationID  string     `json:"locationId,omitempty"`
}

func (w Workout) Deleted() bool {
	return w.DeletedAt != nil
}

// ExerciseIDs lists the distinct exercises of the workout, in order of first
// appearance.
func (w Workout) ExerciseIDs() []int {
	ids := make([]int, 0, len(w.Exercises))
	seen := make(map[int]struct{}, len(w.Exercises))
	for _, ex := range w.Exercises {
		if _, ok := seen[ex.ExerciseID]; ok {
			continue
		}
		seen[ex.ExerciseID] = struct{}{}
		ids = append(ids, ex.ExerciseID)
	}
	return ids
}

// Exercise returns the first exercise entry matching exerciseID.
func (w Workout) Exercise(exerciseID int) (Exercise, bool) {
	for _, ex := range w.Exercises {
		if ex.ExerciseID == exerciseID {
			return ex, true
		}
	}
	return Exercise{}, false
}
