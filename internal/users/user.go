package users

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/qsdiary/internal/dates"
)

const UserIDHeader = "X-User-ID"

var ErrInvalidSchedule = errors.New("invalid exercise schedule")

// ExerciseSchedule configures the progression of one exercise: what a working
// set is, how the weight moves after success or failure, and how often the
// exercise is due.
type ExerciseSchedule struct {
	ExerciseID   int            `json:"exerciseId"`
	Enabled      bool           `json:"enabled"`
	WorkingSets  int            `json:"workingSets"`
	WorkingReps  int            `json:"workingReps"`
	BaseWeight   float64        `json:"baseWeight"`
	Increment    float64        `json:"increment"`
	DeloadFactor float64        `json:"deloadFactor"`
	Frequency    dates.Duration `json:"frequency"`
}

func (s ExerciseSchedule) Validate() error {
	if s.ExerciseID <= 0 {
		return fmt.Errorf("%w: exercise id %d", ErrInvalidSchedule, s.ExerciseID)
	}
	if s.WorkingSets < 0 || s.WorkingReps < 0 {
		return fmt.Errorf("%w: negative working sets/reps", ErrInvalidSchedule)
	}
	if s.DeloadFactor < 0 || s.DeloadFactor > 1 {
		return fmt.Errorf("%w: deload factor %v not in [0, 1]", ErrInvalidSchedule, s.DeloadFactor)
	}
	if s.BaseWeight < 0 || s.Increment < 0 {
		return fmt.Errorf("%w: negative base weight or increment", ErrInvalidSchedule)
	}
	return nil
}

type User struct {
	ID                string             `json:"id"`
	TimeZone          string             `json:"timeZone"`
	ExerciseSchedules []ExerciseSchedule `json:"exerciseSchedules"`
}

// Location resolves the user's IANA time zone, UTC if unset or unknown.
func (u User) Location() *time.Location {
	if u.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// EnabledSchedules keeps the entries taking part in scheduling.
func (u User) EnabledSchedules() []ExerciseSchedule {
	enabled := make([]ExerciseSchedule, 0, len(u.ExerciseSchedules))
	for _, s := range u.ExerciseSchedules {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

// RequestUserID reads the user the request acts for. Identity is established
// upstream of this service.
func RequestUserID(r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
	return userID, userID != ""
}
