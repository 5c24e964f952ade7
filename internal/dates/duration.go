package dates

import (
	"time"
)

const (
	msPerSecond = 1000.0
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
	msPerWeek   = 7 * msPerDay
	msPerMonth  = 30.44 * msPerDay
	msPerYear   = 365.25 * msPerDay
)

// Duration is a calendar style duration as configured by users ("every 2 days",
// "every 1 week"). Components are summed, never compared field by field.
type Duration struct {
	Years   float64 `json:"years,omitempty"`
	Months  float64 `json:"months,omitempty"`
	Weeks   float64 `json:"weeks,omitempty"`
	Days    float64 `json:"days,omitempty"`
	Hours   float64 `json:"hours,omitempty"`
	Minutes float64 `json:"minutes,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
}

// Milliseconds converts d using a 365.25 day year and a 30.44 day month.
func (d Duration) Milliseconds() float64 {
	return d.Years*msPerYear +
		d.Months*msPerMonth +
		d.Weeks*msPerWeek +
		d.Days*msPerDay +
		d.Hours*msPerHour +
		d.Minutes*msPerMinute +
		d.Seconds*msPerSecond
}

func (d Duration) IsZero() bool {
	return d.Milliseconds() == 0
}

// Covers reports whether elapsed is at least as long as d.
func (d Duration) Covers(elapsed time.Duration) bool {
	return float64(elapsed.Milliseconds()) >= d.Milliseconds()
}
