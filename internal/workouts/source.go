package workouts

import (
	"fmt"
	"strings"
)

// Source tells where a workout was logged. Every source is normalized into the
// same Workout shape when it is ingested.
type Source string

const (
	SourceSelf         Source = "self"
	SourceFitocracy    Source = "fitocracy"
	SourceMyFitnessPal Source = "myfitnesspal"
	SourceRunDouble    Source = "rundouble"
	SourceTopLogger    Source = "toplogger"
	SourceKilterBoard  Source = "kilterboard"
	SourceMoonBoard    Source = "moonboard"
	SourceGrippy       Source = "grippy"
	SourceCrimpd       Source = "crimpd"
	SourceClimbAlong   Source = "climbalong"
	SourceOnsight      Source = "onsight"
)

var allSources = map[Source]struct{}{
	SourceSelf:         {},
	SourceFitocracy:    {},
	SourceMyFitnessPal: {},
	SourceRunDouble:    {},
	SourceTopLogger:    {},
	SourceKilterBoard:  {},
	SourceMoonBoard:    {},
	SourceGrippy:       {},
	SourceCrimpd:       {},
	SourceClimbAlong:   {},
	SourceOnsight:      {},
}

func ParseSource(s string) (Source, error) {
	src := Source(strings.ToLower(strings.TrimSpace(s)))
	if src == "" {
		return SourceSelf, nil
	}
	if _, ok := allSources[src]; !ok {
		return "", fmt.Errorf("unknown workout source: %q", s)
	}
	return src, nil
}

func (s Source) Valid() bool {
	_, ok := allSources[s]
	return ok
}

func (s Source) MarshalText() ([]byte, error) {
	if s == "" {
		return []byte(SourceSelf), nil
	}
	return []byte(s), nil
}

func (s *Source) UnmarshalText(text []byte) error {
	src, err := ParseSource(string(text))
	if err != nil {
		return err
	}
	*s = src
	return nil
}
