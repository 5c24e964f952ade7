package nextsets

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/qsdiary/internal/users"
)

// Prescription is what the next session of a scheduled exercise should look
// like. NaN numbers mean "no prescription" and are encoded as JSON null.
type Prescription struct {
	ExerciseID            int
	Successful            bool
	NextWorkingSets       float64
	NextWorkingSetsReps   float64
	NextWorkingSetsWeight float64
	// WorkedOutAt of the workout the prescription is based on, nil without
	// history.
	WorkedOutAt   *time.Time
	Due           bool
	ScheduleEntry users.ExerciseSchedule
}

func nanPrescription(entry users.ExerciseSchedule) Prescription {
	return Prescription{
		ExerciseID:            entry.ExerciseID,
		NextWorkingSets:       math.NaN(),
		NextWorkingSetsReps:   math.NaN(),
		NextWorkingSetsWeight: math.NaN(),
		ScheduleEntry:         entry,
	}
}

func (p Prescription) lastWorkedOut() time.Time {
	if p.WorkedOutAt == nil {
		return time.Unix(0, 0)
	}
	return *p.WorkedOutAt
}

type prescriptionJson struct {
	ExerciseID            int                    `json:"exerciseId"`
	Successful            bool                   `json:"successful"`
	NextWorkingSets       *float64               `json:"nextWorkingSets"`
	NextWorkingSetsReps   *float64               `json:"nextWorkingSetsReps"`
	NextWorkingSetsWeight *float64               `json:"nextWorkingSetsWeight"`
	WorkedOutAt           *time.Time             `json:"workedOutAt"`
	Due                   bool                   `json:"due"`
	ScheduleEntry         users.ExerciseSchedule `json:"scheduleEntry"`
}

func (p Prescription) MarshalJSON() ([]byte, error) {
	return json.Marshal(prescriptionJson{
		ExerciseID:            p.ExerciseID,
		Successful:            p.Successful,
		NextWorkingSets:       nullableNumber(p.NextWorkingSets),
		NextWorkingSetsReps:   nullableNumber(p.NextWorkingSetsReps),
		NextWorkingSetsWeight: nullableNumber(p.NextWorkingSetsWeight),
		WorkedOutAt:           p.WorkedOutAt,
		Due:                   p.Due,
		ScheduleEntry:         p.ScheduleEntry,
	})
}

func (p *Prescription) UnmarshalJSON(data []byte) error {
	var pj prescriptionJson
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	*p = Prescription{
		ExerciseID:            pj.ExerciseID,
		Successful:            pj.Successful,
		NextWorkingSets:       numberOrNaN(pj.NextWorkingSets),
		NextWorkingSetsReps:   numberOrNaN(pj.NextWorkingSetsReps),
		NextWorkingSetsWeight: numberOrNaN(pj.NextWorkingSetsWeight),
		WorkedOutAt:           pj.WorkedOutAt,
		Due:                   pj.Due,
		ScheduleEntry:         pj.ScheduleEntry,
	}
	return nil
}

func nullableNumber(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func numberOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// FormatWeight renders a prescribed weight for display. A trailing .25 is
// dropped since the smallest plates in use do not make quarter kilos.
func FormatWeight(weight float64) string {
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return ""
	}
	formatted := strconv.FormatFloat(weight, 'f', -1, 64)
	if strings.HasSuffix(formatted, ".25") {
		return strconv.FormatFloat(weight-0.25, 'f', -1, 64)
	}
	return formatted
}
