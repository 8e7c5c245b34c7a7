package workflow

import (
	"math"
	"time"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

const (
	bodyWarningDays     = 30
	interiorWarningDays = 14
)

// InspectionOutcome is the derived result of a three-phase inspection.
type InspectionOutcome struct {
	OverallStatus   models.InspectionStatus
	ServiceStatus   models.ServiceStatus
	BodyScore       int
	InteriorScore   int
	WarningMessage  string
	WarningDeadline *time.Time
	RejectionReason string
}

// ScoreBody is the body-phase health percentage: passed checks out of five.
func ScoreBody(b *models.BodyChecklist) int {
	return scoreItems(b.Items())
}

// ScoreInterior is the interior-phase health percentage: passed checks out
// of twenty-three.
func ScoreInterior(i *models.InteriorChecklist) int {
	return scoreItems(i.Items())
}

func scoreItems(items []models.ItemCondition) int {
	if len(items) == 0 {
		return 100
	}
	passed := 0
	for _, item := range items {
		if !item.Problem {
			passed++
		}
	}
	return int(math.Round(float64(passed) / float64(len(items)) * 100))
}

// BodyBand labels a body score. Descriptive only, never gates.
func BodyBand(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	}
	return "Poor"
}

// InteriorBand labels an interior score. Descriptive only, never gates.
func InteriorBand(score int) string {
	switch {
	case score == 100:
		return "Perfect"
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Good"
	case score >= 60:
		return "Fair"
	}
	return "Poor"
}

func mechanicalPass(m *models.MechanicalChecklist) bool {
	for _, ok := range m.Items() {
		if !ok {
			return false
		}
	}
	return true
}

func phasePass(items []models.ItemCondition) bool {
	for _, item := range items {
		if item.Problem {
			return false
		}
	}
	return true
}

// EvaluateInspection derives the overall result from the three checklists.
// A mechanical failure is terminal: the vehicle is rejected and the later
// phases are not considered. Body defects carry a 30-day remediation
// deadline, interior-only defects a 14-day one.
func EvaluateInspection(insp *models.Inspection, now time.Time) InspectionOutcome {
	out := InspectionOutcome{
		BodyScore:     ScoreBody(&insp.Body),
		InteriorScore: ScoreInterior(&insp.Interior),
	}

	if !mechanicalPass(&insp.Mechanical) {
		out.OverallStatus = models.InspectionStatusRejected
		out.ServiceStatus = models.ServiceStatusNotReady
		out.RejectionReason = "Failed mechanical inspection items."
		return out
	}

	bodyPass := phasePass(insp.Body.Items())
	interiorPass := phasePass(insp.Interior.Items())

	if bodyPass && interiorPass {
		out.OverallStatus = models.InspectionStatusApproved
		out.ServiceStatus = models.ServiceStatusReady
		return out
	}

	out.OverallStatus = models.InspectionStatusConditionallyApproved
	out.ServiceStatus = models.ServiceStatusReadyWithWarning

	switch {
	case !bodyPass && !interiorPass:
		out.WarningMessage = "Minor issues found in: body exterior, interior/electrical. Requires attention within the specified deadline."
		deadline := now.AddDate(0, 0, bodyWarningDays)
		out.WarningDeadline = &deadline
	case !bodyPass:
		out.WarningMessage = "Minor issues found in: body exterior. Requires attention within the specified deadline."
		deadline := now.AddDate(0, 0, bodyWarningDays)
		out.WarningDeadline = &deadline
	default:
		out.WarningMessage = "Minor issues found in: interior/electrical. Requires attention within the specified deadline."
		deadline := now.AddDate(0, 0, interiorWarningDays)
		out.WarningDeadline = &deadline
	}
	return out
}
