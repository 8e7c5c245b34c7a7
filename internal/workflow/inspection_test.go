package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

func cleanMechanical() models.MechanicalChecklist {
	return models.MechanicalChecklist{
		EngineCondition: true, EnginePower: true, Suspension: true, Brakes: true,
		Steering: true, Gearbox: true, Mileage: true, FuelGauge: true,
		TempGauge: true, OilGauge: true,
	}
}

func cleanInspection() *models.Inspection {
	return &models.Inspection{
		PlateNumber:   "AA123",
		InspectorName: "Sara",
		Mechanical:    cleanMechanical(),
	}
}

func TestEvaluateInspection_AllClean(t *testing.T) {
	out := EvaluateInspection(cleanInspection(), time.Now())

	assert.Equal(t, models.InspectionStatusApproved, out.OverallStatus)
	assert.Equal(t, models.ServiceStatusReady, out.ServiceStatus)
	assert.Equal(t, 100, out.BodyScore)
	assert.Equal(t, 100, out.InteriorScore)
	assert.Nil(t, out.WarningDeadline)
	assert.Empty(t, out.RejectionReason)
}

func TestEvaluateInspection_MechanicalFailureIsTerminal(t *testing.T) {
	insp := cleanInspection()
	insp.Mechanical.Brakes = false
	// Body and interior damage must not matter once mechanical fails.
	insp.Body.Cracks = models.ItemCondition{Problem: true, Severity: models.SeveritySevere}

	out := EvaluateInspection(insp, time.Now())
	assert.Equal(t, models.InspectionStatusRejected, out.OverallStatus)
	assert.Equal(t, models.ServiceStatusNotReady, out.ServiceStatus)
	assert.NotEmpty(t, out.RejectionReason)
	assert.Nil(t, out.WarningDeadline)
}

func TestEvaluateInspection_BodyDefect30DayDeadline(t *testing.T) {
	now := time.Now()
	insp := cleanInspection()
	insp.Body.BodyScratches = models.ItemCondition{Problem: true, Severity: models.SeverityMinor, Notes: "left door"}

	out := EvaluateInspection(insp, now)
	assert.Equal(t, models.InspectionStatusConditionallyApproved, out.OverallStatus)
	assert.Equal(t, models.ServiceStatusReadyWithWarning, out.ServiceStatus)
	require.NotNil(t, out.WarningDeadline)
	assert.Equal(t, now.AddDate(0, 0, 30), *out.WarningDeadline)
	assert.Contains(t, out.WarningMessage, "body exterior")
	assert.Equal(t, 80, out.BodyScore)
}

func TestEvaluateInspection_InteriorOnlyDefect14DayDeadline(t *testing.T) {
	now := time.Now()
	insp := cleanInspection()
	insp.Interior.SeatBelt = models.ItemCondition{Problem: true, Severity: models.SeverityModerate}

	out := EvaluateInspection(insp, now)
	assert.Equal(t, models.InspectionStatusConditionallyApproved, out.OverallStatus)
	require.NotNil(t, out.WarningDeadline)
	assert.Equal(t, now.AddDate(0, 0, 14), *out.WarningDeadline)
	assert.Contains(t, out.WarningMessage, "interior/electrical")
	assert.Equal(t, 96, out.InteriorScore)
}

func TestEvaluateInspection_CombinedDefects(t *testing.T) {
	now := time.Now()
	insp := cleanInspection()
	insp.Body.Breakages = models.ItemCondition{Problem: true, Severity: models.SeverityModerate}
	insp.Interior.Headlights = models.ItemCondition{Problem: true, Severity: models.SeverityMinor}

	out := EvaluateInspection(insp, now)
	assert.Equal(t, models.InspectionStatusConditionallyApproved, out.OverallStatus)
	require.NotNil(t, out.WarningDeadline)
	assert.Equal(t, now.AddDate(0, 0, 30), *out.WarningDeadline)
	assert.Contains(t, out.WarningMessage, "body exterior")
	assert.Contains(t, out.WarningMessage, "interior/electrical")
}

func TestScoresArePureAndIdempotent(t *testing.T) {
	insp := cleanInspection()
	insp.Body.PaintCondition = models.ItemCondition{Problem: true, Severity: models.SeverityMinor}
	insp.Body.Cracks = models.ItemCondition{Problem: true, Severity: models.SeverityMinor}
	insp.Interior.FloorMat = models.ItemCondition{Problem: true}

	first := ScoreBody(&insp.Body)
	second := ScoreBody(&insp.Body)
	assert.Equal(t, first, second)
	assert.Equal(t, 60, first) // 3 of 5 passed

	firstInterior := ScoreInterior(&insp.Interior)
	assert.Equal(t, firstInterior, ScoreInterior(&insp.Interior))
	assert.Equal(t, 96, firstInterior) // 22 of 23 passed, rounded
}

func TestScoreBands(t *testing.T) {
	assert.Equal(t, "Excellent", BodyBand(80))
	assert.Equal(t, "Good", BodyBand(60))
	assert.Equal(t, "Fair", BodyBand(40))
	assert.Equal(t, "Poor", BodyBand(39))

	assert.Equal(t, "Perfect", InteriorBand(100))
	assert.Equal(t, "Excellent", InteriorBand(91))
	assert.Equal(t, "Good", InteriorBand(75))
	assert.Equal(t, "Fair", InteriorBand(60))
	assert.Equal(t, "Poor", InteriorBand(59))
}

func TestChecklistSizes(t *testing.T) {
	m := cleanMechanical()
	assert.Len(t, m.Items(), 10)

	var b models.BodyChecklist
	assert.Len(t, b.Items(), 5)

	var i models.InteriorChecklist
	assert.Len(t, i.Items(), 23)
}
