package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/workflow"
)

func passingMechanical() models.MechanicalChecklist {
	return models.MechanicalChecklist{
		EngineCondition: true, EnginePower: true, Suspension: true, Brakes: true,
		Steering: true, Gearbox: true, Mileage: true, FuelGauge: true,
		TempGauge: true, OilGauge: true,
	}
}

func newInspectionFixture(t *testing.T) (InspectionService, *fakeInspectionRepo, *fakeCarRepo) {
	t.Helper()
	inspectionRepo := newFakeInspectionRepo()
	carRepo := newFakeCarRepo(&models.Car{
		PlateNumber: "AA123",
		Source:      models.CarSourceService,
		Status:      models.CarStatusAvailable,
	})
	return NewInspectionService(inspectionRepo, carRepo, testLogger()), inspectionRepo, carRepo
}

func TestInspectionSubmitCleanVehicle(t *testing.T) {
	svc, _, carRepo := newInspectionFixture(t)

	insp, err := svc.Submit(context.Background(), testInspector, &models.Inspection{
		PlateNumber: "AA123",
		Mechanical:  passingMechanical(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.InspectionStatusApproved, insp.OverallStatus)
	assert.Equal(t, models.ServiceStatusReady, insp.ServiceStatus)
	assert.Equal(t, 100, insp.BodyScore)
	assert.Equal(t, 100, insp.InteriorScore)
	assert.Equal(t, models.CarSourceService, insp.CarSource)
	assert.Equal(t, testInspector.Name, insp.InspectorName)

	// The derived result is pushed onto the car record.
	require.Len(t, carRepo.inspectionWrites, 1)
	write := carRepo.inspectionWrites[0]
	assert.Equal(t, models.CarSourceService, write.source)
	assert.Equal(t, "AA123", write.plateNumber)
	assert.Equal(t, models.InspectionStatusApproved, write.result)
	assert.Equal(t, insp.ID, write.inspectionID)
}

func TestInspectionSubmitMechanicalFailure(t *testing.T) {
	svc, _, carRepo := newInspectionFixture(t)

	mech := passingMechanical()
	mech.Brakes = false

	insp, err := svc.Submit(context.Background(), testInspector, &models.Inspection{
		PlateNumber: "AA123",
		Mechanical:  mech,
		Body: models.BodyChecklist{
			BodyScratches: models.ItemCondition{Problem: true, Severity: models.SeverityMinor},
		},
	})
	require.NoError(t, err)

	// A mechanical failure is terminal; later phases never soften it.
	assert.Equal(t, models.InspectionStatusRejected, insp.OverallStatus)
	assert.Equal(t, models.ServiceStatusNotReady, insp.ServiceStatus)
	assert.NotEmpty(t, insp.RejectionReason)
	assert.Nil(t, insp.WarningDeadline)

	require.Len(t, carRepo.inspectionWrites, 1)
	assert.Equal(t, models.ServiceStatusNotReady, carRepo.inspectionWrites[0].serviceStatus)
}

func TestInspectionSubmitBodyDefectWarns(t *testing.T) {
	svc, _, _ := newInspectionFixture(t)

	insp, err := svc.Submit(context.Background(), testInspector, &models.Inspection{
		PlateNumber: "AA123",
		Mechanical:  passingMechanical(),
		Body: models.BodyChecklist{
			Cracks: models.ItemCondition{Problem: true, Severity: models.SeverityModerate},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.InspectionStatusConditionallyApproved, insp.OverallStatus)
	assert.Equal(t, models.ServiceStatusReadyWithWarning, insp.ServiceStatus)
	assert.Equal(t, 80, insp.BodyScore)
	require.NotNil(t, insp.WarningDeadline)
	assert.Contains(t, insp.WarningMessage, "body exterior")
}

func TestInspectionSubmitRequiresInspector(t *testing.T) {
	svc, _, _ := newInspectionFixture(t)

	_, err := svc.Submit(context.Background(), testDriver, &models.Inspection{
		PlateNumber: "AA123",
		Mechanical:  passingMechanical(),
	})
	assert.ErrorIs(t, err, workflow.ErrPermissionDenied)
}

func TestInspectionUpdateCarStatus(t *testing.T) {
	svc, _, carRepo := newInspectionFixture(t)
	ctx := context.Background()

	err := svc.UpdateCarStatus(ctx, testInspector, models.CarSourceRent, "BB456",
		models.InspectionStatusApproved, models.ServiceStatusReady, primitive.NilObjectID)
	require.NoError(t, err)
	require.Len(t, carRepo.inspectionWrites, 1)
	assert.Equal(t, models.CarSourceRent, carRepo.inspectionWrites[0].source)

	err = svc.UpdateCarStatus(ctx, testDriver, models.CarSourceRent, "BB456",
		models.InspectionStatusApproved, models.ServiceStatusReady, primitive.NilObjectID)
	assert.ErrorIs(t, err, workflow.ErrPermissionDenied)
}
