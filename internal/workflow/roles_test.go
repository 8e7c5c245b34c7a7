package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

func TestPermittedEvents(t *testing.T) {
	events := PermittedEvents(models.RoleDistributor, models.MaintenanceStatusPending)
	assert.ElementsMatch(t, []MaintenanceEvent{EventCheck, EventReject}, events)

	events = PermittedEvents(models.RoleMaintenance, models.MaintenanceStatusChecked)
	assert.ElementsMatch(t, []MaintenanceEvent{EventApprove, EventReject}, events)

	events = PermittedEvents(models.RoleInspector, models.MaintenanceStatusApproved)
	assert.ElementsMatch(t, []MaintenanceEvent{EventSubmitAcceptance, EventMarkComplete}, events)

	// Nothing leaves a terminal status, for anyone.
	for _, role := range allRoles {
		assert.Empty(t, PermittedEvents(role, models.MaintenanceStatusRejected))
		assert.Empty(t, PermittedEvents(role, models.MaintenanceStatusFinished))
	}
}

func TestWritableFields(t *testing.T) {
	fields := WritableFields(models.RoleInspector, models.MaintenanceStatusApproved)
	assert.Contains(t, fields, "fuelAmount")
	assert.Contains(t, fields, "signatures")

	fields = WritableFields(models.RoleInspector, models.MaintenanceStatusCompleted)
	assert.Contains(t, fields, "returnKilometerReading")

	// A distributor can only touch the status and their own name.
	fields = WritableFields(models.RoleDistributor, models.MaintenanceStatusPending)
	assert.NotContains(t, fields, "defectDetails")
	assert.NotContains(t, fields, "fuelAmount")

	assert.Empty(t, WritableFields(models.RoleDriver, models.MaintenanceStatusChecked))
}

func TestRoleView(t *testing.T) {
	assert.Equal(t, []models.MaintenanceStatus{models.MaintenanceStatusPending}, RoleView(models.RoleDistributor))
	assert.Equal(t, []models.MaintenanceStatus{models.MaintenanceStatusChecked}, RoleView(models.RoleMaintenance))
	assert.ElementsMatch(t, []models.MaintenanceStatus{
		models.MaintenanceStatusApproved, models.MaintenanceStatusCompleted,
	}, RoleView(models.RoleInspector))
	assert.Nil(t, RoleView(models.RoleDriver))
}
