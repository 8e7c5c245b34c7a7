package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

var allStatuses = []models.MaintenanceStatus{
	"",
	models.MaintenanceStatusPending,
	models.MaintenanceStatusChecked,
	models.MaintenanceStatusRejected,
	models.MaintenanceStatusApproved,
	models.MaintenanceStatusCompleted,
	models.MaintenanceStatusFinished,
}

var allEvents = []MaintenanceEvent{
	EventCreate, EventCheck, EventReject, EventApprove,
	EventSubmitAcceptance, EventMarkComplete, EventSubmitReturn,
}

var allRoles = []models.Role{
	models.RoleDriver, models.RoleDistributor, models.RoleMaintenance,
	models.RoleInspector, models.RoleMechanic, models.RoleHeadMechanic,
	models.RoleNezekOfficial,
}

func TestNextMaintenanceStatus_Table(t *testing.T) {
	tests := []struct {
		name  string
		from  models.MaintenanceStatus
		event MaintenanceEvent
		role  models.Role
		want  models.MaintenanceStatus
	}{
		{"driver creates", "", EventCreate, models.RoleDriver, models.MaintenanceStatusPending},
		{"distributor checks", models.MaintenanceStatusPending, EventCheck, models.RoleDistributor, models.MaintenanceStatusChecked},
		{"distributor rejects pending", models.MaintenanceStatusPending, EventReject, models.RoleDistributor, models.MaintenanceStatusRejected},
		{"maintenance rejects checked", models.MaintenanceStatusChecked, EventReject, models.RoleMaintenance, models.MaintenanceStatusRejected},
		{"maintenance approves", models.MaintenanceStatusChecked, EventApprove, models.RoleMaintenance, models.MaintenanceStatusApproved},
		{"driver submits acceptance", models.MaintenanceStatusApproved, EventSubmitAcceptance, models.RoleDriver, models.MaintenanceStatusApproved},
		{"inspector submits acceptance", models.MaintenanceStatusApproved, EventSubmitAcceptance, models.RoleInspector, models.MaintenanceStatusApproved},
		{"inspector completes", models.MaintenanceStatusApproved, EventMarkComplete, models.RoleInspector, models.MaintenanceStatusCompleted},
		{"inspector submits return", models.MaintenanceStatusCompleted, EventSubmitReturn, models.RoleInspector, models.MaintenanceStatusFinished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextMaintenanceStatus(tt.from, tt.event, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Every (status, event, role) triple outside the transition table must fail,
// with an invalid-transition error for unlisted state/event pairs and a
// permission error for listed pairs attempted by the wrong role.
func TestNextMaintenanceStatus_RejectsEverythingElse(t *testing.T) {
	allowed := func(from models.MaintenanceStatus, event MaintenanceEvent, role models.Role) bool {
		rule, ok := maintenanceTable[maintenanceTransition{from, event}]
		if !ok {
			return false
		}
		for _, r := range rule.roles {
			if r == role {
				return true
			}
		}
		return false
	}

	for _, from := range allStatuses {
		for _, event := range allEvents {
			for _, role := range allRoles {
				if allowed(from, event, role) {
					continue
				}
				_, err := NextMaintenanceStatus(from, event, role)
				require.Error(t, err, "from=%q event=%q role=%q", from, event, role)

				if _, listed := maintenanceTable[maintenanceTransition{from, event}]; listed {
					assert.ErrorIs(t, err, ErrPermissionDenied)
				} else {
					assert.ErrorIs(t, err, ErrInvalidTransition)
				}
			}
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, from := range []models.MaintenanceStatus{models.MaintenanceStatusRejected, models.MaintenanceStatusFinished} {
		for _, event := range allEvents {
			_, listed := maintenanceTable[maintenanceTransition{from, event}]
			assert.False(t, listed, "terminal status %q must not allow %q", from, event)
		}
	}
}

func newApprovedRequest() *models.MaintenanceRequest {
	return &models.MaintenanceRequest{
		ID:                  primitive.NewObjectID(),
		PlateNumber:         "AA123",
		VehicleType:         "Minibus",
		ReportingDriver:     "Abel",
		CategoryWorkProcess: models.WorkCategoryBrakes,
		KilometerReading:    12000,
		DefectDetails:       "brake pedal travels too far",
		Status:              models.MaintenanceStatusApproved,
	}
}

func TestApplyAcceptance(t *testing.T) {
	now := time.Now()
	inspector := models.Actor{Name: "Sara", Role: models.RoleInspector}

	req := newApprovedRequest()
	payload := &models.AcceptancePayload{
		FuelAmount:           40,
		RequestingPersonnel:  "Abel",
		AuthorizingPersonnel: "Sara",
		Notes:                []string{"spare tire present"},
		Signatures: []models.Signature{
			{Role: "Inspector", Name: "Sara", Signature: "Sara T.", Date: now},
		},
	}

	require.NoError(t, ApplyAcceptance(req, inspector, payload, now))
	assert.Equal(t, models.MaintenanceStatusApproved, req.Status)
	assert.Equal(t, 40.0, req.FuelAmount)
	assert.True(t, Accepted(req))

	// A second acceptance must not overwrite the first.
	err := ApplyAcceptance(req, inspector, payload, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApplyAcceptance_WrongStateAndRole(t *testing.T) {
	now := time.Now()
	payload := &models.AcceptancePayload{FuelAmount: 10}

	req := newApprovedRequest()
	req.Status = models.MaintenanceStatusPending
	err := ApplyAcceptance(req, models.Actor{Role: models.RoleInspector}, payload, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	req = newApprovedRequest()
	err = ApplyAcceptance(req, models.Actor{Role: models.RoleMaintenance}, payload, now)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestMarkComplete_RequiresAcceptance(t *testing.T) {
	now := time.Now()
	inspector := models.Actor{Name: "Sara", Role: models.RoleInspector}

	req := newApprovedRequest()
	err := MarkComplete(req, inspector, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, ApplyAcceptance(req, inspector, &models.AcceptancePayload{FuelAmount: 40}, now))
	require.NoError(t, MarkComplete(req, inspector, now))
	assert.Equal(t, models.MaintenanceStatusCompleted, req.Status)
}

func TestApplyReturn(t *testing.T) {
	now := time.Now()
	inspector := models.Actor{Name: "Sara", Role: models.RoleInspector}

	req := newApprovedRequest()
	require.NoError(t, ApplyAcceptance(req, inspector, &models.AcceptancePayload{FuelAmount: 40}, now))
	require.NoError(t, MarkComplete(req, inspector, now))

	err := ApplyReturn(req, models.Actor{Role: models.RoleDriver}, &models.ReturnPayload{}, now)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, ApplyReturn(req, inspector, &models.ReturnPayload{
		ReturnKilometerReading: 15000,
		ReturnFuelAmount:       12,
		ReturnNotes:            "brake pads replaced",
	}, now))
	assert.Equal(t, models.MaintenanceStatusFinished, req.Status)
	assert.Equal(t, 15000.0, req.ReturnKilometerReading)
	assert.True(t, req.Status.IsTerminal())
}

func TestStatusEvent(t *testing.T) {
	ev, err := StatusEvent(models.MaintenanceStatusPending, models.MaintenanceStatusChecked)
	require.NoError(t, err)
	assert.Equal(t, EventCheck, ev)

	_, err = StatusEvent(models.MaintenanceStatusPending, models.MaintenanceStatusFinished)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
