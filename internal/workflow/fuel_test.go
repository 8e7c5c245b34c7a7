package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

func newFuelRequest() *models.FuelOilGreaseRequest {
	return &models.FuelOilGreaseRequest{
		RequestDate:         time.Now(),
		CarType:             "Minibus",
		PlateNumber:         "AA123",
		KmReading:           52000,
		ShortExplanation:    "scheduled refuel",
		MechanicName:        "Dawit",
		NezekOfficialStatus: models.NezekStatusPending,
		Status:              models.FuelRequestStatusPending,
		Fuel: &models.RequestItem{
			Type:      "fuel",
			Requested: models.FillDetails{Measurement: "liters", Amount: 60, Price: 4200},
		},
		MotorOil: &models.RequestItem{
			Type:      "motorOil",
			Requested: models.FillDetails{Measurement: "liters", Amount: 4, Price: 1800},
		},
	}
}

func TestReviewByHeadMechanic(t *testing.T) {
	now := time.Now()
	req := newFuelRequest()

	err := ReviewByHeadMechanic(req, models.Actor{Name: "Dawit", Role: models.RoleMechanic}, now)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	head := models.Actor{Name: "Yonas", Role: models.RoleHeadMechanic}
	require.NoError(t, ReviewByHeadMechanic(req, head, now))
	require.NotNil(t, req.HeadMechanicApproved)
	assert.True(t, *req.HeadMechanicApproved)
	assert.Equal(t, "Yonas", req.HeadMechanicName)
	assert.Equal(t, models.FuelRequestStatusChecked, req.Status)

	// Review is one-shot: the request is no longer PENDING.
	err = ReviewByHeadMechanic(req, head, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReviewByNezek_RequiresHeadMechanicApproval(t *testing.T) {
	now := time.Now()
	nezek := models.Actor{Name: "Hana", Role: models.RoleNezekOfficial}

	req := newFuelRequest()
	err := ReviewByNezek(req, nezek, true, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, ReviewByHeadMechanic(req, models.Actor{Name: "Yonas", Role: models.RoleHeadMechanic}, now))
	require.NoError(t, ReviewByNezek(req, nezek, true, now))
	assert.Equal(t, models.NezekStatusApproved, req.NezekOfficialStatus)
	assert.Equal(t, models.FuelRequestStatusApproved, req.Status)
	assert.Equal(t, "Hana", req.NezekOfficialName)
}

func TestReviewByNezek_Reject(t *testing.T) {
	now := time.Now()
	req := newFuelRequest()
	require.NoError(t, ReviewByHeadMechanic(req, models.Actor{Name: "Yonas", Role: models.RoleHeadMechanic}, now))

	err := ReviewByNezek(req, models.Actor{Role: models.RoleHeadMechanic}, false, now)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, ReviewByNezek(req, models.Actor{Name: "Hana", Role: models.RoleNezekOfficial}, false, now))
	assert.Equal(t, models.NezekStatusRejected, req.NezekOfficialStatus)
	assert.Equal(t, models.FuelRequestStatusRejected, req.Status)
}

func TestCanWriteFilled_LockedUntilNezekApproval(t *testing.T) {
	mechanic := models.Actor{Name: "Dawit", Role: models.RoleMechanic}

	req := newFuelRequest()
	err := CanWriteFilled(req, mechanic)
	assert.ErrorIs(t, err, ErrReadOnlyField)

	req.NezekOfficialStatus = models.NezekStatusRejected
	err = CanWriteFilled(req, mechanic)
	assert.ErrorIs(t, err, ErrReadOnlyField)
}

func TestFulfill(t *testing.T) {
	now := time.Now()
	req := newFuelRequest()
	require.NoError(t, ReviewByHeadMechanic(req, models.Actor{Name: "Yonas", Role: models.RoleHeadMechanic}, now))
	require.NoError(t, ReviewByNezek(req, models.Actor{Name: "Hana", Role: models.RoleNezekOfficial}, true, now))

	payload := &models.FulfillmentPayload{
		Fuel:     &models.FillDetails{Measurement: "liters", Amount: 58, Price: 4060},
		MotorOil: &models.FillDetails{Measurement: "liters", Amount: 4, Price: 1800},
	}

	// Only the originating mechanic may fulfill.
	err := Fulfill(req, models.Actor{Name: "Someone", Role: models.RoleMechanic}, payload, now)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	mechanic := models.Actor{Name: "Dawit", Role: models.RoleMechanic}
	require.NoError(t, Fulfill(req, mechanic, payload, now))
	assert.True(t, req.IsFulfilled)
	assert.Equal(t, models.FuelRequestStatusFulfilled, req.Status)
	assert.Equal(t, 58.0, req.Fuel.Filled.Amount)
	assert.Equal(t, 4.0, req.MotorOil.Filled.Amount)

	// Fulfilled is terminal.
	err = Fulfill(req, mechanic, payload, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
