package workflow

import (
	"time"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

// ReviewByHeadMechanic records the head mechanic's approval and moves the
// request to CHECKED. The chain has no head-mechanic reject path: holding a
// request simply leaves it PENDING.
func ReviewByHeadMechanic(req *models.FuelOilGreaseRequest, actor models.Actor, now time.Time) error {
	if actor.Role != models.RoleHeadMechanic {
		return permissionDenied("role %q may not perform head mechanic review", actor.Role)
	}
	if req.Status != models.FuelRequestStatusPending {
		return invalidTransition("head mechanic review requires a PENDING request, got %q", req.Status)
	}

	approved := true
	req.HeadMechanicApproved = &approved
	req.HeadMechanicName = actor.Name
	req.Status = models.FuelRequestStatusChecked
	req.UpdatedAt = now
	return nil
}

// ReviewByNezek records the NEZEK official's decision. It is only reachable
// once the head mechanic has approved and the aggregate status is CHECKED.
func ReviewByNezek(req *models.FuelOilGreaseRequest, actor models.Actor, approve bool, now time.Time) error {
	if actor.Role != models.RoleNezekOfficial {
		return permissionDenied("role %q may not perform nezek review", actor.Role)
	}
	if req.HeadMechanicApproved == nil || !*req.HeadMechanicApproved {
		return invalidTransition("nezek review requires head mechanic approval")
	}
	if req.Status != models.FuelRequestStatusChecked {
		return invalidTransition("nezek review requires a CHECKED request, got %q", req.Status)
	}

	req.NezekOfficialName = actor.Name
	if approve {
		req.NezekOfficialStatus = models.NezekStatusApproved
		req.Status = models.FuelRequestStatusApproved
	} else {
		req.NezekOfficialStatus = models.NezekStatusRejected
		req.Status = models.FuelRequestStatusRejected
	}
	req.UpdatedAt = now
	return nil
}

// CanWriteFilled guards the filled.* sub-records: only the originating
// mechanic, and only after the NEZEK official approved.
func CanWriteFilled(req *models.FuelOilGreaseRequest, actor models.Actor) error {
	if req.NezekOfficialStatus != models.NezekStatusApproved {
		return readOnlyField("filled details are locked until nezek approval, current status %q", req.NezekOfficialStatus)
	}
	if actor.Role != models.RoleMechanic {
		return permissionDenied("role %q may not fulfill a fuel request", actor.Role)
	}
	if actor.Name != req.MechanicName {
		return permissionDenied("only the originating mechanic %q may fulfill this request", req.MechanicName)
	}
	if req.IsFulfilled {
		return invalidTransition("request is already fulfilled")
	}
	return nil
}

// Fulfill writes the filled.* values and closes the chain.
func Fulfill(req *models.FuelOilGreaseRequest, actor models.Actor, p *models.FulfillmentPayload, now time.Time) error {
	if err := CanWriteFilled(req, actor); err != nil {
		return err
	}

	fill := func(item *models.RequestItem, details *models.FillDetails) {
		if item != nil && details != nil {
			item.Filled = *details
		}
	}
	fill(req.Fuel, p.Fuel)
	fill(req.MotorOil, p.MotorOil)
	fill(req.BrakeFluid, p.BrakeFluid)
	fill(req.SteeringFluid, p.SteeringFluid)
	fill(req.Grease, p.Grease)

	req.IsFulfilled = true
	req.Status = models.FuelRequestStatusFulfilled
	req.UpdatedAt = now
	return nil
}
