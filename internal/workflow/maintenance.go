package workflow

import (
	"time"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

// MaintenanceEvent is an action attempted against a maintenance request.
type MaintenanceEvent string

const (
	EventCreate           MaintenanceEvent = "create"
	EventCheck            MaintenanceEvent = "check"
	EventReject           MaintenanceEvent = "reject"
	EventApprove          MaintenanceEvent = "approve"
	EventSubmitAcceptance MaintenanceEvent = "submit_acceptance"
	EventMarkComplete     MaintenanceEvent = "mark_complete"
	EventSubmitReturn     MaintenanceEvent = "submit_return"
)

type maintenanceTransition struct {
	from  models.MaintenanceStatus
	event MaintenanceEvent
}

type maintenanceRule struct {
	to    models.MaintenanceStatus
	roles []models.Role
}

// maintenanceTable is the full transition table of the lifecycle. Anything
// not listed here is rejected: wrong state as an invalid transition, wrong
// role as a permission error. Creation uses the empty status as its source.
var maintenanceTable = map[maintenanceTransition]maintenanceRule{
	{"", EventCreate}: {
		to:    models.MaintenanceStatusPending,
		roles: []models.Role{models.RoleDriver},
	},
	{models.MaintenanceStatusPending, EventCheck}: {
		to:    models.MaintenanceStatusChecked,
		roles: []models.Role{models.RoleDistributor},
	},
	{models.MaintenanceStatusPending, EventReject}: {
		to:    models.MaintenanceStatusRejected,
		roles: []models.Role{models.RoleDistributor},
	},
	{models.MaintenanceStatusChecked, EventReject}: {
		to:    models.MaintenanceStatusRejected,
		roles: []models.Role{models.RoleMaintenance},
	},
	{models.MaintenanceStatusChecked, EventApprove}: {
		to:    models.MaintenanceStatusApproved,
		roles: []models.Role{models.RoleMaintenance},
	},
	{models.MaintenanceStatusApproved, EventSubmitAcceptance}: {
		to:    models.MaintenanceStatusApproved,
		roles: []models.Role{models.RoleDriver, models.RoleInspector},
	},
	{models.MaintenanceStatusApproved, EventMarkComplete}: {
		to:    models.MaintenanceStatusCompleted,
		roles: []models.Role{models.RoleInspector},
	},
	{models.MaintenanceStatusCompleted, EventSubmitReturn}: {
		to:    models.MaintenanceStatusFinished,
		roles: []models.Role{models.RoleInspector},
	},
}

// NextMaintenanceStatus resolves one lifecycle step. The state check runs
// before the role check, so an out-of-order attempt by the right role still
// reads as an invalid transition rather than a permission problem.
func NextMaintenanceStatus(current models.MaintenanceStatus, event MaintenanceEvent, role models.Role) (models.MaintenanceStatus, error) {
	rule, ok := maintenanceTable[maintenanceTransition{current, event}]
	if !ok {
		return current, invalidTransition("event %q is not allowed from status %q", event, current)
	}
	for _, r := range rule.roles {
		if r == role {
			return rule.to, nil
		}
	}
	return current, permissionDenied("role %q may not perform %q on a %q request", role, event, current)
}

// StatusEvent maps the PATCH ?status= values the front end sends to
// lifecycle events, relative to the request's current status.
func StatusEvent(current, target models.MaintenanceStatus) (MaintenanceEvent, error) {
	switch target {
	case models.MaintenanceStatusChecked:
		return EventCheck, nil
	case models.MaintenanceStatusRejected:
		return EventReject, nil
	case models.MaintenanceStatusApproved:
		return EventApprove, nil
	case models.MaintenanceStatusCompleted:
		return EventMarkComplete, nil
	}
	return "", invalidTransition("status %q cannot be requested directly from %q", target, current)
}

// Accepted reports whether the acceptance payload has been recorded on an
// approved request. Completion is gated on this.
func Accepted(req *models.MaintenanceRequest) bool {
	return len(req.Signatures) > 0 || req.FuelAmount > 0 || req.RequestingPersonnel != ""
}

// CanSubmitAcceptance checks the acceptance gate without mutating the
// request, so callers can refuse side effects (like file uploads) up front.
func CanSubmitAcceptance(req *models.MaintenanceRequest, actor models.Actor) error {
	if _, err := NextMaintenanceStatus(req.Status, EventSubmitAcceptance, actor.Role); err != nil {
		return err
	}
	if Accepted(req) {
		return invalidTransition("acceptance already recorded for request %s", req.ID.Hex())
	}
	return nil
}

// CanSubmitReturn is the same non-mutating gate for the return event.
func CanSubmitReturn(req *models.MaintenanceRequest, actor models.Actor) error {
	_, err := NextMaintenanceStatus(req.Status, EventSubmitReturn, actor.Role)
	return err
}

// ApplyAcceptance writes the acceptance payload onto an approved request.
// Acceptance fields are writable only through this event; the request stays
// APPROVED.
func ApplyAcceptance(req *models.MaintenanceRequest, actor models.Actor, p *models.AcceptancePayload, now time.Time) error {
	if err := CanSubmitAcceptance(req, actor); err != nil {
		return err
	}

	req.FuelAmount = p.FuelAmount
	req.RequestingPersonnel = p.RequestingPersonnel
	req.AuthorizingPersonnel = p.AuthorizingPersonnel
	req.PhysicalContent = p.PhysicalContent
	req.Notes = p.Notes
	req.Attachments = append(req.Attachments, p.Attachments...)
	req.CarImages = append(req.CarImages, p.CarImages...)
	req.Signatures = p.Signatures
	req.UpdatedAt = now
	return nil
}

// MarkComplete moves an enriched approved request to COMPLETED.
func MarkComplete(req *models.MaintenanceRequest, actor models.Actor, now time.Time) error {
	next, err := NextMaintenanceStatus(req.Status, EventMarkComplete, actor.Role)
	if err != nil {
		return err
	}
	if !Accepted(req) {
		return invalidTransition("request %s has no acceptance record", req.ID.Hex())
	}
	req.Status = next
	req.UpdatedAt = now
	return nil
}

// ApplyReturn closes out a completed request with the return payload and
// moves it to the terminal FINISHED status.
func ApplyReturn(req *models.MaintenanceRequest, actor models.Actor, p *models.ReturnPayload, now time.Time) error {
	next, err := NextMaintenanceStatus(req.Status, EventSubmitReturn, actor.Role)
	if err != nil {
		return err
	}

	req.Status = next
	req.ReturnKilometerReading = p.ReturnKilometerReading
	req.ReturnFuelAmount = p.ReturnFuelAmount
	req.ReturnNotes = p.ReturnNotes
	req.ReturnFiles = append(req.ReturnFiles, p.ReturnFiles...)
	req.ReturnSignatures = p.ReturnSignatures
	req.UpdatedAt = now
	return nil
}
