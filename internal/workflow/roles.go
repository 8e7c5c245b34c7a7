package workflow

import (
	"github.com/MhiretKiros/TTMS-sub002/internal/models"
)

// PermittedEvents lists the lifecycle events a role may attempt from the
// given status. The front end uses this to decide which buttons to render;
// the engine re-checks every attempt regardless.
func PermittedEvents(role models.Role, status models.MaintenanceStatus) []MaintenanceEvent {
	var events []MaintenanceEvent
	for tr, rule := range maintenanceTable {
		if tr.from != status {
			continue
		}
		for _, r := range rule.roles {
			if r == role {
				events = append(events, tr.event)
				break
			}
		}
	}
	return events
}

// WritableFields returns the maintenance-request fields a role may write
// while the request sits in the given status. Origination fields are only
// writable at creation; acceptance and return fields only through their
// events.
func WritableFields(role models.Role, status models.MaintenanceStatus) []string {
	switch {
	case role == models.RoleDriver && status == "":
		return []string{
			"plateNumber", "vehicleType", "reportingDriver", "categoryWorkProcess",
			"kilometerReading", "defectDetails",
		}
	case role == models.RoleDistributor && status == models.MaintenanceStatusPending:
		return []string{"status", "headMechanicName"}
	case role == models.RoleMaintenance && status == models.MaintenanceStatusChecked:
		return []string{"status", "mechanicDiagnosis"}
	case (role == models.RoleDriver || role == models.RoleInspector) && status == models.MaintenanceStatusApproved:
		return []string{
			"fuelAmount", "attachments", "physicalContent", "notes", "carImages",
			"signatures", "requestingPersonnel", "authorizingPersonnel",
		}
	case role == models.RoleInspector && status == models.MaintenanceStatusCompleted:
		return []string{
			"returnKilometerReading", "returnFuelAmount", "returnNotes",
			"returnFiles", "returnSignatures",
		}
	}
	return nil
}

// RoleView maps a role to the statuses its work queue lists.
func RoleView(role models.Role) []models.MaintenanceStatus {
	switch role {
	case models.RoleDistributor:
		return []models.MaintenanceStatus{models.MaintenanceStatusPending}
	case models.RoleMaintenance:
		return []models.MaintenanceStatus{models.MaintenanceStatusChecked}
	case models.RoleInspector:
		return []models.MaintenanceStatus{
			models.MaintenanceStatusApproved,
			models.MaintenanceStatusCompleted,
		}
	case models.RoleDriver:
		// Drivers see their own requests in every status; filtering is by
		// reporting driver, not status.
		return nil
	}
	return nil
}
