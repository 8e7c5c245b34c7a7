package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/repositories/interfaces"
	"github.com/MhiretKiros/TTMS-sub002/internal/services"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
	"github.com/MhiretKiros/TTMS-sub002/internal/validators"
)

type FleetHandler struct {
	fleetService services.FleetService
	employeeRepo interfaces.EmployeeRepository
	routeRepo    interfaces.RouteRepository
}

func NewFleetHandler(fleetService services.FleetService, employeeRepo interfaces.EmployeeRepository, routeRepo interfaces.RouteRepository) *FleetHandler {
	return &FleetHandler{
		fleetService: fleetService,
		employeeRepo: employeeRepo,
		routeRepo:    routeRepo,
	}
}

// ServiceBuses returns the organization bus fleet with seat assignments.
func (h *FleetHandler) ServiceBuses(c *gin.Context) {
	views, err := h.fleetService.ServiceBusSeatViews(c.Request.Context())
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	utils.SuccessResponse(c, "Service buses retrieved successfully", views)
}

// RentBusMinibus returns the rented bus and minibus fleet with seat
// assignments.
func (h *FleetHandler) RentBusMinibus(c *gin.Context) {
	views, err := h.fleetService.RentBusMinibusViews(c.Request.Context())
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	utils.SuccessResponse(c, "Rent buses retrieved successfully", views)
}

// AvailableSeats is the combined joined read model across both fleets.
func (h *FleetHandler) AvailableSeats(c *gin.Context) {
	service, err := h.fleetService.ServiceBusSeatViews(c.Request.Context())
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	rent, err := h.fleetService.RentBusMinibusViews(c.Request.Context())
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	utils.SuccessResponse(c, "Seat availability retrieved successfully", append(service, rent...))
}

func (h *FleetHandler) RentCarRoutes(c *gin.Context) {
	routes, err := h.fleetService.RentCarRoutes(c.Request.Context())
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	utils.SuccessResponse(c, "Rent car routes retrieved successfully", routes)
}

func (h *FleetHandler) Routes(c *gin.Context) {
	source := models.CarSource(c.DefaultQuery("source", string(models.CarSourceService)))
	routes, err := h.routeRepo.ListBySource(c.Request.Context(), source)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	utils.SuccessResponse(c, "Routes retrieved successfully", routes)
}

func (h *FleetHandler) Employees(c *gin.Context) {
	employees, err := h.employeeRepo.List(c.Request.Context())
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	utils.SuccessResponse(c, "Employees retrieved successfully", employees)
}

// AssignCar seats an employee on a car, refusing once the car is full.
func (h *FleetHandler) AssignCar(c *gin.Context) {
	var assignment models.CarAssignment
	if err := c.ShouldBindJSON(&assignment); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&assignment); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	if err := h.fleetService.AssignEmployee(c.Request.Context(), &assignment); err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.CreatedResponse(c, "Employee assigned successfully", assignment)
}

func (h *FleetHandler) UnassignCar(c *gin.Context) {
	if err := h.fleetService.UnassignEmployee(c.Request.Context(), c.Param("id")); err != nil {
		respondWorkflowError(c, err)
		return
	}
	utils.SuccessResponse(c, "Employee unassigned successfully", nil)
}
