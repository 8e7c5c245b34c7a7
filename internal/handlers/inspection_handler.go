package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MhiretKiros/TTMS-sub002/internal/middleware"
	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/services"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
	"github.com/MhiretKiros/TTMS-sub002/internal/validators"
)

type InspectionHandler struct {
	inspectionService services.InspectionService
}

func NewInspectionHandler(inspectionService services.InspectionService) *InspectionHandler {
	return &InspectionHandler{
		inspectionService: inspectionService,
	}
}

// Submit evaluates and stores a three-phase inspection.
func (h *InspectionHandler) Submit(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var insp models.Inspection
	if err := c.ShouldBindJSON(&insp); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateInspection(&insp); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	created, err := h.inspectionService.Submit(c.Request.Context(), actor, &insp)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.CreatedResponse(c, "Inspection submitted successfully", created)
}

func (h *InspectionHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var (
		inspections []*models.Inspection
		total       int64
		err         error
	)
	if plate := c.Query("plateNumber"); plate != "" {
		inspections, total, err = h.inspectionService.ListByPlate(c.Request.Context(), plate, params)
	} else {
		inspections, total, err = h.inspectionService.List(c.Request.Context(), params)
	}
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Inspections retrieved successfully", inspections, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *InspectionHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid inspection ID")
		return
	}

	insp, err := h.inspectionService.Get(c.Request.Context(), id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Inspection retrieved successfully", insp)
}

// UpdateCarStatus backs the legacy per-collection update-inspection-status
// endpoints.
func (h *InspectionHandler) UpdateCarStatus(source models.CarSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.ActorFromContext(c)
		if !ok {
			utils.UnauthorizedResponse(c)
			return
		}

		var body struct {
			PlateNumber   string                  `json:"plateNumber" binding:"required"`
			Result        models.InspectionStatus `json:"result" binding:"required"`
			ServiceStatus models.ServiceStatus    `json:"serviceStatus" binding:"required"`
			InspectionID  string                  `json:"inspectionId"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.BadRequestResponse(c, "Invalid request: "+err.Error())
			return
		}

		var inspectionID primitive.ObjectID
		if body.InspectionID != "" {
			var err error
			inspectionID, err = primitive.ObjectIDFromHex(body.InspectionID)
			if err != nil {
				utils.BadRequestResponse(c, "Invalid inspection ID")
				return
			}
		}

		err := h.inspectionService.UpdateCarStatus(c.Request.Context(), actor, source,
			body.PlateNumber, body.Result, body.ServiceStatus, inspectionID)
		if err != nil {
			respondWorkflowError(c, err)
			return
		}

		utils.SuccessResponse(c, "Inspection status updated successfully", nil)
	}
}
