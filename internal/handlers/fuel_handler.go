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

type FuelHandler struct {
	fuelService services.FuelService
}

func NewFuelHandler(fuelService services.FuelService) *FuelHandler {
	return &FuelHandler{
		fuelService: fuelService,
	}
}

// Create opens a new fuel/oil/grease request in the approval chain.
func (h *FuelHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req models.FuelOilGreaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateFuelRequest(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	created, err := h.fuelService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.CreatedResponse(c, "Fuel request created successfully", created)
}

// List returns the actor's stage of the chain, or a named view when the
// front end asks for one via ?view=.
func (h *FuelHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)

	var (
		requests []*models.FuelOilGreaseRequest
		total    int64
		err      error
	)
	switch c.Query("view") {
	case "head-mechanic":
		requests, total, err = h.fuelService.ListByStatus(c.Request.Context(), models.FuelRequestStatusPending, params)
	case "nezek":
		requests, total, err = h.fuelService.ListByStatus(c.Request.Context(), models.FuelRequestStatusChecked, params)
	default:
		requests, total, err = h.fuelService.ListForActor(c.Request.Context(), actor, params)
	}
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Fuel requests retrieved successfully", requests, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *FuelHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID")
		return
	}

	req, err := h.fuelService.Get(c.Request.Context(), id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Fuel request retrieved successfully", req)
}

// ListByStatus backs the /pending, /checked and /approved views.
func (h *FuelHandler) ListByStatus(status models.FuelRequestStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := utils.GetPaginationParams(c)
		requests, total, err := h.fuelService.ListByStatus(c.Request.Context(), status, params)
		if err != nil {
			respondWorkflowError(c, err)
			return
		}

		utils.SuccessResponseWithMeta(c, "Fuel requests retrieved successfully", requests, &utils.Meta{
			Pagination: utils.CreatePaginationMeta(params, total),
		})
	}
}

func (h *FuelHandler) ListByMechanic(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	requests, total, err := h.fuelService.ListByMechanic(c.Request.Context(), c.Param("name"), params)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Fuel requests retrieved successfully", requests, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *FuelHandler) ListPendingFulfillment(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	requests, total, err := h.fuelService.ListPendingFulfillment(c.Request.Context(), params)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Fuel requests awaiting fulfillment retrieved successfully", requests, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// Update lets the originating mechanic amend an unreviewed request.
func (h *FuelHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID")
		return
	}

	var updated models.FuelOilGreaseRequest
	if err := c.ShouldBindJSON(&updated); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	req, err := h.fuelService.Update(c.Request.Context(), actor, id, &updated)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Fuel request updated successfully", req)
}

func (h *FuelHandler) HeadMechanicReview(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID")
		return
	}

	req, err := h.fuelService.HeadMechanicReview(c.Request.Context(), actor, id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Fuel request checked successfully", req)
}

func (h *FuelHandler) NezekReview(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID")
		return
	}

	var body struct {
		Approve *bool  `json:"approve" binding:"required"`
		Remark  string `json:"remark"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, "Invalid request: approve is required")
		return
	}

	req, err := h.fuelService.NezekReview(c.Request.Context(), actor, id, *body.Approve)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Fuel request reviewed successfully", req)
}

func (h *FuelHandler) Fulfill(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID")
		return
	}

	var payload models.FulfillmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateFulfillmentPayload(&payload); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	req, err := h.fuelService.Fulfill(c.Request.Context(), actor, id, &payload)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Fuel request fulfilled successfully", req)
}
