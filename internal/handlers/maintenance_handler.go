package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MhiretKiros/TTMS-sub002/internal/middleware"
	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/services"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
	"github.com/MhiretKiros/TTMS-sub002/internal/validators"
	"github.com/MhiretKiros/TTMS-sub002/internal/workflow"
)

type MaintenanceHandler struct {
	maintenanceService services.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
	}
}

// Create registers a driver's defect report as a PENDING request.
func (h *MaintenanceHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req models.MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateMaintenanceRequest(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	created, err := h.maintenanceService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.CreatedResponse(c, "Maintenance request created successfully", created)
}

// List returns the actor's work queue.
func (h *MaintenanceHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	requests, total, err := h.maintenanceService.ListForActor(c.Request.Context(), actor, params)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Maintenance requests retrieved successfully", requests, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// ListRoleView backs the fixed role-scoped queue endpoints. The driver view
// filters by the reporting driver's name instead of status.
func (h *MaintenanceHandler) ListRoleView(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewActor := models.Actor{Role: role}
		if role == models.RoleDriver {
			viewActor.Name = c.Query("driverName")
			if viewActor.Name == "" {
				if actor, ok := middleware.ActorFromContext(c); ok {
					viewActor.Name = actor.Name
				}
			}
		}

		params := utils.GetPaginationParams(c)
		requests, total, err := h.maintenanceService.ListForActor(c.Request.Context(), viewActor, params)
		if err != nil {
			respondWorkflowError(c, err)
			return
		}

		utils.SuccessResponseWithMeta(c, "Maintenance requests retrieved successfully", requests, &utils.Meta{
			Pagination: utils.CreatePaginationMeta(params, total),
		})
	}
}

func (h *MaintenanceHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid request ID")
		return
	}

	req, err := h.maintenanceService.Get(c.Request.Context(), id)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Maintenance request retrieved successfully", req)
}

// UpdateStatus handles PATCH /:id/status?status= for the review transitions.
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
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

	target := models.MaintenanceStatus(c.Query("status"))
	if !target.Valid() {
		utils.BadRequestResponse(c, "Unknown status "+c.Query("status"))
		return
	}

	// Optional body carrying the maintenance reviewer's diagnosis.
	var body struct {
		MechanicDiagnosis string `json:"mechanicDiagnosis"`
	}
	_ = c.ShouldBindJSON(&body)

	req, err := h.maintenanceService.UpdateStatus(c.Request.Context(), actor, id, target, body.MechanicDiagnosis)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Maintenance request status updated successfully", req)
}

// SubmitAcceptance handles the atomic multipart acceptance submission: a
// "data" JSON part plus attachment and car image file parts.
func (h *MaintenanceHandler) SubmitAcceptance(c *gin.Context) {
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

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form: "+err.Error())
		return
	}

	var payload models.AcceptancePayload
	if data := c.PostForm("data"); data != "" {
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			utils.BadRequestResponse(c, "Invalid acceptance data: "+err.Error())
			return
		}
	}

	if errs := validators.ValidateAcceptancePayload(&payload); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	req, err := h.maintenanceService.SubmitAcceptance(c.Request.Context(), actor, id, &payload,
		form.File["attachments"], form.File["carImages"])
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Acceptance recorded successfully", req)
}

// UploadFiles appends attachments to an approved request.
func (h *MaintenanceHandler) UploadFiles(c *gin.Context) {
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

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form: "+err.Error())
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No files provided")
		return
	}
	if len(files) > utils.MaxUploadFiles {
		utils.BadRequestResponse(c, "Too many files")
		return
	}

	req, err := h.maintenanceService.UploadFiles(c.Request.Context(), actor, id, files)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Files uploaded successfully", req)
}

// CompleteReturn handles the atomic multipart return submission.
func (h *MaintenanceHandler) CompleteReturn(c *gin.Context) {
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

	var payload models.ReturnPayload

	if form, err := c.MultipartForm(); err == nil {
		if data := c.PostForm("data"); data != "" {
			if err := json.Unmarshal([]byte(data), &payload); err != nil {
				utils.BadRequestResponse(c, "Invalid return data: "+err.Error())
				return
			}
		}
		if errs := validators.ValidateReturnPayload(&payload); len(errs) > 0 {
			utils.ValidationErrorResponse(c, errs.ToMap())
			return
		}

		req, err := h.maintenanceService.CompleteReturn(c.Request.Context(), actor, id, &payload, form.File["returnFiles"])
		if err != nil {
			respondWorkflowError(c, err)
			return
		}
		utils.SuccessResponse(c, "Return completed successfully", req)
		return
	}

	// JSON fallback for clients that upload return files separately.
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateReturnPayload(&payload); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	req, err := h.maintenanceService.CompleteReturn(c.Request.Context(), actor, id, &payload, nil)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Return completed successfully", req)
}

// UploadReturnFiles appends files to a completed request before close-out.
func (h *MaintenanceHandler) UploadReturnFiles(c *gin.Context) {
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

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form: "+err.Error())
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No files provided")
		return
	}

	req, err := h.maintenanceService.UploadReturnFiles(c.Request.Context(), actor, id, files)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Return files uploaded successfully", req)
}

// PermittedEvents tells the front end which buttons to render.
func (h *MaintenanceHandler) PermittedEvents(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	status := models.MaintenanceStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		utils.BadRequestResponse(c, "Unknown status "+c.Query("status"))
		return
	}

	events := h.maintenanceService.PermittedEvents(actor, status)
	if events == nil {
		events = []workflow.MaintenanceEvent{}
	}

	utils.SuccessResponse(c, "Permitted events retrieved successfully", events)
}
