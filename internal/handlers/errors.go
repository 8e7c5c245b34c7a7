package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
	"github.com/MhiretKiros/TTMS-sub002/internal/workflow"
)

// respondWorkflowError maps domain errors onto the API envelope: permission
// problems are 403, out-of-order transitions 409, locked field writes and
// malformed input 400, missing records 404, anything else 500.
func respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrPermissionDenied):
		utils.ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, workflow.ErrInvalidTransition):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, workflow.ErrReadOnlyField):
		utils.BadRequestResponse(c, err.Error())
	case strings.Contains(err.Error(), "not found"):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case strings.HasPrefix(err.Error(), "invalid"):
		utils.BadRequestResponse(c, err.Error())
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
