package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MhiretKiros/TTMS-sub002/internal/models"
	"github.com/MhiretKiros/TTMS-sub002/internal/services"
	"github.com/MhiretKiros/TTMS-sub002/internal/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body struct {
		Username string      `json:"username" binding:"required"`
		FullName string      `json:"fullName" binding:"required"`
		Password string      `json:"password" binding:"required"`
		Role     models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	user := &models.User{
		Username: body.Username,
		FullName: body.FullName,
		Role:     body.Role,
	}

	created, err := h.authService.Register(c.Request.Context(), user, body.Password)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.CreatedResponse(c, "User registered successfully", created)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		utils.UnauthorizedResponse(c)
		return
	}

	utils.SuccessResponse(c, "Login successful", gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), body.RefreshToken)
	if err != nil {
		utils.UnauthorizedResponse(c)
		return
	}

	utils.SuccessResponse(c, "Token refreshed successfully", tokens)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "Users retrieved successfully", users)
}

func (h *AuthHandler) UpdateUserRole(c *gin.Context) {
	var body struct {
		Role models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.UpdateUserRole(c.Request.Context(), c.Param("id"), body.Role); err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "User role updated successfully", nil)
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	if err := h.authService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondWorkflowError(c, err)
		return
	}

	utils.SuccessResponse(c, "User deleted successfully", nil)
}
