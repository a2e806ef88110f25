// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AbrahamLara/chat-app-backend/internal/services"
	"github.com/AbrahamLara/chat-app-backend/internal/transport/httpdto"
	apperrors "github.com/AbrahamLara/chat-app-backend/pkg/errors"
)

// AuthHandler handles registration and login endpoints.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", httpdto.CodeInvalidRequest))
		return
	}

	err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.RegisterResponse{
		Message: httpdto.RegisterSucceeded,
	}))
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", httpdto.CodeInvalidRequest))
		return
	}

	token, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.LoginResponse{Token: token}))
}

func writeAuthError(c *gin.Context, err error) {
	var validation *apperrors.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, httpdto.NewFormErrorResponse(validation.Fields))
		return
	}

	status := services.HTTPStatus(err)
	switch {
	case errors.Is(err, apperrors.ErrAlreadyExists):
		c.JSON(status, httpdto.NewErrorResponse("email already in use", httpdto.CodeEmailInUse))
	case errors.Is(err, apperrors.ErrInvalidEmail):
		c.JSON(status, httpdto.NewErrorResponse("invalid email", httpdto.CodeInvalidEmail))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(status, httpdto.NewErrorResponse("invalid credentials", httpdto.CodeInvalidCredentials))
	case status == http.StatusBadRequest:
		c.JSON(status, httpdto.NewErrorResponse("invalid request", httpdto.CodeInvalidRequest))
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", httpdto.CodeInternalError))
	}
}
