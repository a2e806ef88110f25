package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AbrahamLara/chat-app-backend/internal/services"
	"github.com/AbrahamLara/chat-app-backend/internal/transport/httpdto"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users, backing the chat-creation participant picker.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", httpdto.CodeInternalError))
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListUsersResponse{Users: users}))
}
