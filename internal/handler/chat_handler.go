package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AbrahamLara/chat-app-backend/internal/services"
	"github.com/AbrahamLara/chat-app-backend/internal/transport/httpdto"
	apperrors "github.com/AbrahamLara/chat-app-backend/pkg/errors"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Create handles POST /chats.
func (h *ChatHandler) Create(c *gin.Context) {
	var req httpdto.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", httpdto.CodeInvalidRequest))
		return
	}

	caller, ok := services.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", httpdto.CodeUnauthorized))
		return
	}

	userIDs := make([]uuid.UUID, 0, len(req.UserIDs))
	for _, idStr := range req.UserIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpdto.NewFormErrorResponse(map[string]string{
				"userIDs": "user ids must be valid uuids",
			}))
			return
		}
		userIDs = append(userIDs, id)
	}

	summary, err := h.service.Create(c.Request.Context(), services.CreateChatInput{
		Caller:   caller,
		UserIDs:  userIDs,
		ChatName: req.ChatName,
		Message:  req.Message,
	})
	if err != nil {
		writeChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.CreateChatResponse{Chat: summary}))
}

// List handles GET /chats: the caller's chats, most recent message each.
func (h *ChatHandler) List(c *gin.Context) {
	caller, ok := services.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", httpdto.CodeUnauthorized))
		return
	}

	chats, err := h.service.ListLatest(c.Request.Context(), caller.UserID)
	if err != nil {
		writeChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListChatsResponse{Chats: chats}))
}

// Members handles GET /chats/:chatID/members.
func (h *ChatHandler) Members(c *gin.Context) {
	caller, ok := services.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", httpdto.CodeUnauthorized))
		return
	}

	chatID, err := uuid.Parse(c.Param("chatID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", httpdto.CodeInvalidRequest))
		return
	}

	members, err := h.service.Members(c.Request.Context(), caller.UserID, chatID)
	if err != nil {
		writeChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ListMembersResponse{Members: members}))
}

func writeChatError(c *gin.Context, err error) {
	var validation *apperrors.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, httpdto.NewFormErrorResponse(validation.Fields))
		return
	}

	switch services.HTTPStatus(err) {
	case http.StatusForbidden:
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("forbidden", httpdto.CodeForbidden))
	case http.StatusUnauthorized:
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", httpdto.CodeUnauthorized))
	case http.StatusBadRequest:
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", httpdto.CodeInvalidRequest))
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", httpdto.CodeInternalError))
	}
}
