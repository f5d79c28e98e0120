package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/app/services"
	"github.com/emrekaya/clubsphere/internal/middleware"
)

// ChatController handles event chat endpoints
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// GetMessages godoc
// @Summary Get event chat messages
// @Description Retrieves chat messages for an event. Only registered attendees can read the chat.
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param before query string false "Return messages before this timestamp (RFC3339)"
// @Param after query string false "Return messages after this timestamp (RFC3339)"
// @Param limit query int false "Maximum number of messages (default 50, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ChatMessageListResponse}
// @Failure 403 {object} dto.ErrorResponse "Not registered for this event"
// @Router /events/{id}/chat [get]
func (c *ChatController) GetMessages(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.GetChatMessagesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid chat query parameters")
		return
	}

	resp, err := c.chatService.GetMessages(ctx, eventID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// SendMessage godoc
// @Summary Send a chat message
// @Description Posts a message to the event chat. Only registered attendees can post.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.CreateChatMessageRequest true "Message content"
// @Success 201 {object} dto.APIResponse{data=dto.ChatMessageResponse}
// @Failure 403 {object} dto.ErrorResponse "Not registered for this event"
// @Router /events/{id}/chat [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid chat message")
		return
	}

	resp, err := c.chatService.SendMessage(ctx, eventID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Message sent"))
}
