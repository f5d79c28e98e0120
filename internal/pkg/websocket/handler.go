package websocket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/repositories"
	"github.com/emrekaya/clubsphere/internal/pkg/apperrors"
)

// Handler for WebSocket connections
type Handler struct {
	hub              *Hub
	registrationRepo *repositories.RegistrationRepository
	logger           zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(
	hub *Hub,
	registrationRepo *repositories.RegistrationRepository,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		hub:              hub,
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

// HandleConnection godoc
// @Summary Establish a WebSocket connection for an event channel
// @Description Upgrades HTTP connection to a WebSocket for real-time event chat and attendee count updates
// @Tags events, websocket
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} gin.H "Invalid event ID"
// @Failure 401 {object} gin.H "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} gin.H "Forbidden: User is not registered for the event"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /ws/events/{id} [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	eventIDStr := c.Param("id")
	eventID, err := strconv.ParseInt(eventIDStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid event ID",
		})
		return
	}

	// Get user ID from context (set by auth middleware)
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in context",
		})
		return
	}

	userID, ok := userIDInterface.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	// Only registered attendees may join an event channel
	isRegistered, err := h.registrationRepo.IsRegistered(c, eventID, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("eventID", eventID).
			Int64("userID", userID).
			Msg("Failed to check registration status")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check registration status",
		})
		return
	}

	if !isRegistered {
		c.JSON(http.StatusForbidden, gin.H{
			"error": apperrors.NewForbiddenError("User is not registered for this event").Error(),
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("eventID", eventID).
			Int64("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		userID:  userID,
		eventID: eventID,
		logger:  h.logger,
	}
	client.hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("eventID", eventID).
		Int64("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
