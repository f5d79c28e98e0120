package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/app/services"
	"github.com/emrekaya/clubsphere/internal/middleware"
)

// EventController handles event CRUD endpoints
type EventController struct {
	eventService services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

// parseIDParam extracts a positive int64 path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Invalid "+name+" parameter")))
		return 0, false
	}
	return id, true
}

// viewerID returns the authenticated member's ID, or 0 when anonymous
func viewerID(ctx *gin.Context) int64 {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		return 0
	}
	return userID
}

// actorRole returns the authenticated member's role
func actorRole(ctx *gin.Context) models.RoleType {
	role, exists := ctx.Get("roleType")
	if !exists {
		return models.RoleMember
	}
	roleStr, ok := role.(string)
	if !ok {
		return models.RoleMember
	}
	return models.RoleType(roleStr)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates a new event and notifies members
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid date or category"
// @Failure 401 {object} dto.ErrorResponse
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid event data")
		return
	}

	resp, err := c.eventService.CreateEvent(ctx, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Event created successfully"))
}

// GetEvents godoc
// @Summary List events
// @Description Retrieves events with filtering and pagination, soonest first
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param search query string false "Search in title, location and description"
// @Param from query string false "Only events at or after this date"
// @Param to query string false "Only events at or before this date"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /events [get]
func (c *EventController) GetEvents(ctx *gin.Context) {
	var filter dto.EventFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid filter parameters")
		return
	}

	resp, err := c.eventService.GetAllEvents(ctx, &filter, viewerID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GetEvent godoc
// @Summary Get an event
// @Description Retrieves a single event with capacity and registration state
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.GetEventByID(ctx, eventID, viewerID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Applies a partial update. Only the creator or an admin may update.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid event data")
		return
	}

	resp, err := c.eventService.UpdateEvent(ctx, eventID, &req, userID, actorRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Event updated successfully"))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Removes an event and its registrations. Only the creator or an admin may delete.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.eventService.DeleteEvent(ctx, eventID, userID, actorRole(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.SuccessResponse{Message: "Event deleted successfully"}, ""))
}
