package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/app/services"
	"github.com/emrekaya/clubsphere/internal/middleware"
	"github.com/emrekaya/clubsphere/internal/pkg/helpers"
)

// RegistrationController handles event registration endpoints
type RegistrationController struct {
	rsvpService services.RSVPService
	logger      zerolog.Logger
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(rsvpService services.RSVPService, logger zerolog.Logger) *RegistrationController {
	return &RegistrationController{
		rsvpService: rsvpService,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register for an event
// @Description Signs the member up for an event. Registering twice is a benign no-op:
// @Description the existing registration is kept and the attendee count does not change.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.RegisterForEventRequest true "Registration form; variant fields depend on the event's category"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResultResponse}
// @Failure 400 {object} dto.ErrorResponse "Form invalid for the event's category"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Event full or already started"
// @Router /events/{id}/registrations [post]
func (c *RegistrationController) Register(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RegisterForEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid registration form")
		return
	}

	resp, err := c.rsvpService.Register(ctx, eventID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Registered for event"
	if resp.AlreadyApplied {
		message = "Already registered for event"
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, message))
}

// Cancel godoc
// @Summary Cancel an event registration
// @Description Withdraws the member's registration. Cancelling without a registration is a benign no-op.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResultResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/registrations [delete]
func (c *RegistrationController) Cancel(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.rsvpService.Cancel(ctx, eventID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Registration cancelled"))
}

// GetStatus godoc
// @Summary Check own registration status
// @Description Reports whether the member is registered for the event
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationStatusResponse}
// @Router /events/{id}/registrations/me [get]
func (c *RegistrationController) GetStatus(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.rsvpService.IsRegistered(ctx, eventID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GetAttendeeCount godoc
// @Summary Get attendee count
// @Description Returns the authoritative attendee count computed from the registration ledger
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.AttendeeCountResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/attendees/count [get]
func (c *RegistrationController) GetAttendeeCount(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.rsvpService.GetAttendeeCount(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// ListAttendees godoc
// @Summary List event attendees
// @Description Retrieves the event's registrations with pagination, earliest first
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.AttendeeListResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/attendees [get]
func (c *RegistrationController) ListAttendees(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.rsvpService.ListAttendees(ctx, eventID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
