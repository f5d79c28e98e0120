package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/app/repositories"
	"github.com/emrekaya/clubsphere/internal/monitoring"
	"github.com/emrekaya/clubsphere/internal/pkg/apperrors"
	"github.com/emrekaya/clubsphere/internal/pkg/capacity"
	"github.com/emrekaya/clubsphere/internal/pkg/helpers"
	"github.com/emrekaya/clubsphere/internal/pkg/validation"
)

// RSVPService defines the interface for event registration operations
type RSVPService interface {
	Register(ctx context.Context, eventID, userID int64, req *dto.RegisterForEventRequest) (*dto.RegistrationResultResponse, error)
	Cancel(ctx context.Context, eventID, userID int64) (*dto.RegistrationResultResponse, error)
	IsRegistered(ctx context.Context, eventID, userID int64) (*dto.RegistrationStatusResponse, error)
	GetAttendeeCount(ctx context.Context, eventID int64) (*dto.AttendeeCountResponse, error)
	ListAttendees(ctx context.Context, eventID int64, page, size int) (*dto.AttendeeListResponse, error)
}

// registrationStore is the slice of the registration repository the service needs
type registrationStore interface {
	Register(ctx context.Context, reg *models.Registration) (repositories.RegisterOutcome, error)
	Cancel(ctx context.Context, eventID, userID int64) (repositories.RegisterOutcome, error)
	IsRegistered(ctx context.Context, eventID, userID int64) (bool, error)
	CountByEventID(ctx context.Context, eventID int64) (int, error)
	ListByEventID(ctx context.Context, eventID int64, offset uint64, limit int) ([]*models.Registration, error)
}

// eventGetter resolves events for validation and capacity math
type eventGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

// countBroadcaster pushes live attendee count updates to event watchers
type countBroadcaster interface {
	BroadcastAttendeeCount(eventID int64, attendeeCount, spotsRemaining int)
}

// rsvpServiceImpl implements RSVPService
type rsvpServiceImpl struct {
	registrationRepo registrationStore
	eventRepo        eventGetter
	broadcaster      countBroadcaster
	logger           zerolog.Logger
}

// NewRSVPService creates a new RSVPService. broadcaster may be nil when no
// live channel is wired (tests, CLI tools).
func NewRSVPService(
	registrationRepo registrationStore,
	eventRepo eventGetter,
	broadcaster countBroadcaster,
	logger zerolog.Logger,
) RSVPService {
	return &rsvpServiceImpl{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		broadcaster:      broadcaster,
		logger:           logger,
	}
}

// Register signs the member up for an event. Registering twice is a benign
// no-op: the first registration stays untouched and the counter does not move.
func (s *rsvpServiceImpl) Register(ctx context.Context, eventID, userID int64, req *dto.RegisterForEventRequest) (*dto.RegistrationResultResponse, error) {
	s.logger.Debug().
		Int64("eventID", eventID).
		Int64("userID", userID).
		Msg("Registering member for event")

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		monitoring.RecordRegistration("register", "error")
		return nil, err
	}

	if validationErrs := validation.ValidateRegistrationForm(event.Category, req); validationErrs != nil {
		monitoring.RecordRegistration("register", "invalid")
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Registration form is invalid").
			WithDetails(map[string]interface{}{"errors": validationErrs.Errors})
	}

	reg := &models.Registration{
		EventID:     eventID,
		UserID:      userID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Major:       req.Major,
		StudentYear: req.StudentYear,
		Details:     buildDetails(event.Category, req),
	}

	outcome, err := s.registrationRepo.Register(ctx, reg)
	if err != nil {
		monitoring.RecordRegistration("register", registerFailureStatus(err))
		s.logger.Warn().Err(err).
			Int64("eventID", eventID).
			Int64("userID", userID).
			Msg("Registration rejected")
		return nil, err
	}

	if outcome.Changed {
		monitoring.RecordRegistration("register", "created")
		monitoring.SetAttendeeCount(eventID, outcome.AttendeeCount)
		if s.broadcaster != nil {
			s.broadcaster.BroadcastAttendeeCount(eventID, outcome.AttendeeCount, outcome.SpotsRemaining)
		}
	} else {
		monitoring.RecordRegistration("register", "duplicate")
		s.logger.Debug().
			Int64("eventID", eventID).
			Int64("userID", userID).
			Msg("Member already registered, no-op")
	}

	return &dto.RegistrationResultResponse{
		EventID:        eventID,
		RegistrationID: reg.ID,
		Registered:     true,
		AlreadyApplied: !outcome.Changed,
		AttendeeCount:  outcome.AttendeeCount,
		SpotsRemaining: outcome.SpotsRemaining,
	}, nil
}

// Cancel withdraws the member's registration. Cancelling when not registered
// is a benign no-op.
func (s *rsvpServiceImpl) Cancel(ctx context.Context, eventID, userID int64) (*dto.RegistrationResultResponse, error) {
	s.logger.Debug().
		Int64("eventID", eventID).
		Int64("userID", userID).
		Msg("Cancelling event registration")

	outcome, err := s.registrationRepo.Cancel(ctx, eventID, userID)
	if err != nil {
		monitoring.RecordRegistration("cancel", "error")
		return nil, err
	}

	if outcome.Changed {
		monitoring.RecordRegistration("cancel", "removed")
		monitoring.SetAttendeeCount(eventID, outcome.AttendeeCount)
		if s.broadcaster != nil {
			s.broadcaster.BroadcastAttendeeCount(eventID, outcome.AttendeeCount, outcome.SpotsRemaining)
		}
	} else {
		monitoring.RecordRegistration("cancel", "noop")
	}

	return &dto.RegistrationResultResponse{
		EventID:        eventID,
		Registered:     false,
		AttendeeCount:  outcome.AttendeeCount,
		SpotsRemaining: outcome.SpotsRemaining,
	}, nil
}

// IsRegistered reports whether the member holds a live registration
func (s *rsvpServiceImpl) IsRegistered(ctx context.Context, eventID, userID int64) (*dto.RegistrationStatusResponse, error) {
	registered, err := s.registrationRepo.IsRegistered(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking registration status: %w", err)
	}

	return &dto.RegistrationStatusResponse{
		EventID:    eventID,
		Registered: registered,
	}, nil
}

// GetAttendeeCount returns the authoritative attendee count for an event,
// computed from the registration ledger rather than the cached counter.
func (s *rsvpServiceImpl) GetAttendeeCount(ctx context.Context, eventID int64) (*dto.AttendeeCountResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	count, err := s.registrationRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error counting attendees: %w", err)
	}

	return &dto.AttendeeCountResponse{
		EventID:        eventID,
		AttendeeCount:  count,
		Spots:          event.Spots,
		SpotsRemaining: capacity.SpotsRemaining(event.Spots, count),
		Full:           capacity.IsFull(event.Spots, count),
	}, nil
}

// ListAttendees retrieves the event's registrations, earliest first
func (s *rsvpServiceImpl) ListAttendees(ctx context.Context, eventID int64, page, size int) (*dto.AttendeeListResponse, error) {
	s.logger.Debug().
		Int64("eventID", eventID).
		Int("page", page).
		Msg("Listing event attendees")

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)

	registrations, err := s.registrationRepo.ListByEventID(ctx, eventID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing attendees: %w", err)
	}

	total, err := s.registrationRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error counting attendees: %w", err)
	}

	attendees := make([]dto.RegistrationResponse, 0, len(registrations))
	for _, reg := range registrations {
		attendees = append(attendees, toRegistrationResponse(reg))
	}

	return &dto.AttendeeListResponse{
		EventID:        eventID,
		Attendees:      attendees,
		PaginationInfo: helpers.NewPaginationInfo(int64(total), page, limit),
	}, nil
}

// buildDetails picks the form variant matching the event's category
func buildDetails(category models.EventCategory, req *dto.RegisterForEventRequest) models.RegistrationDetails {
	switch category {
	case models.CategoryHackathon:
		return models.RegistrationDetails{
			Hackathon: &models.HackathonDetails{
				TeamName:    req.TeamName,
				ProjectIdea: req.ProjectIdea,
			},
		}
	case models.CategoryWorkshop:
		return models.RegistrationDetails{
			Workshop: &models.WorkshopDetails{
				ExperienceLevel: req.ExperienceLevel,
			},
		}
	case models.CategoryFieldTrip:
		return models.RegistrationDetails{
			FieldTrip: &models.FieldTripDetails{
				EmergencyContact: req.EmergencyContact,
				EmergencyPhone:   req.EmergencyPhone,
				Dietary:          req.Dietary,
			},
		}
	}
	return models.RegistrationDetails{}
}

func toRegistrationResponse(reg *models.Registration) dto.RegistrationResponse {
	var details interface{}
	switch {
	case reg.Details.Hackathon != nil:
		details = reg.Details.Hackathon
	case reg.Details.Workshop != nil:
		details = reg.Details.Workshop
	case reg.Details.FieldTrip != nil:
		details = reg.Details.FieldTrip
	}

	return dto.RegistrationResponse{
		ID:          reg.ID,
		EventID:     reg.EventID,
		UserID:      reg.UserID,
		Category:    reg.Category,
		Name:        reg.Name,
		Email:       reg.Email,
		Phone:       reg.Phone,
		Major:       reg.Major,
		StudentYear: reg.StudentYear,
		Details:     details,
		CreatedAt:   reg.CreatedAt,
	}
}

func registerFailureStatus(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrEventFull):
		return "full"
	case errors.Is(err, apperrors.ErrEventStarted):
		return "started"
	case errors.Is(err, apperrors.ErrEventNotFound):
		return "not_found"
	default:
		return "error"
	}
}
