package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/app/repositories"
	"github.com/emrekaya/clubsphere/internal/pkg/apperrors"
	"github.com/emrekaya/clubsphere/internal/pkg/capacity"
	"github.com/emrekaya/clubsphere/internal/pkg/helpers"
)

// EventService defines the interface for event operations
type EventService interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest, creatorID int64) (*dto.EventResponse, error)
	GetEventByID(ctx context.Context, id int64, viewerID int64) (*dto.EventResponse, error)
	GetAllEvents(ctx context.Context, filter *dto.EventFilterRequest, viewerID int64) (*dto.EventListResponse, error)
	UpdateEvent(ctx context.Context, id int64, req *dto.UpdateEventRequest, actorID int64, actorRole models.RoleType) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, id int64, actorID int64, actorRole models.RoleType) error
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo           *repositories.EventRepository
	registrationRepo    *repositories.RegistrationRepository
	memberRepo          *repositories.MemberRepository
	notificationService NotificationService
	logger              zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo *repositories.EventRepository,
	registrationRepo *repositories.RegistrationRepository,
	memberRepo *repositories.MemberRepository,
	notificationService NotificationService,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo:           eventRepo,
		registrationRepo:    registrationRepo,
		memberRepo:          memberRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// CreateEvent creates a new event and fans out notifications to members in
// the background. Notification failures are logged but never fail creation.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, req *dto.CreateEventRequest, creatorID int64) (*dto.EventResponse, error) {
	s.logger.Debug().
		Int64("creatorID", creatorID).
		Msg("Creating event")

	date, ok := helpers.NormalizeDate(req.Date)
	if !ok {
		return nil, apperrors.NewBadRequestError("Event date is missing or not a recognized format")
	}

	if !req.Category.Valid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Unknown event category: %s", req.Category))
	}

	title := req.Title
	if title == "" {
		title = models.DefaultEventTitle
	}

	event := &models.Event{
		Title:        title,
		Date:         date,
		TimeLabel:    req.TimeLabel,
		Location:     req.Location,
		Category:     req.Category,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Spots:        req.Spots,
		Organizer:    toOrganizerModel(req.Organizer),
		Agenda:       toAgendaModels(req.Agenda),
		Requirements: req.Requirements,
		CreatedBy:    creatorID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create event")
		return nil, err
	}

	creator, err := s.memberRepo.GetByID(ctx, creatorID)
	if err != nil {
		s.logger.Error().Err(err).Int64("creatorID", creatorID).Msg("Failed to load creator for fan-out")
	} else {
		// Fan-out is best-effort and detached from the request lifetime
		go func(event *models.Event, creator *models.Member) {
			fanOutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.notificationService.FanOutEventCreated(fanOutCtx, event, creator); err != nil {
				s.logger.Error().Err(err).Int64("eventID", event.ID).Msg("Event notification fan-out failed")
			}
		}(event, creator)
	}

	return s.toEventResponse(event, false), nil
}

// GetEventByID retrieves a single event. viewerID marks the Registered flag;
// pass 0 for anonymous access.
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id int64, viewerID int64) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	registered := false
	if viewerID > 0 {
		registered, err = s.registrationRepo.IsRegistered(ctx, id, viewerID)
		if err != nil {
			return nil, err
		}
	}

	return s.toEventResponse(event, registered), nil
}

// GetAllEvents retrieves events matching the filter with pagination
func (s *eventServiceImpl) GetAllEvents(ctx context.Context, filter *dto.EventFilterRequest, viewerID int64) (*dto.EventListResponse, error) {
	s.logger.Debug().
		Interface("filter", filter).
		Msg("Getting all events")

	repoFilter := repositories.EventFilter{
		Category: filter.Category,
		Search:   filter.Search,
	}
	if filter.From != nil {
		if from, ok := helpers.NormalizeDate(*filter.From); ok {
			repoFilter.From = &from
		}
	}
	if filter.To != nil {
		if to, ok := helpers.NormalizeDate(*filter.To); ok {
			repoFilter.To = &to
		}
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	events, err := s.eventRepo.List(ctx, repoFilter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	total, err := s.eventRepo.CountFiltered(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("error counting events: %w", err)
	}

	registeredSet := make(map[int64]bool)
	if viewerID > 0 {
		ids, err := s.registrationRepo.ListEventIDsByUserID(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			registeredSet[id] = true
		}
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, *s.toEventResponse(event, registeredSet[event.ID]))
	}

	return &dto.EventListResponse{
		Events:         responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, limit),
	}, nil
}

// UpdateEvent applies a partial update. Only the creator or an admin may update.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, id int64, req *dto.UpdateEventRequest, actorID int64, actorRole models.RoleType) (*dto.EventResponse, error) {
	s.logger.Debug().
		Int64("eventID", id).
		Int64("actorID", actorID).
		Msg("Updating event")

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actorRole != models.RoleAdmin && event.CreatedBy != actorID {
		return nil, apperrors.NewForbiddenError("Only the event creator or an admin can update this event")
	}

	if req.Title != nil {
		event.Title = *req.Title
		if event.Title == "" {
			event.Title = models.DefaultEventTitle
		}
	}
	if req.Date != nil {
		date, ok := helpers.NormalizeDate(req.Date)
		if !ok {
			return nil, apperrors.NewBadRequestError("Event date is not a recognized format")
		}
		event.Date = date
	}
	if req.TimeLabel != nil {
		event.TimeLabel = *req.TimeLabel
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("Unknown event category: %s", *req.Category))
		}
		event.Category = *req.Category
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}
	if req.Spots != nil {
		if *req.Spots < 0 {
			return nil, apperrors.NewBadRequestError("Spots cannot be negative")
		}
		event.Spots = *req.Spots
	}
	if req.Organizer != nil {
		event.Organizer = toOrganizerModel(req.Organizer)
	}
	if req.Agenda != nil {
		event.Agenda = toAgendaModels(req.Agenda)
	}
	if req.Requirements != nil {
		event.Requirements = req.Requirements
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	registered, err := s.registrationRepo.IsRegistered(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	return s.toEventResponse(event, registered), nil
}

// DeleteEvent removes an event. Only the creator or an admin may delete.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, id int64, actorID int64, actorRole models.RoleType) error {
	s.logger.Debug().
		Int64("eventID", id).
		Int64("actorID", actorID).
		Msg("Deleting event")

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actorRole != models.RoleAdmin && event.CreatedBy != actorID {
		return apperrors.NewForbiddenError("Only the event creator or an admin can delete this event")
	}

	return s.eventRepo.Delete(ctx, id)
}

func (s *eventServiceImpl) toEventResponse(event *models.Event, registered bool) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:             event.ID,
		Title:          event.Title,
		Date:           event.Date,
		Day:            helpers.UTCDayString(event.Date),
		TimeLabel:      event.TimeLabel,
		Location:       event.Location,
		Category:       event.Category,
		Description:    event.Description,
		ImageURL:       event.ImageURL,
		Spots:          event.Spots,
		SpotsRemaining: capacity.SpotsRemaining(event.Spots, event.AttendeeCount),
		FillPercent:    capacity.FillPercent(event.Spots, event.AttendeeCount),
		Full:           capacity.IsFull(event.Spots, event.AttendeeCount),
		Requirements:   event.Requirements,
		AttendeeCount:  event.AttendeeCount,
		Registered:     registered,
		CreatedBy:      event.CreatedBy,
		CreatedAt:      event.CreatedAt,
		UpdatedAt:      event.UpdatedAt,
	}

	if event.Organizer != (models.Organizer{}) {
		resp.Organizer = &dto.OrganizerResponse{
			Name:   event.Organizer.Name,
			Role:   event.Organizer.Role,
			Avatar: event.Organizer.Avatar,
		}
	}

	for _, item := range event.Agenda {
		resp.Agenda = append(resp.Agenda, dto.AgendaItemResponse{
			Time:     item.Time,
			Title:    item.Title,
			Duration: item.Duration,
		})
	}

	for _, p := range event.AttendeePreview {
		resp.AttendeePreview = append(resp.AttendeePreview, dto.AttendeePreviewResponse{
			UserID:    p.UserID,
			Name:      p.Name,
			Major:     p.Major,
			AvatarURL: p.AvatarURL,
		})
	}

	return resp
}

func toOrganizerModel(req *dto.OrganizerRequest) models.Organizer {
	if req == nil {
		return models.Organizer{}
	}
	return models.Organizer{
		Name:   req.Name,
		Role:   req.Role,
		Avatar: req.Avatar,
	}
}

func toAgendaModels(items []dto.AgendaItemRequest) []models.AgendaItem {
	if items == nil {
		return nil
	}
	agenda := make([]models.AgendaItem, 0, len(items))
	for _, item := range items {
		agenda = append(agenda, models.AgendaItem{
			Time:     item.Time,
			Title:    item.Title,
			Duration: item.Duration,
		})
	}
	return agenda
}
