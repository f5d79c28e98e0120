package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/app/repositories"
	"github.com/emrekaya/clubsphere/internal/pkg/apperrors"
)

// fakeRegistrationStore mimics the transactional register/cancel semantics of
// the real repository: row locking, capacity checks and idempotent conflicts.
type fakeRegistrationStore struct {
	events      map[int64]*models.Event
	registered  map[int64]map[int64]*models.Registration
	now         time.Time
	nextID      int64
	registerErr error
}

func newFakeRegistrationStore(now time.Time, events ...*models.Event) *fakeRegistrationStore {
	s := &fakeRegistrationStore{
		events:     make(map[int64]*models.Event),
		registered: make(map[int64]map[int64]*models.Registration),
		now:        now,
	}
	for _, e := range events {
		s.events[e.ID] = e
		s.registered[e.ID] = make(map[int64]*models.Registration)
	}
	return s
}

func (s *fakeRegistrationStore) outcome(changed bool, event *models.Event) repositories.RegisterOutcome {
	count := len(s.registered[event.ID])
	remaining := 0
	if event.Spots > 0 && event.Spots > count {
		remaining = event.Spots - count
	}
	return repositories.RegisterOutcome{
		Changed:        changed,
		AttendeeCount:  count,
		SpotsRemaining: remaining,
	}
}

func (s *fakeRegistrationStore) Register(ctx context.Context, reg *models.Registration) (repositories.RegisterOutcome, error) {
	if s.registerErr != nil {
		return repositories.RegisterOutcome{}, s.registerErr
	}

	event, ok := s.events[reg.EventID]
	if !ok {
		return repositories.RegisterOutcome{}, apperrors.ErrEventNotFound
	}
	if !event.Date.After(s.now) {
		return repositories.RegisterOutcome{}, apperrors.ErrEventStarted
	}
	if _, dup := s.registered[event.ID][reg.UserID]; dup {
		return s.outcome(false, event), nil
	}
	if event.Spots > 0 && len(s.registered[event.ID]) >= event.Spots {
		return repositories.RegisterOutcome{}, apperrors.ErrEventFull
	}

	s.nextID++
	reg.ID = s.nextID
	reg.Category = event.Category
	reg.CreatedAt = s.now
	s.registered[event.ID][reg.UserID] = reg
	return s.outcome(true, event), nil
}

func (s *fakeRegistrationStore) Cancel(ctx context.Context, eventID, userID int64) (repositories.RegisterOutcome, error) {
	event, ok := s.events[eventID]
	if !ok {
		return repositories.RegisterOutcome{}, apperrors.ErrEventNotFound
	}
	if _, exists := s.registered[eventID][userID]; !exists {
		return s.outcome(false, event), nil
	}
	delete(s.registered[eventID], userID)
	return s.outcome(true, event), nil
}

func (s *fakeRegistrationStore) IsRegistered(ctx context.Context, eventID, userID int64) (bool, error) {
	_, ok := s.registered[eventID][userID]
	return ok, nil
}

func (s *fakeRegistrationStore) CountByEventID(ctx context.Context, eventID int64) (int, error) {
	return len(s.registered[eventID]), nil
}

func (s *fakeRegistrationStore) ListByEventID(ctx context.Context, eventID int64, offset uint64, limit int) ([]*models.Registration, error) {
	regs := make([]*models.Registration, 0, len(s.registered[eventID]))
	for _, reg := range s.registered[eventID] {
		regs = append(regs, reg)
	}
	return regs, nil
}

// fakeEventGetter serves events from the same map as the store
type fakeEventGetter struct {
	events map[int64]*models.Event
}

func (g *fakeEventGetter) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event, ok := g.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

// broadcastRecord captures attendee count broadcasts
type broadcastRecord struct {
	eventID        int64
	attendeeCount  int
	spotsRemaining int
}

type fakeBroadcaster struct {
	calls []broadcastRecord
}

func (b *fakeBroadcaster) BroadcastAttendeeCount(eventID int64, attendeeCount, spotsRemaining int) {
	b.calls = append(b.calls, broadcastRecord{eventID, attendeeCount, spotsRemaining})
}

func setupRSVPService(events ...*models.Event) (RSVPService, *fakeRegistrationStore, *fakeBroadcaster) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeRegistrationStore(now, events...)
	broadcaster := &fakeBroadcaster{}
	service := NewRSVPService(store, &fakeEventGetter{events: store.events}, broadcaster, zerolog.Nop())
	return service, store, broadcaster
}

func upcomingEvent(id int64, category models.EventCategory, spots int) *models.Event {
	return &models.Event{
		ID:       id,
		Title:    "Test Event",
		Date:     time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC),
		Category: category,
		Spots:    spots,
	}
}

func genericForm() *dto.RegisterForEventRequest {
	return &dto.RegisterForEventRequest{
		Name:  "Jane Doe",
		Email: "jane@clubsphere.app",
	}
}

func TestRSVPRegister_Success(t *testing.T) {
	service, _, broadcaster := setupRSVPService(upcomingEvent(1, models.CategoryGeneric, 10))

	resp, err := service.Register(context.Background(), 1, 42, genericForm())
	require.NoError(t, err)

	assert.True(t, resp.Registered)
	assert.False(t, resp.AlreadyApplied)
	assert.NotZero(t, resp.RegistrationID)
	assert.Equal(t, 1, resp.AttendeeCount)
	assert.Equal(t, 9, resp.SpotsRemaining)

	require.Len(t, broadcaster.calls, 1)
	assert.Equal(t, broadcastRecord{eventID: 1, attendeeCount: 1, spotsRemaining: 9}, broadcaster.calls[0])
}

func TestRSVPRegister_DuplicateIsBenign(t *testing.T) {
	service, _, broadcaster := setupRSVPService(upcomingEvent(1, models.CategoryGeneric, 10))

	_, err := service.Register(context.Background(), 1, 42, genericForm())
	require.NoError(t, err)

	resp, err := service.Register(context.Background(), 1, 42, genericForm())
	require.NoError(t, err)

	assert.True(t, resp.Registered)
	assert.True(t, resp.AlreadyApplied)
	assert.Equal(t, 1, resp.AttendeeCount)

	// No broadcast for the no-op
	assert.Len(t, broadcaster.calls, 1)
}

func TestRSVPRegister_EventFull(t *testing.T) {
	service, _, _ := setupRSVPService(upcomingEvent(1, models.CategoryGeneric, 1))

	_, err := service.Register(context.Background(), 1, 42, genericForm())
	require.NoError(t, err)

	_, err = service.Register(context.Background(), 1, 43, genericForm())
	assert.ErrorIs(t, err, apperrors.ErrEventFull)
}

func TestRSVPRegister_EventStarted(t *testing.T) {
	started := upcomingEvent(1, models.CategoryGeneric, 10)
	started.Date = time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC)
	service, _, _ := setupRSVPService(started)

	_, err := service.Register(context.Background(), 1, 42, genericForm())
	assert.ErrorIs(t, err, apperrors.ErrEventStarted)
}

func TestRSVPRegister_EventNotFound(t *testing.T) {
	service, _, _ := setupRSVPService()

	_, err := service.Register(context.Background(), 99, 42, genericForm())
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestRSVPRegister_InvalidVariantForm(t *testing.T) {
	service, store, _ := setupRSVPService(upcomingEvent(1, models.CategoryHackathon, 10))

	// Hackathon registration without a team name
	_, err := service.Register(context.Background(), 1, 42, genericForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Nothing was written
	count, _ := store.CountByEventID(context.Background(), 1)
	assert.Equal(t, 0, count)
}

func TestRSVPRegister_HackathonDetailsCaptured(t *testing.T) {
	service, store, _ := setupRSVPService(upcomingEvent(1, models.CategoryHackathon, 10))

	form := genericForm()
	form.TeamName = "Gophers"
	form.ProjectIdea = "Club event radar"

	_, err := service.Register(context.Background(), 1, 42, form)
	require.NoError(t, err)

	reg := store.registered[1][42]
	require.NotNil(t, reg)
	assert.Equal(t, models.CategoryHackathon, reg.Category)
	require.NotNil(t, reg.Details.Hackathon)
	assert.Equal(t, "Gophers", reg.Details.Hackathon.TeamName)
	assert.Nil(t, reg.Details.Workshop)
}

func TestRSVPCancel_RoundTrip(t *testing.T) {
	service, _, broadcaster := setupRSVPService(upcomingEvent(1, models.CategoryGeneric, 10))

	_, err := service.Register(context.Background(), 1, 42, genericForm())
	require.NoError(t, err)

	resp, err := service.Cancel(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.False(t, resp.Registered)
	assert.Equal(t, 0, resp.AttendeeCount)
	assert.Equal(t, 10, resp.SpotsRemaining)

	// Register then cancel both broadcast the new count
	require.Len(t, broadcaster.calls, 2)
	assert.Equal(t, 0, broadcaster.calls[1].attendeeCount)
}

func TestRSVPCancel_NotRegisteredIsBenign(t *testing.T) {
	service, _, broadcaster := setupRSVPService(upcomingEvent(1, models.CategoryGeneric, 10))

	resp, err := service.Cancel(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.False(t, resp.Registered)
	assert.Equal(t, 0, resp.AttendeeCount)
	assert.Empty(t, broadcaster.calls)
}

func TestRSVPCancel_FreesSpot(t *testing.T) {
	service, _, _ := setupRSVPService(upcomingEvent(1, models.CategoryGeneric, 1))

	_, err := service.Register(context.Background(), 1, 42, genericForm())
	require.NoError(t, err)

	_, err = service.Register(context.Background(), 1, 43, genericForm())
	require.ErrorIs(t, err, apperrors.ErrEventFull)

	_, err = service.Cancel(context.Background(), 1, 42)
	require.NoError(t, err)

	resp, err := service.Register(context.Background(), 1, 43, genericForm())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AttendeeCount)
}

func TestRSVPIsRegistered(t *testing.T) {
	service, _, _ := setupRSVPService(upcomingEvent(1, models.CategoryGeneric, 10))

	status, err := service.IsRegistered(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.False(t, status.Registered)

	_, err = service.Register(context.Background(), 1, 42, genericForm())
	require.NoError(t, err)

	status, err = service.IsRegistered(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.True(t, status.Registered)
}

func TestRSVPGetAttendeeCount(t *testing.T) {
	service, _, _ := setupRSVPService(upcomingEvent(1, models.CategoryGeneric, 2))

	_, err := service.Register(context.Background(), 1, 42, genericForm())
	require.NoError(t, err)

	resp, err := service.GetAttendeeCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.AttendeeCount)
	assert.Equal(t, 2, resp.Spots)
	assert.Equal(t, 1, resp.SpotsRemaining)
	assert.False(t, resp.Full)

	_, err = service.Register(context.Background(), 1, 43, genericForm())
	require.NoError(t, err)

	resp, err = service.GetAttendeeCount(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.Full)
	assert.Equal(t, 0, resp.SpotsRemaining)
}

func TestRSVPListAttendees(t *testing.T) {
	service, _, _ := setupRSVPService(upcomingEvent(1, models.CategoryGeneric, 10))

	_, err := service.Register(context.Background(), 1, 42, genericForm())
	require.NoError(t, err)
	_, err = service.Register(context.Background(), 1, 43, genericForm())
	require.NoError(t, err)

	resp, err := service.ListAttendees(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.EventID)
	assert.Len(t, resp.Attendees, 2)
	assert.Equal(t, int64(2), resp.PaginationInfo.TotalItems)
}

func TestRSVPListAttendees_EventNotFound(t *testing.T) {
	service, _, _ := setupRSVPService()

	_, err := service.ListAttendees(context.Background(), 99, 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}
