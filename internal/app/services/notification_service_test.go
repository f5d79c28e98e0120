package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekaya/clubsphere/internal/app/models"
)

// fakeNotificationStore keeps notifications in memory with the same
// per-recipient dedupe the real repository implements.
type fakeNotificationStore struct {
	notifications []*models.Notification
	nextID        int64
	createErr     error
}

func (s *fakeNotificationStore) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	if s.createErr != nil {
		return s.createErr
	}
	for _, n := range notifications {
		s.nextID++
		n.ID = s.nextID
		n.CreatedAt = time.Now()
		s.notifications = append(s.notifications, n)
	}
	return nil
}

func (s *fakeNotificationStore) RecipientsWithoutEventNotification(ctx context.Context, candidateIDs []int64, eventID int64, nType models.NotificationType) ([]int64, error) {
	seen := make(map[int64]bool)
	for _, n := range s.notifications {
		if n.Type == nType && n.EventID != nil && *n.EventID == eventID {
			seen[n.RecipientID] = true
		}
	}

	remaining := make([]int64, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if !seen[id] {
			remaining = append(remaining, id)
		}
	}
	return remaining, nil
}

func (s *fakeNotificationStore) ListByRecipient(ctx context.Context, recipientID int64, offset uint64, limit int) ([]*models.Notification, error) {
	result := make([]*models.Notification, 0)
	for _, n := range s.notifications {
		if n.RecipientID == recipientID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (s *fakeNotificationStore) CountByRecipient(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationStore) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotificationStore) MarkRead(ctx context.Context, notificationID, recipientID int64) error {
	for _, n := range s.notifications {
		if n.ID == notificationID && n.RecipientID == recipientID {
			n.Read = true
			return nil
		}
	}
	return errors.New("notification not found")
}

func (s *fakeNotificationStore) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	var updated int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

type fakeMemberLister struct {
	memberIDs []int64
	err       error
}

func (l *fakeMemberLister) ListMemberIDs(ctx context.Context, excludeMemberID int64) ([]int64, error) {
	if l.err != nil {
		return nil, l.err
	}
	ids := make([]int64, 0, len(l.memberIDs))
	for _, id := range l.memberIDs {
		if id != excludeMemberID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func fanOutFixture() (*models.Event, *models.Member) {
	event := &models.Event{
		ID:    7,
		Title: "Campus Hack Night",
	}
	actor := &models.Member{
		ID:        1,
		FirstName: "Jane",
		LastName:  "Doe",
	}
	return event, actor
}

func TestFanOutEventCreated(t *testing.T) {
	store := &fakeNotificationStore{}
	lister := &fakeMemberLister{memberIDs: []int64{1, 2, 3}}
	service := NewNotificationService(store, lister, zerolog.Nop())

	event, actor := fanOutFixture()
	err := service.FanOutEventCreated(context.Background(), event, actor)
	require.NoError(t, err)

	// Everyone except the actor got a notification
	require.Len(t, store.notifications, 2)
	for _, n := range store.notifications {
		assert.NotEqual(t, actor.ID, n.RecipientID)
		assert.Equal(t, models.NotificationEvent, n.Type)
		assert.Equal(t, "Jane Doe", n.ActorName)
		require.NotNil(t, n.EventID)
		assert.Equal(t, event.ID, *n.EventID)
		assert.Equal(t, "Campus Hack Night", n.ContentPreview)
	}
}

func TestFanOutEventCreated_RetryIsIdempotent(t *testing.T) {
	store := &fakeNotificationStore{}
	lister := &fakeMemberLister{memberIDs: []int64{1, 2, 3}}
	service := NewNotificationService(store, lister, zerolog.Nop())

	event, actor := fanOutFixture()
	require.NoError(t, service.FanOutEventCreated(context.Background(), event, actor))
	require.NoError(t, service.FanOutEventCreated(context.Background(), event, actor))

	assert.Len(t, store.notifications, 2)
}

func TestFanOutEventCreated_NoRecipients(t *testing.T) {
	store := &fakeNotificationStore{}
	lister := &fakeMemberLister{memberIDs: []int64{1}}
	service := NewNotificationService(store, lister, zerolog.Nop())

	event, actor := fanOutFixture()
	require.NoError(t, service.FanOutEventCreated(context.Background(), event, actor))
	assert.Empty(t, store.notifications)
}

func TestFanOutEventCreated_ListerError(t *testing.T) {
	store := &fakeNotificationStore{}
	lister := &fakeMemberLister{err: errors.New("db down")}
	service := NewNotificationService(store, lister, zerolog.Nop())

	event, actor := fanOutFixture()
	err := service.FanOutEventCreated(context.Background(), event, actor)
	assert.Error(t, err)
}

func TestFanOutEventCreated_CreateError(t *testing.T) {
	store := &fakeNotificationStore{createErr: errors.New("insert failed")}
	lister := &fakeMemberLister{memberIDs: []int64{1, 2}}
	service := NewNotificationService(store, lister, zerolog.Nop())

	event, actor := fanOutFixture()
	err := service.FanOutEventCreated(context.Background(), event, actor)
	assert.Error(t, err)
}

func TestFanOutEventCreated_LongTitleTruncated(t *testing.T) {
	store := &fakeNotificationStore{}
	lister := &fakeMemberLister{memberIDs: []int64{1, 2}}
	service := NewNotificationService(store, lister, zerolog.Nop())

	event, actor := fanOutFixture()
	long := make([]rune, models.PreviewLimit+20)
	for i := range long {
		long[i] = 'x'
	}
	event.Title = string(long)

	require.NoError(t, service.FanOutEventCreated(context.Background(), event, actor))
	require.NotEmpty(t, store.notifications)
	assert.Len(t, []rune(store.notifications[0].ContentPreview), models.PreviewLimit)
}

func TestNotifyMessage(t *testing.T) {
	store := &fakeNotificationStore{}
	service := NewNotificationService(store, &fakeMemberLister{}, zerolog.Nop())

	_, actor := fanOutFixture()
	err := service.NotifyMessage(context.Background(), 7, actor, []int64{1, 2, 3}, "see you at the venue")
	require.NoError(t, err)

	// The sender never notifies themselves
	require.Len(t, store.notifications, 2)
	for _, n := range store.notifications {
		assert.NotEqual(t, actor.ID, n.RecipientID)
		assert.Equal(t, models.NotificationMessage, n.Type)
		require.NotNil(t, n.EventID)
		assert.Equal(t, int64(7), *n.EventID)
		assert.Equal(t, "see you at the venue", n.ContentPreview)
	}
}

func TestNotifyMessage_OnlySenderRegistered(t *testing.T) {
	store := &fakeNotificationStore{}
	service := NewNotificationService(store, &fakeMemberLister{}, zerolog.Nop())

	_, actor := fanOutFixture()
	err := service.NotifyMessage(context.Background(), 7, actor, []int64{actor.ID}, "hello")
	require.NoError(t, err)
	assert.Empty(t, store.notifications)
}

func TestNotificationList(t *testing.T) {
	store := &fakeNotificationStore{}
	lister := &fakeMemberLister{memberIDs: []int64{1, 2}}
	service := NewNotificationService(store, lister, zerolog.Nop())

	event, actor := fanOutFixture()
	require.NoError(t, service.FanOutEventCreated(context.Background(), event, actor))

	resp, err := service.List(context.Background(), 2, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, int64(1), resp.UnreadCount)
	assert.Equal(t, int64(1), resp.PaginationInfo.TotalItems)
}

func TestNotificationMarkReadFlow(t *testing.T) {
	store := &fakeNotificationStore{}
	lister := &fakeMemberLister{memberIDs: []int64{1, 2}}
	service := NewNotificationService(store, lister, zerolog.Nop())

	event, actor := fanOutFixture()
	require.NoError(t, service.FanOutEventCreated(context.Background(), event, actor))

	unread, err := service.UnreadCount(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread.UnreadCount)

	require.NoError(t, service.MarkRead(context.Background(), store.notifications[0].ID, 2))

	unread, err = service.UnreadCount(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread.UnreadCount)
}

func TestNotificationMarkAllRead(t *testing.T) {
	store := &fakeNotificationStore{}
	lister := &fakeMemberLister{memberIDs: []int64{1, 2, 3, 4}}
	service := NewNotificationService(store, lister, zerolog.Nop())

	event, actor := fanOutFixture()
	require.NoError(t, service.FanOutEventCreated(context.Background(), event, actor))

	// Each of the three recipients has exactly one unread notification
	updated, err := service.MarkAllRead(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	updated, err = service.MarkAllRead(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}
