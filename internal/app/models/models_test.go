package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemberFullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", (&Member{FirstName: "Jane", LastName: "Doe"}).FullName())
	assert.Equal(t, "Jane", (&Member{FirstName: "Jane"}).FullName())
	assert.Equal(t, "Doe", (&Member{LastName: "Doe"}).FullName())
	assert.Equal(t, "", (&Member{}).FullName())
}

func TestEventCategoryValid(t *testing.T) {
	for _, c := range []EventCategory{CategoryHackathon, CategoryWorkshop, CategoryFieldTrip, CategoryGeneric} {
		assert.True(t, c.Valid(), "category %q", c)
	}
	assert.False(t, EventCategory("concert").Valid())
	assert.False(t, EventCategory("").Valid())
}

func TestEventHasStarted(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	upcoming := &Event{Date: now.Add(time.Hour)}
	assert.False(t, upcoming.HasStarted(now))

	started := &Event{Date: now.Add(-time.Hour)}
	assert.True(t, started.HasStarted(now))

	// Start time counts as started
	exact := &Event{Date: now}
	assert.True(t, exact.HasStarted(now))

	// Dateless events never start
	assert.False(t, (&Event{}).HasStarted(now))
}

func TestTruncatePreview(t *testing.T) {
	short := "new event posted"
	assert.Equal(t, short, TruncatePreview(short))

	long := strings.Repeat("a", PreviewLimit+50)
	got := TruncatePreview(long)
	assert.Len(t, got, PreviewLimit)

	// Multibyte runes are not split
	unicode := strings.Repeat("ü", PreviewLimit+10)
	got = TruncatePreview(unicode)
	assert.Equal(t, PreviewLimit, len([]rune(got)))
}
