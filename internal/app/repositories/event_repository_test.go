package repositories

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekaya/clubsphere/internal/app/models"
)

func TestMarshalEventJSON_AbsentValuesEncodeAsEmptyDocuments(t *testing.T) {
	event := &models.Event{Title: "Bare Event"}

	organizer, agenda, requirements, err := marshalEventJSON(event)
	require.NoError(t, err)

	// NOT NULL jsonb columns must always receive a value
	assert.Equal(t, []byte("{}"), organizer)
	assert.Equal(t, []byte("[]"), agenda)
	assert.Equal(t, []byte("[]"), requirements)
}

func TestMarshalEventJSON_PopulatedValuesRoundTrip(t *testing.T) {
	event := &models.Event{
		Organizer: models.Organizer{Name: "Jane Doe", Role: "Club President"},
		Agenda: []models.AgendaItem{
			{Time: "18:00", Title: "Kickoff", Duration: "30m"},
		},
		Requirements: []string{"Laptop"},
	}

	organizer, agenda, requirements, err := marshalEventJSON(event)
	require.NoError(t, err)

	var gotOrganizer models.Organizer
	require.NoError(t, json.Unmarshal(organizer, &gotOrganizer))
	assert.Equal(t, event.Organizer, gotOrganizer)

	var gotAgenda []models.AgendaItem
	require.NoError(t, json.Unmarshal(agenda, &gotAgenda))
	assert.Equal(t, event.Agenda, gotAgenda)

	var gotRequirements []string
	require.NoError(t, json.Unmarshal(requirements, &gotRequirements))
	assert.Equal(t, event.Requirements, gotRequirements)
}
