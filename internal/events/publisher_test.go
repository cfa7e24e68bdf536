package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGradebookSavedEvent(t *testing.T) {
	event := NewGradebookSavedEvent(7, "teacher-1", 3, []string{"class-1"})

	_, err := uuid.Parse(event.ID)
	require.NoError(t, err)
	assert.Equal(t, EventGradebookSaved, event.Type)
	assert.Equal(t, "gradebook-service", event.Source)

	payload, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"type":"gradebook.saved"`)
	assert.Contains(t, string(payload), `"class_ids":["class-1"]`)
}

func TestNewGradesRecomputedEvent(t *testing.T) {
	avg := 6.5
	event := NewGradesRecomputedEvent(7, 3, "class-1", "p1", 25, &avg)

	data, ok := event.Data.(GradesRecomputedEvent)
	require.True(t, ok)
	assert.Equal(t, "class-1", data.ClassID)
	assert.Equal(t, 25, data.StudentCount)
	assert.InDelta(t, 6.5, *data.FinalAverage, 1e-9)
	assert.NotEqual(t, event.ID, NewGradesRecomputedEvent(7, 3, "class-1", "p1", 25, nil).ID)
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(slog.Default())

	require.NoError(t, publisher.Publish(context.Background(), NewGradebookSavedEvent(1, "t", 1, nil)))
	require.NoError(t, publisher.Publish(context.Background(), NewGradesRecomputedEvent(1, 1, "c", "", 0, nil)))

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, EventGradesRecomputed, published[1].Type)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
	assert.NoError(t, publisher.Close())
}

func TestNewMessage(t *testing.T) {
	event := NewGradebookSavedEvent(42, "teacher-1", 5, []string{"class-1"})

	msg, err := newMessage(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, event.ID, msg.UUID)
	assert.Equal(t, "gradebook.saved", msg.Metadata.Get("event_type"))
	assert.Equal(t, "42", msg.Metadata.Get(gradebookIDMetadata))

	var decoded GradebookEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	assert.Equal(t, uint(42), decoded.GradebookID)
}

func TestPartitionKeyGroupsEventsByGradebook(t *testing.T) {
	saved, err := newMessage(context.Background(), NewGradebookSavedEvent(42, "teacher-1", 5, nil))
	require.NoError(t, err)
	recomputed, err := newMessage(context.Background(), NewGradesRecomputedEvent(42, 5, "class-1", "", 3, nil))
	require.NoError(t, err)
	other, err := newMessage(context.Background(), NewGradebookSavedEvent(43, "teacher-1", 1, nil))
	require.NoError(t, err)

	savedKey, err := partitionKey("gradebooks", saved)
	require.NoError(t, err)
	recomputedKey, err := partitionKey("gradebooks", recomputed)
	require.NoError(t, err)
	otherKey, err := partitionKey("gradebooks", other)
	require.NoError(t, err)

	assert.Equal(t, savedKey, recomputedKey)
	assert.NotEqual(t, savedKey, otherKey)
}
