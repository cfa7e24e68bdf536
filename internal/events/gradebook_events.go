package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of gradebook events
type EventType string

const (
	EventGradebookSaved   EventType = "gradebook.saved"
	EventGradesRecomputed EventType = "grades.recomputed"
)

const (
	eventSource  = "gradebook-service"
	eventVersion = "1.0"
)

// GradebookEvent is the envelope of every event published by the service
type GradebookEvent struct {
	ID          string                 `json:"id"`
	Type        EventType              `json:"type"`
	GradebookID uint                   `json:"gradebook_id"`
	Timestamp   time.Time              `json:"timestamp"`
	Source      string                 `json:"source"`
	Version     string                 `json:"version"`
	Data        interface{}            `json:"data"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type GradebookSavedEvent struct {
	GradebookID uint     `json:"gradebook_id"`
	OwnerID     string   `json:"owner_id"`
	Version     int      `json:"version"`
	ClassIDs    []string `json:"class_ids"`
}

type GradesRecomputedEvent struct {
	GradebookID  uint     `json:"gradebook_id"`
	Version      int      `json:"version"`
	ClassID      string   `json:"class_id"`
	PeriodID     string   `json:"period_id,omitempty"`
	StudentCount int      `json:"student_count"`
	FinalAverage *float64 `json:"final_average"`
}

// Event factory functions

func NewGradebookSavedEvent(gradebookID uint, ownerID string, version int, classIDs []string) *GradebookEvent {
	return newEvent(EventGradebookSaved, gradebookID, GradebookSavedEvent{
		GradebookID: gradebookID,
		OwnerID:     ownerID,
		Version:     version,
		ClassIDs:    classIDs,
	})
}

func NewGradesRecomputedEvent(gradebookID uint, version int, classID, periodID string, studentCount int, finalAverage *float64) *GradebookEvent {
	return newEvent(EventGradesRecomputed, gradebookID, GradesRecomputedEvent{
		GradebookID:  gradebookID,
		Version:      version,
		ClassID:      classID,
		PeriodID:     periodID,
		StudentCount: studentCount,
		FinalAverage: finalAverage,
	})
}

func newEvent(eventType EventType, gradebookID uint, data interface{}) *GradebookEvent {
	return &GradebookEvent{
		ID:          GenerateEventID(),
		Type:        eventType,
		GradebookID: gradebookID,
		Timestamp:   time.Now().UTC(),
		Source:      eventSource,
		Version:     eventVersion,
		Data:        data,
	}
}

// GenerateEventID returns a random event id
func GenerateEventID() string {
	return uuid.NewString()
}
