package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GradebookRecord persists a whole Gradebook snapshot as an opaque JSON
// document. Version is bumped on every save and keys the report cache.
type GradebookRecord struct {
	ID      uint           `json:"id" gorm:"primaryKey"`
	OwnerID string         `json:"owner_id" gorm:"not null;index;size:100"`
	Name    string         `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Version int            `json:"version" gorm:"default:1"`
	State   datatypes.JSON `json:"state" gorm:"type:jsonb"` // Gradebook

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (GradebookRecord) TableName() string {
	return "gradebooks"
}

func (r *GradebookRecord) Gradebook() (*Gradebook, error) {
	var book Gradebook
	if len(r.State) == 0 {
		return &book, nil
	}
	if err := json.Unmarshal(r.State, &book); err != nil {
		return nil, fmt.Errorf("failed to decode gradebook %d: %w", r.ID, err)
	}
	return &book, nil
}

func (r *GradebookRecord) SetGradebook(book *Gradebook) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("failed to encode gradebook: %w", err)
	}
	r.State = datatypes.JSON(data)
	return nil
}
