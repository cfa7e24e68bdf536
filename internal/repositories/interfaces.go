package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrVersionConflict is returned when a gradebook was saved by someone else
// since it was read.
var ErrVersionConflict = errors.New("gradebook version conflict")

// ===== SHARED FILTER STRUCTS =====

type GradebookFilters struct {
	Search    string `json:"search"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "updated_at", "name"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

// IsNotFoundError reports whether err means the requested row does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsVersionConflict reports whether err is an optimistic locking failure.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}
