package repositories

import (
	"context"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"gorm.io/gorm"
)

// GradebookRepository stores gradebook snapshots. Every method accepts an
// optional transaction; a nil tx runs on the repository's own connection.
type GradebookRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, record *models.GradebookRecord) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.GradebookRecord, error)
	Update(ctx context.Context, tx *gorm.DB, record *models.GradebookRecord) error // Bumps Version, fails with ErrVersionConflict on a stale record
	Delete(ctx context.Context, tx *gorm.DB, id uint) error                        // Soft delete

	// Query operations
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID string, filters GradebookFilters) ([]*models.GradebookRecord, int64, error)
}
