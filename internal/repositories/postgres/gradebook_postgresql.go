package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/repositories"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type GradebookPostgreSQL struct {
	db *gorm.DB
}

func NewGradebookPostgreSQL(db *gorm.DB) repositories.GradebookRepository {
	return &GradebookPostgreSQL{db: db}
}

func (g *GradebookPostgreSQL) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return g.db.WithContext(ctx)
}

// Create stores a new gradebook at version 1
func (g *GradebookPostgreSQL) Create(ctx context.Context, tx *gorm.DB, record *models.GradebookRecord) error {
	record.Version = 1
	if err := g.conn(ctx, tx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create gradebook: %w", err)
	}
	return nil
}

// GetByID retrieves a gradebook by ID
func (g *GradebookPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.GradebookRecord, error) {
	var record models.GradebookRecord
	if err := g.conn(ctx, tx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Update writes name and state when the stored version still matches
// record.Version, then advances the version.
func (g *GradebookPostgreSQL) Update(ctx context.Context, tx *gorm.DB, record *models.GradebookRecord) error {
	return g.conn(ctx, tx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.GradebookRecord{}).
			Where("id = ? AND version = ?", record.ID, record.Version).
			Updates(map[string]interface{}{
				"name":    record.Name,
				"state":   record.State,
				"version": gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update gradebook: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			var current models.GradebookRecord
			if err := tx.Select("id", "version").First(&current, record.ID).Error; err != nil {
				return err
			}
			return fmt.Errorf("%w: have %d, stored %d", repositories.ErrVersionConflict, record.Version, current.Version)
		}

		return tx.First(record, record.ID).Error
	})
}

// Delete soft deletes a gradebook
func (g *GradebookPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	result := g.conn(ctx, tx).Delete(&models.GradebookRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete gradebook: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOwner lists the gradebooks of one teacher without their state
func (g *GradebookPostgreSQL) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID string, filters repositories.GradebookFilters) ([]*models.GradebookRecord, int64, error) {
	query := g.conn(ctx, tx).Model(&models.GradebookRecord{}).Where("owner_id = ?", ownerID)
	if filters.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count gradebooks: %w", err)
	}

	var records []*models.GradebookRecord
	err := query.
		Omit("state").
		Order(orderClause(filters)).
		Limit(listLimit(filters.Limit)).
		Offset(max(filters.Offset, 0)).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list gradebooks: %w", err)
	}

	return records, total, nil
}

func orderClause(filters repositories.GradebookFilters) string {
	column := "updated_at"
	switch filters.SortBy {
	case "created_at", "name":
		column = filters.SortBy
	}

	direction := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

func listLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	}
	return limit
}
