package repositories

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(gorm.ErrRecordNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("load gradebook: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFoundError(ErrVersionConflict))
}

func TestIsVersionConflict(t *testing.T) {
	assert.True(t, IsVersionConflict(fmt.Errorf("%w: have 1, stored 2", ErrVersionConflict)))
	assert.False(t, IsVersionConflict(gorm.ErrRecordNotFound))
}
