package repository

import (
	"Neuron/internal/model"
	"context"

	"gorm.io/gorm"
)

type ThemeRepo interface {
	GetActiveThemes(ctx context.Context) ([]*model.Theme, error)
}

type themeRepoImpl struct {
	db *gorm.DB
}

func NewThemeRepository(db *gorm.DB) ThemeRepo {
	return &themeRepoImpl{db: db}
}

func (r *themeRepoImpl) GetActiveThemes(ctx context.Context) ([]*model.Theme, error) {
	themes := make([]*model.Theme, 0)
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&themes)
	if result.Error != nil {
		return nil, result.Error
	}
	return themes, nil
}
