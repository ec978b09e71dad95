package repository

import (
	"Neuron/internal/model"
	"context"

	"gorm.io/gorm"
)

type ProjectRepo interface {
	GetActiveProjects(ctx context.Context) ([]*model.Project, error)
}

type projectRepoImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepo {
	return &projectRepoImpl{db: db}
}

func (r *projectRepoImpl) GetActiveProjects(ctx context.Context) ([]*model.Project, error) {
	projects := make([]*model.Project, 0)
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&projects)
	if result.Error != nil {
		return nil, result.Error
	}
	return projects, nil
}
