package repository

import (
	"Neuron/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserProfileRepo interface {
	GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*model.UserProfile, error)
}

type userProfileRepoImpl struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) UserProfileRepo {
	return &userProfileRepoImpl{db: db}
}

// GetByUserIDs 批量取作者档案，整批归一化因子只回库一次
func (r *userProfileRepoImpl) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*model.UserProfile, error) {
	profiles := make([]*model.UserProfile, 0, len(userIDs))
	result := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}

	byID := make(map[string]*model.UserProfile, len(profiles))
	for _, p := range profiles {
		byID[p.UserID] = p
	}
	return byID, nil
}
