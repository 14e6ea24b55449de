package repository

import (
	"context"

	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/entity"
)

type RoleRepository interface {
	FindAll(ctx context.Context) ([]*entity.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindAll(ctx context.Context) ([]*entity.Role, error) {
	var roles []*entity.Role
	if err := r.db.WithContext(ctx).Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}

	return roles, nil
}
