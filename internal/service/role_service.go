package service

import (
	"context"

	"haramaya.com/pharmatrack/internal/entity"
	"haramaya.com/pharmatrack/internal/repository"
)

// RoleService is a lookup list for the role-assignment UI.
type RoleService interface {
	GetAllRoles(ctx context.Context) ([]*entity.Role, error)
}

type roleService struct {
	repo repository.RoleRepository
}

func NewRoleService(repo repository.RoleRepository) RoleService {
	return &roleService{repo: repo}
}

func (s *roleService) GetAllRoles(ctx context.Context) ([]*entity.Role, error) {
	return s.repo.FindAll(ctx)
}
