package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/entity"
	"haramaya.com/pharmatrack/internal/repository"
	"haramaya.com/pharmatrack/pkg/apperror"
)

type UserService interface {
	GetAllUsers(ctx context.Context, filter dto.UserFilter) ([]dto.UserResponse, dto.PaginationMeta, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, input dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id, callerID uuid.UUID) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetAllUsers(ctx context.Context, filter dto.UserFilter) ([]dto.UserResponse, dto.PaginationMeta, error) {
	filter.Normalize()

	users, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.NewUserResponse(u))
	}

	return responses, dto.NewPaginationMeta(filter.ListQuery, total), nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "User not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	res := dto.NewUserResponse(user)
	return &res, nil
}

func (s *userService) CreateUser(ctx context.Context, input dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := s.ensureUserUnique(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	roles, err := s.resolveRoles(ctx, input.RoleIDs)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user, roles); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	res := dto.NewUserResponse(created)
	return &res, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, input dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "User not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		if _, err := s.repo.FindByUsername(ctx, *input.Username); err == nil {
			return nil, apperror.New(http.StatusConflict, "Username already taken", apperror.ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *input.Username
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, *input.Email); err == nil {
			return nil, apperror.New(http.StatusConflict, "Email already registered", apperror.ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}

	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	// A supplied role set replaces all assignments; an empty set clears them.
	var roles *[]entity.Role
	if input.RoleIDs != nil {
		resolved, err := s.resolveRoles(ctx, *input.RoleIDs)
		if err != nil {
			return nil, err
		}
		roles = &resolved
	}

	if err := s.repo.Update(ctx, user, roles); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := dto.NewUserResponse(updated)
	return &res, nil
}

func (s *userService) DeleteUser(ctx context.Context, id, callerID uuid.UUID) error {
	if id == callerID {
		return apperror.New(http.StatusForbidden, "Cannot delete your own account", apperror.ErrForbidden)
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "User not found", apperror.ErrNotFound)
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *userService) ensureUserUnique(ctx context.Context, username, email string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return apperror.New(http.StatusConflict, "Username already taken", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return apperror.New(http.StatusConflict, "Email already registered", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

// resolveRoles loads the requested roles and rejects when any ID is unknown.
func (s *userService) resolveRoles(ctx context.Context, ids []uint) ([]entity.Role, error) {
	if len(ids) == 0 {
		return []entity.Role{}, nil
	}

	roles, err := s.repo.FindRolesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	if len(roles) != len(ids) {
		return nil, apperror.New(http.StatusUnprocessableEntity,
			"One or more role IDs do not exist", apperror.ErrInvalidReference)
	}

	return roles, nil
}
