package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User, roles []entity.Role) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context, filter dto.UserFilter) ([]*entity.User, int64, error)
	Update(ctx context.Context, user *entity.User, roles *[]entity.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindRolesByIDs(ctx context.Context, ids []uint) ([]entity.Role, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user row and its role assignments atomically.
func (r *userRepository) Create(ctx context.Context, user *entity.User, roles []entity.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").Create(user).Error; err != nil {
			return err
		}

		if len(roles) > 0 {
			if err := tx.Model(user).Association("Roles").Append(&roles); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context, filter dto.UserFilter) ([]*entity.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.User{})

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where(
			"username ILIKE ? OR email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			term, term, term, term,
		)
	}

	if filter.Role != "" {
		query = query.
			Joins("JOIN user_roles ON user_roles.user_id = users.id").
			Joins("JOIN roles ON roles.id = user_roles.role_id").
			Where("roles.name = ?", filter.Role).
			Distinct("users.*")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*entity.User
	if err := query.
		Preload("Roles").
		Order("users.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update saves the user row and, when roles is non-nil, replaces the full
// role assignment set in the same transaction. An empty set clears all
// assignments; join rows are physically removed and re-inserted.
func (r *userRepository) Update(ctx context.Context, user *entity.User, roles *[]entity.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").Save(user).Error; err != nil {
			return err
		}

		if roles != nil {
			if err := tx.Model(user).Association("Roles").Replace(*roles); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.User{}, "id = ?", id).Error
}

func (r *userRepository) FindRolesByIDs(ctx context.Context, ids []uint) ([]entity.Role, error) {
	var roles []entity.Role
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&roles).Error; err != nil {
		return nil, err
	}

	return roles, nil
}
