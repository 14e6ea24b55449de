package dto

import (
	"time"

	"github.com/google/uuid"

	"haramaya.com/pharmatrack/internal/entity"
)

type UserFilter struct {
	ListQuery
	Role string `form:"role"`
}

type CreateUserRequest struct {
	Username  string  `json:"username" binding:"required,min=3,max=50"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName string  `json:"first_name" binding:"required,max=50"`
	LastName  string  `json:"last_name" binding:"required,max=50"`
	Phone     *string `json:"phone"`
	RoleIDs   []uint  `json:"role_ids" binding:"required"`
}

// UpdateUserRequest is a sparse patch: only non-nil fields are applied.
// A non-nil empty RoleIDs slice clears all role assignments.
type UpdateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=3,max=50"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
	FirstName *string `json:"first_name" binding:"omitempty,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,max=50"`
	Phone     *string `json:"phone"`
	IsActive  *bool   `json:"is_active"`
	RoleIDs   *[]uint `json:"role_ids"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles"`
	RoleIDs   []uint    `json:"role_ids"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *entity.User) UserResponse {
	roleIDs := make([]uint, 0, len(u.Roles))
	for _, role := range u.Roles {
		roleIDs = append(roleIDs, role.ID)
	}

	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		Roles:     u.RoleNames(),
		RoleIDs:   roleIDs,
		CreatedAt: u.CreatedAt,
	}
}
