package dto

import (
	"github.com/google/uuid"

	"haramaya.com/pharmatrack/internal/entity"
)

// LoginRequest accepts a username or an email in the same field.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Roles    []string  `json:"roles"`
}

type LoginResponse struct {
	Message   string   `json:"message"`
	User      AuthUser `json:"user"`
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
}

type MeResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Roles     []string  `json:"roles"`
}

func NewAuthUser(u *entity.User) AuthUser {
	return AuthUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName(),
		Roles:    u.RoleNames(),
	}
}

func NewMeResponse(u *entity.User) MeResponse {
	return MeResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Roles:     u.RoleNames(),
	}
}
