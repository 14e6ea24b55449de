package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/config"
	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/repository"
	"haramaya.com/pharmatrack/pkg/apperror"
	"haramaya.com/pharmatrack/pkg/token"
)

type AuthService interface {
	Login(ctx context.Context, input dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error)
}

type authService struct {
	repo   repository.UserRepository
	issuer *token.Issuer
	rdb    *redis.Client
	cfg    *config.Config
}

func NewAuthService(repo repository.UserRepository, issuer *token.Issuer, rdb *redis.Client, cfg *config.Config) AuthService {
	return &authService{
		repo:   repo,
		issuer: issuer,
		rdb:    rdb,
		cfg:    cfg,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginRequest) (*dto.LoginResponse, error) {
	attempts, err := FailedLoginCount(ctx, s.rdb, input.Username)
	if err != nil {
		return nil, err
	}
	if attempts >= int64(s.cfg.LoginMaxAttempts) {
		return nil, apperror.New(http.StatusTooManyRequests,
			"Too many failed login attempts, try again later", apperror.ErrRateLimited)
	}

	user, err := s.repo.FindByUsernameOrEmail(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.failedLogin(ctx, input.Username)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, s.failedLogin(ctx, input.Username)
	}

	if !user.IsActive {
		return nil, apperror.New(http.StatusForbidden, "Account deactivated", apperror.ErrForbidden)
	}

	if err := ClearFailedLogins(ctx, s.rdb, input.Username); err != nil {
		return nil, err
	}

	signed, _, err := s.issuer.Issue(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Message:   "Login successful",
		User:      dto.NewAuthUser(user),
		Token:     signed,
		TokenType: "Bearer",
	}, nil
}

// failedLogin records the attempt and always answers the same 401 so the
// response does not reveal whether the account exists.
func (s *authService) failedLogin(ctx context.Context, identifier string) error {
	if _, err := RecordFailedLogin(ctx, s.rdb, identifier, s.cfg.LoginLockWindow); err != nil {
		return err
	}
	return apperror.New(http.StatusUnauthorized, "Invalid credentials", apperror.ErrUnauthenticated)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUnauthenticated
		}
		return nil, err
	}

	res := dto.NewMeResponse(user)
	return &res, nil
}
