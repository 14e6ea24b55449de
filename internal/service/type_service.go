package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/entity"
	"haramaya.com/pharmatrack/internal/repository"
	"haramaya.com/pharmatrack/pkg/apperror"
)

type TypeService interface {
	GetAllTypes(ctx context.Context, filter dto.ListQuery) ([]dto.TypeResponse, dto.PaginationMeta, error)
	GetType(ctx context.Context, id uuid.UUID) (*dto.TypeResponse, error)
	CreateType(ctx context.Context, input dto.CreateTypeRequest) (*dto.TypeResponse, error)
	UpdateType(ctx context.Context, id uuid.UUID, input dto.UpdateTypeRequest) (*dto.TypeResponse, error)
	DeleteType(ctx context.Context, id uuid.UUID) error
}

type typeService struct {
	repo repository.TypeRepository
}

func NewTypeService(repo repository.TypeRepository) TypeService {
	return &typeService{repo: repo}
}

func (s *typeService) GetAllTypes(ctx context.Context, filter dto.ListQuery) ([]dto.TypeResponse, dto.PaginationMeta, error) {
	filter.Normalize()

	types, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	ids := make([]uuid.UUID, 0, len(types))
	for _, medType := range types {
		ids = append(ids, medType.ID)
	}

	counts, err := s.repo.CountMedicinesByIDs(ctx, ids)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.TypeResponse, 0, len(types))
	for _, medType := range types {
		responses = append(responses, dto.NewTypeResponse(medType, counts[medType.ID]))
	}

	return responses, dto.NewPaginationMeta(filter, total), nil
}

func (s *typeService) GetType(ctx context.Context, id uuid.UUID) (*dto.TypeResponse, error) {
	medType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Type not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	count, err := s.repo.CountMedicines(ctx, id)
	if err != nil {
		return nil, err
	}

	res := dto.NewTypeResponse(medType, count)
	return &res, nil
}

func (s *typeService) CreateType(ctx context.Context, input dto.CreateTypeRequest) (*dto.TypeResponse, error) {
	if _, err := s.repo.FindByName(ctx, input.Name); err == nil {
		return nil, apperror.New(http.StatusConflict, "Type already exists", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	medType := &entity.MedicineType{Name: input.Name}
	if err := s.repo.Create(ctx, medType); err != nil {
		return nil, err
	}

	res := dto.NewTypeResponse(medType, 0)
	return &res, nil
}

func (s *typeService) UpdateType(ctx context.Context, id uuid.UUID, input dto.UpdateTypeRequest) (*dto.TypeResponse, error) {
	medType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Type not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Name != nil && *input.Name != medType.Name {
		if _, err := s.repo.FindByName(ctx, *input.Name); err == nil {
			return nil, apperror.New(http.StatusConflict, "Type already exists", apperror.ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		medType.Name = *input.Name
	}

	if err := s.repo.Update(ctx, medType); err != nil {
		return nil, err
	}

	count, err := s.repo.CountMedicines(ctx, id)
	if err != nil {
		return nil, err
	}

	res := dto.NewTypeResponse(medType, count)
	return &res, nil
}

func (s *typeService) DeleteType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "Type not found", apperror.ErrNotFound)
		}
		return err
	}

	count, err := s.repo.CountMedicines(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.New(http.StatusUnprocessableEntity,
			"Cannot delete type with existing medicines", apperror.ErrUnprocessable)
	}

	return s.repo.Delete(ctx, id)
}
