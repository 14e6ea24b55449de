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

type CategoryService interface {
	GetAllCategories(ctx context.Context, filter dto.ListQuery) ([]dto.CategoryResponse, dto.PaginationMeta, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, input dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) GetAllCategories(ctx context.Context, filter dto.ListQuery) ([]dto.CategoryResponse, dto.PaginationMeta, error) {
	filter.Normalize()

	categories, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	ids := make([]uuid.UUID, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}

	counts, err := s.repo.CountMedicinesByIDs(ctx, ids)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.NewCategoryResponse(category, counts[category.ID]))
	}

	return responses, dto.NewPaginationMeta(filter, total), nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Category not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	count, err := s.repo.CountMedicines(ctx, id)
	if err != nil {
		return nil, err
	}

	res := dto.NewCategoryResponse(category, count)
	return &res, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, input dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if _, err := s.repo.FindByName(ctx, input.Name); err == nil {
		return nil, apperror.New(http.StatusConflict, "Category already exists", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &entity.MedicineCategory{Name: input.Name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	res := dto.NewCategoryResponse(category, 0)
	return &res, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Category not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Name != nil && *input.Name != category.Name {
		if _, err := s.repo.FindByName(ctx, *input.Name); err == nil {
			return nil, apperror.New(http.StatusConflict, "Category already exists", apperror.ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		category.Name = *input.Name
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	count, err := s.repo.CountMedicines(ctx, id)
	if err != nil {
		return nil, err
	}

	res := dto.NewCategoryResponse(category, count)
	return &res, nil
}

// DeleteCategory refuses while any live medicine still references the
// category; the row is left untouched in that case.
func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "Category not found", apperror.ErrNotFound)
		}
		return err
	}

	count, err := s.repo.CountMedicines(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.New(http.StatusUnprocessableEntity,
			"Cannot delete category with existing medicines", apperror.ErrUnprocessable)
	}

	return s.repo.Delete(ctx, id)
}
