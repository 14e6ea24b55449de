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

type SupplierService interface {
	GetAllSuppliers(ctx context.Context, filter dto.SupplierFilter) ([]*entity.Supplier, dto.PaginationMeta, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	CreateSupplier(ctx context.Context, input dto.CreateSupplierRequest) (*entity.Supplier, error)
	UpdateSupplier(ctx context.Context, id uuid.UUID, input dto.UpdateSupplierRequest) (*entity.Supplier, error)
	DeleteSupplier(ctx context.Context, id uuid.UUID) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) GetAllSuppliers(ctx context.Context, filter dto.SupplierFilter) ([]*entity.Supplier, dto.PaginationMeta, error) {
	filter.Normalize()

	suppliers, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	return suppliers, dto.NewPaginationMeta(filter.ListQuery, total), nil
}

func (s *supplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Supplier not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	return supplier, nil
}

func (s *supplierService) CreateSupplier(ctx context.Context, input dto.CreateSupplierRequest) (*entity.Supplier, error) {
	supplier := &entity.Supplier{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

func (s *supplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input dto.UpdateSupplierRequest) (*entity.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Supplier not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.ContactPerson != nil {
		supplier.ContactPerson = input.ContactPerson
	}
	if input.Email != nil {
		supplier.Email = input.Email
	}
	if input.Phone != nil {
		supplier.Phone = *input.Phone
	}
	if input.Address != nil {
		supplier.Address = input.Address
	}
	if input.IsActive != nil {
		supplier.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "Supplier not found", apperror.ErrNotFound)
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}
