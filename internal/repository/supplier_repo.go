package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/entity"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	FindAll(ctx context.Context, filter dto.SupplierFilter) ([]*entity.Supplier, int64, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type supplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) FindAll(ctx context.Context, filter dto.SupplierFilter) ([]*entity.Supplier, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Supplier{})

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR contact_person ILIKE ?", term, term)
	}

	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var suppliers []*entity.Supplier
	if err := query.
		Order("name").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&suppliers).Error; err != nil {
		return nil, 0, err
	}

	return suppliers, total, nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Supplier{}, "id = ?", id).Error
}
