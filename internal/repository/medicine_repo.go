package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/entity"
)

type MedicineRepository interface {
	Create(ctx context.Context, medicine *entity.Medicine) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Medicine, error)
	FindByName(ctx context.Context, name string) (*entity.Medicine, error)
	FindAll(ctx context.Context, filter dto.MedicineFilter) ([]*entity.Medicine, int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Medicine, error)
	Search(ctx context.Context, term string, limit int) ([]*entity.Medicine, error)
	FindLowStock(ctx context.Context) ([]*entity.Medicine, error)
	Update(ctx context.Context, medicine *entity.Medicine) error
	Delete(ctx context.Context, id uuid.UUID) error
	StockQuantity(ctx context.Context, medicineID uuid.UUID) (int, error)
}

type medicineRepository struct {
	db *gorm.DB
}

func NewMedicineRepository(db *gorm.DB) MedicineRepository {
	return &medicineRepository{db: db}
}

// Create inserts the medicine and its zero-quantity inventory row in one
// transaction; a medicine must never exist without its inventory row.
func (r *medicineRepository) Create(ctx context.Context, medicine *entity.Medicine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Category", "Type", "Stock").Create(medicine).Error; err != nil {
			return err
		}

		stock := &entity.StockInventory{
			MedicineID:        medicine.ID,
			QuantityAvailable: 0,
		}
		if err := tx.Create(stock).Error; err != nil {
			return err
		}

		medicine.Stock = stock
		return nil
	})
}

func (r *medicineRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Medicine, error) {
	var medicine entity.Medicine
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Type").
		Preload("Stock").
		Where("id = ?", id).
		First(&medicine).Error; err != nil {
		return nil, err
	}

	return &medicine, nil
}

func (r *medicineRepository) FindByName(ctx context.Context, name string) (*entity.Medicine, error) {
	var medicine entity.Medicine
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&medicine).Error; err != nil {
		return nil, err
	}

	return &medicine, nil
}

func (r *medicineRepository) FindAll(ctx context.Context, filter dto.MedicineFilter) ([]*entity.Medicine, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Medicine{})

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR generic_name ILIKE ?", term, term)
	}

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	if filter.TypeID != "" {
		query = query.Where("type_id = ?", filter.TypeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var medicines []*entity.Medicine
	if err := query.
		Preload("Category").
		Preload("Type").
		Preload("Stock").
		Order("name").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&medicines).Error; err != nil {
		return nil, 0, err
	}

	return medicines, total, nil
}

func (r *medicineRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Medicine, error) {
	var medicines []*entity.Medicine
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Type").
		Preload("Stock").
		Where("id IN ?", ids).
		Find(&medicines).Error; err != nil {
		return nil, err
	}

	return medicines, nil
}

func (r *medicineRepository) Search(ctx context.Context, term string, limit int) ([]*entity.Medicine, error) {
	var medicines []*entity.Medicine
	pattern := "%" + term + "%"
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Type").
		Preload("Stock").
		Where("name ILIKE ? OR generic_name ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&medicines).Error; err != nil {
		return nil, err
	}

	return medicines, nil
}

// FindLowStock lists medicines whose available quantity has fallen to or
// below their reorder level.
func (r *medicineRepository) FindLowStock(ctx context.Context) ([]*entity.Medicine, error) {
	var medicines []*entity.Medicine
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Type").
		Preload("Stock").
		Joins("JOIN stock_inventories ON stock_inventories.medicine_id = medicines.id").
		Where("stock_inventories.quantity_available <= medicines.reorder_level").
		Order("name").
		Find(&medicines).Error; err != nil {
		return nil, err
	}

	return medicines, nil
}

func (r *medicineRepository) Update(ctx context.Context, medicine *entity.Medicine) error {
	return r.db.WithContext(ctx).Omit("Category", "Type", "Stock").Save(medicine).Error
}

func (r *medicineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Medicine{}, "id = ?", id).Error
}

func (r *medicineRepository) StockQuantity(ctx context.Context, medicineID uuid.UUID) (int, error) {
	var stock entity.StockInventory
	if err := r.db.WithContext(ctx).
		Where("medicine_id = ?", medicineID).
		First(&stock).Error; err != nil {
		return 0, err
	}

	return stock.QuantityAvailable, nil
}
