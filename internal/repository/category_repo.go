package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.MedicineCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MedicineCategory, error)
	FindByName(ctx context.Context, name string) (*entity.MedicineCategory, error)
	FindAll(ctx context.Context, filter dto.ListQuery) ([]*entity.MedicineCategory, int64, error)
	Update(ctx context.Context, category *entity.MedicineCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountMedicines(ctx context.Context, categoryID uuid.UUID) (int64, error)
	CountMedicinesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.MedicineCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MedicineCategory, error) {
	var category entity.MedicineCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*entity.MedicineCategory, error) {
	var category entity.MedicineCategory
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context, filter dto.ListQuery) ([]*entity.MedicineCategory, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.MedicineCategory{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []*entity.MedicineCategory
	if err := query.
		Order("name").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.MedicineCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.MedicineCategory{}, "id = ?", id).Error
}

// CountMedicines counts live medicines referencing the category; soft-deleted
// medicines are excluded by gorm's default scope.
func (r *categoryRepository) CountMedicines(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Medicine{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// CountMedicinesByIDs resolves the medicine counts for a page of categories
// in one grouped query.
func (r *categoryRepository) CountMedicinesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		CategoryID uuid.UUID
		Total      int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entity.Medicine{}).
		Select("category_id, COUNT(*) AS total").
		Where("category_id IN ?", ids).
		Group("category_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.CategoryID] = row.Total
	}

	return counts, nil
}
