package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/entity"
)

type TypeRepository interface {
	Create(ctx context.Context, medType *entity.MedicineType) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MedicineType, error)
	FindByName(ctx context.Context, name string) (*entity.MedicineType, error)
	FindAll(ctx context.Context, filter dto.ListQuery) ([]*entity.MedicineType, int64, error)
	Update(ctx context.Context, medType *entity.MedicineType) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountMedicines(ctx context.Context, typeID uuid.UUID) (int64, error)
	CountMedicinesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
}

type typeRepository struct {
	db *gorm.DB
}

func NewTypeRepository(db *gorm.DB) TypeRepository {
	return &typeRepository{db: db}
}

func (r *typeRepository) Create(ctx context.Context, medType *entity.MedicineType) error {
	return r.db.WithContext(ctx).Create(medType).Error
}

func (r *typeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MedicineType, error) {
	var medType entity.MedicineType
	if err := r.db.WithContext(ctx).First(&medType, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &medType, nil
}

func (r *typeRepository) FindByName(ctx context.Context, name string) (*entity.MedicineType, error) {
	var medType entity.MedicineType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&medType).Error; err != nil {
		return nil, err
	}
	return &medType, nil
}

func (r *typeRepository) FindAll(ctx context.Context, filter dto.ListQuery) ([]*entity.MedicineType, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.MedicineType{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var types []*entity.MedicineType
	if err := query.
		Order("name").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&types).Error; err != nil {
		return nil, 0, err
	}

	return types, total, nil
}

func (r *typeRepository) Update(ctx context.Context, medType *entity.MedicineType) error {
	return r.db.WithContext(ctx).Save(medType).Error
}

func (r *typeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.MedicineType{}, "id = ?", id).Error
}

func (r *typeRepository) CountMedicines(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Medicine{}).
		Where("type_id = ?", typeID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *typeRepository) CountMedicinesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		TypeID uuid.UUID
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entity.Medicine{}).
		Select("type_id, COUNT(*) AS total").
		Where("type_id IN ?", ids).
		Group("type_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.TypeID] = row.Total
	}

	return counts, nil
}
