package service

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/entity"
	"haramaya.com/pharmatrack/internal/repository"
	"haramaya.com/pharmatrack/pkg/apperror"
)

const searchResultLimit = 20

type MedicineService interface {
	GetAllMedicines(ctx context.Context, filter dto.MedicineFilter) ([]dto.MedicineResponse, dto.PaginationMeta, error)
	GetMedicine(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error)
	CreateMedicine(ctx context.Context, input dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	UpdateMedicine(ctx context.Context, id uuid.UUID, input dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	DeleteMedicine(ctx context.Context, id uuid.UUID) error
	SearchMedicines(ctx context.Context, query string) ([]dto.MedicineResponse, error)
	GetLowStockMedicines(ctx context.Context) ([]dto.MedicineResponse, error)
}

type medicineService struct {
	repo         repository.MedicineRepository
	categoryRepo repository.CategoryRepository
	typeRepo     repository.TypeRepository
	search       SearchService
}

// search may be nil; the service then falls back to database search and
// skips index maintenance.
func NewMedicineService(
	repo repository.MedicineRepository,
	categoryRepo repository.CategoryRepository,
	typeRepo repository.TypeRepository,
	search SearchService,
) MedicineService {
	return &medicineService{
		repo:         repo,
		categoryRepo: categoryRepo,
		typeRepo:     typeRepo,
		search:       search,
	}
}

func (s *medicineService) GetAllMedicines(ctx context.Context, filter dto.MedicineFilter) ([]dto.MedicineResponse, dto.PaginationMeta, error) {
	filter.Normalize()

	medicines, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, err
	}

	responses := make([]dto.MedicineResponse, 0, len(medicines))
	for _, m := range medicines {
		responses = append(responses, dto.NewMedicineResponse(m))
	}

	return responses, dto.NewPaginationMeta(filter.ListQuery, total), nil
}

func (s *medicineService) GetMedicine(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	medicine, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Medicine not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	res := dto.NewMedicineResponse(medicine)
	return &res, nil
}

func (s *medicineService) CreateMedicine(ctx context.Context, input dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	if err := s.ensureNameAvailable(ctx, input.Name); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	typeID, err := s.resolveType(ctx, input.TypeID)
	if err != nil {
		return nil, err
	}

	reorderLevel := 10
	if input.ReorderLevel != nil {
		reorderLevel = *input.ReorderLevel
	}

	requiresPrescription := true
	if input.RequiresPrescription != nil {
		requiresPrescription = *input.RequiresPrescription
	}

	medicine := &entity.Medicine{
		Name:                 input.Name,
		GenericName:          input.GenericName,
		CategoryID:           categoryID,
		TypeID:               typeID,
		Strength:             input.Strength,
		Unit:                 input.Unit,
		ReorderLevel:         reorderLevel,
		UnitPrice:            *input.UnitPrice,
		RequiresPrescription: requiresPrescription,
	}

	if err := s.repo.Create(ctx, medicine); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, medicine.ID)
	if err != nil {
		return nil, err
	}

	s.indexMedicine(created)

	res := dto.NewMedicineResponse(created)
	return &res, nil
}

func (s *medicineService) UpdateMedicine(ctx context.Context, id uuid.UUID, input dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	medicine, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Medicine not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Name != nil && *input.Name != medicine.Name {
		if err := s.ensureNameAvailable(ctx, *input.Name); err != nil {
			return nil, err
		}
		medicine.Name = *input.Name
	}
	if input.GenericName != nil {
		medicine.GenericName = input.GenericName
	}
	if input.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		medicine.CategoryID = categoryID
	}
	if input.TypeID != nil {
		typeID, err := s.resolveType(ctx, *input.TypeID)
		if err != nil {
			return nil, err
		}
		medicine.TypeID = typeID
	}
	if input.Strength != nil {
		medicine.Strength = input.Strength
	}
	if input.Unit != nil {
		medicine.Unit = *input.Unit
	}
	if input.ReorderLevel != nil {
		medicine.ReorderLevel = *input.ReorderLevel
	}
	if input.UnitPrice != nil {
		medicine.UnitPrice = *input.UnitPrice
	}
	if input.RequiresPrescription != nil {
		medicine.RequiresPrescription = *input.RequiresPrescription
	}

	if err := s.repo.Update(ctx, medicine); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.indexMedicine(updated)

	res := dto.NewMedicineResponse(updated)
	return &res, nil
}

func (s *medicineService) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "Medicine not found", apperror.ErrNotFound)
		}
		return err
	}

	quantity, err := s.repo.StockQuantity(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if quantity > 0 {
		return apperror.New(http.StatusUnprocessableEntity,
			"Cannot delete medicine with existing stock", apperror.ErrUnprocessable)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteMedicine(id); err != nil {
			log.Printf("search deindex failed: %v", err)
		}
	}

	return nil
}

func (s *medicineService) SearchMedicines(ctx context.Context, query string) ([]dto.MedicineResponse, error) {
	if s.search != nil {
		ids, err := s.search.SearchMedicines(query, searchResultLimit)
		if err == nil {
			return s.medicinesByRankedIDs(ctx, ids)
		}
		log.Printf("search index query failed, falling back to database: %v", err)
	}

	medicines, err := s.repo.Search(ctx, query, searchResultLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MedicineResponse, 0, len(medicines))
	for _, m := range medicines {
		responses = append(responses, dto.NewMedicineResponse(m))
	}
	return responses, nil
}

func (s *medicineService) GetLowStockMedicines(ctx context.Context) ([]dto.MedicineResponse, error) {
	medicines, err := s.repo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MedicineResponse, 0, len(medicines))
	for _, m := range medicines {
		responses = append(responses, dto.NewMedicineResponse(m))
	}
	return responses, nil
}

// medicinesByRankedIDs re-fetches index hits from the database (the index can
// lag behind deletes) and preserves the relevance order.
func (s *medicineService) medicinesByRankedIDs(ctx context.Context, ids []uuid.UUID) ([]dto.MedicineResponse, error) {
	if len(ids) == 0 {
		return []dto.MedicineResponse{}, nil
	}

	medicines, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entity.Medicine, len(medicines))
	for _, m := range medicines {
		byID[m.ID] = m
	}

	responses := make([]dto.MedicineResponse, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			responses = append(responses, dto.NewMedicineResponse(m))
		}
	}
	return responses, nil
}

// ensureNameAvailable is a friendly pre-check; the partial unique index on
// live medicine names is what actually guarantees uniqueness under races.
func (s *medicineService) ensureNameAvailable(ctx context.Context, name string) error {
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return apperror.New(http.StatusConflict, "Medicine already exists", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return nil
}

func (s *medicineService) resolveCategory(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.New(http.StatusBadRequest, "Invalid category ID", apperror.ErrBadRequest)
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperror.New(http.StatusUnprocessableEntity,
				"Category does not exist", apperror.ErrInvalidReference)
		}
		return uuid.Nil, err
	}

	return id, nil
}

func (s *medicineService) resolveType(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.New(http.StatusBadRequest, "Invalid type ID", apperror.ErrBadRequest)
	}

	if _, err := s.typeRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperror.New(http.StatusUnprocessableEntity,
				"Type does not exist", apperror.ErrInvalidReference)
		}
		return uuid.Nil, err
	}

	return id, nil
}

func (s *medicineService) indexMedicine(medicine *entity.Medicine) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexMedicine(medicine); err != nil {
		log.Printf("search index failed: %v", err)
	}
}
