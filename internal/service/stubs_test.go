package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/entity"
)

// In-memory repository stubs. They honor the same record-not-found contract
// as the gorm implementations so service error mapping can be exercised
// without a database.

type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
	roles []entity.Role
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users: make(map[uuid.UUID]*entity.User),
		roles: []entity.Role{
			{ID: 1, Name: entity.RoleSystemAdministrator},
			{ID: 2, Name: entity.RolePharmacist},
			{ID: 3, Name: entity.RoleDataClerk},
		},
	}
}

func (r *stubUserRepo) Create(_ context.Context, user *entity.User, roles []entity.Role) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Roles = roles
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, identifier string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context, _ dto.UserFilter) ([]*entity.User, int64, error) {
	users := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, int64(len(users)), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *entity.User, roles *[]entity.Role) error {
	if roles != nil {
		user.Roles = *roles
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) FindRolesByIDs(_ context.Context, ids []uint) ([]entity.Role, error) {
	found := make([]entity.Role, 0, len(ids))
	for _, id := range ids {
		for _, role := range r.roles {
			if role.ID == id {
				found = append(found, role)
			}
		}
	}
	return found, nil
}

type stubCategoryRepo struct {
	categories     map[uuid.UUID]*entity.MedicineCategory
	medicineCounts map[uuid.UUID]int64
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{
		categories:     make(map[uuid.UUID]*entity.MedicineCategory),
		medicineCounts: make(map[uuid.UUID]int64),
	}
}

func (r *stubCategoryRepo) Create(_ context.Context, category *entity.MedicineCategory) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.categories[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.MedicineCategory, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*entity.MedicineCategory, error) {
	for _, category := range r.categories {
		if category.Name == name {
			return category, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) FindAll(_ context.Context, _ dto.ListQuery) ([]*entity.MedicineCategory, int64, error) {
	categories := make([]*entity.MedicineCategory, 0, len(r.categories))
	for _, category := range r.categories {
		categories = append(categories, category)
	}
	return categories, int64(len(categories)), nil
}

func (r *stubCategoryRepo) Update(_ context.Context, category *entity.MedicineCategory) error {
	r.categories[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) CountMedicines(_ context.Context, categoryID uuid.UUID) (int64, error) {
	return r.medicineCounts[categoryID], nil
}

func (r *stubCategoryRepo) CountMedicinesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	for _, id := range ids {
		if count, ok := r.medicineCounts[id]; ok {
			counts[id] = count
		}
	}
	return counts, nil
}

type stubTypeRepo struct {
	types          map[uuid.UUID]*entity.MedicineType
	medicineCounts map[uuid.UUID]int64
}

func newStubTypeRepo() *stubTypeRepo {
	return &stubTypeRepo{
		types:          make(map[uuid.UUID]*entity.MedicineType),
		medicineCounts: make(map[uuid.UUID]int64),
	}
}

func (r *stubTypeRepo) Create(_ context.Context, typ *entity.MedicineType) error {
	if typ.ID == uuid.Nil {
		typ.ID = uuid.New()
	}
	r.types[typ.ID] = typ
	return nil
}

func (r *stubTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.MedicineType, error) {
	typ, ok := r.types[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return typ, nil
}

func (r *stubTypeRepo) FindByName(_ context.Context, name string) (*entity.MedicineType, error) {
	for _, typ := range r.types {
		if typ.Name == name {
			return typ, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTypeRepo) FindAll(_ context.Context, _ dto.ListQuery) ([]*entity.MedicineType, int64, error) {
	types := make([]*entity.MedicineType, 0, len(r.types))
	for _, typ := range r.types {
		types = append(types, typ)
	}
	return types, int64(len(types)), nil
}

func (r *stubTypeRepo) Update(_ context.Context, typ *entity.MedicineType) error {
	r.types[typ.ID] = typ
	return nil
}

func (r *stubTypeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.types, id)
	return nil
}

func (r *stubTypeRepo) CountMedicines(_ context.Context, typeID uuid.UUID) (int64, error) {
	return r.medicineCounts[typeID], nil
}

func (r *stubTypeRepo) CountMedicinesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	for _, id := range ids {
		if count, ok := r.medicineCounts[id]; ok {
			counts[id] = count
		}
	}
	return counts, nil
}

type stubMedicineRepo struct {
	medicines    map[uuid.UUID]*entity.Medicine
	categoryRepo *stubCategoryRepo
	typeRepo     *stubTypeRepo
}

func newStubMedicineRepo(categoryRepo *stubCategoryRepo, typeRepo *stubTypeRepo) *stubMedicineRepo {
	return &stubMedicineRepo{
		medicines:    make(map[uuid.UUID]*entity.Medicine),
		categoryRepo: categoryRepo,
		typeRepo:     typeRepo,
	}
}

func (r *stubMedicineRepo) Create(_ context.Context, medicine *entity.Medicine) error {
	if medicine.ID == uuid.Nil {
		medicine.ID = uuid.New()
	}
	medicine.Stock = &entity.StockInventory{
		ID:         uuid.New(),
		MedicineID: medicine.ID,
	}
	r.fillAssociations(medicine)
	r.medicines[medicine.ID] = medicine
	return nil
}

func (r *stubMedicineRepo) fillAssociations(medicine *entity.Medicine) {
	if category, ok := r.categoryRepo.categories[medicine.CategoryID]; ok {
		medicine.Category = *category
	}
	if typ, ok := r.typeRepo.types[medicine.TypeID]; ok {
		medicine.Type = *typ
	}
}

func (r *stubMedicineRepo) FindByName(_ context.Context, name string) (*entity.Medicine, error) {
	for _, medicine := range r.medicines {
		if medicine.Name == name {
			return medicine, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMedicineRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Medicine, error) {
	medicine, ok := r.medicines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return medicine, nil
}

func (r *stubMedicineRepo) FindAll(_ context.Context, _ dto.MedicineFilter) ([]*entity.Medicine, int64, error) {
	medicines := make([]*entity.Medicine, 0, len(r.medicines))
	for _, medicine := range r.medicines {
		medicines = append(medicines, medicine)
	}
	return medicines, int64(len(medicines)), nil
}

func (r *stubMedicineRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Medicine, error) {
	medicines := make([]*entity.Medicine, 0, len(ids))
	for _, id := range ids {
		if medicine, ok := r.medicines[id]; ok {
			medicines = append(medicines, medicine)
		}
	}
	return medicines, nil
}

func (r *stubMedicineRepo) Search(_ context.Context, term string, limit int) ([]*entity.Medicine, error) {
	var matches []*entity.Medicine
	for _, medicine := range r.medicines {
		if len(matches) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(medicine.Name), strings.ToLower(term)) {
			matches = append(matches, medicine)
		}
	}
	return matches, nil
}

func (r *stubMedicineRepo) FindLowStock(_ context.Context) ([]*entity.Medicine, error) {
	var low []*entity.Medicine
	for _, medicine := range r.medicines {
		if medicine.QuantityAvailable() <= medicine.ReorderLevel {
			low = append(low, medicine)
		}
	}
	return low, nil
}

func (r *stubMedicineRepo) Update(_ context.Context, medicine *entity.Medicine) error {
	r.fillAssociations(medicine)
	r.medicines[medicine.ID] = medicine
	return nil
}

func (r *stubMedicineRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.medicines, id)
	return nil
}

func (r *stubMedicineRepo) StockQuantity(_ context.Context, medicineID uuid.UUID) (int, error) {
	medicine, ok := r.medicines[medicineID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return medicine.QuantityAvailable(), nil
}
