package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.MedicineCategory{},
		&entity.MedicineType{},
		&entity.Medicine{},
		&entity.StockInventory{},
		&entity.Supplier{},
	)
}

// SeedRoles inserts the fixed role set; re-running is a no-op.
func SeedRoles(db *gorm.DB) error {
	defaultRoles := []string{
		entity.RoleSystemAdministrator,
		entity.RolePharmacist,
		entity.RoleDataClerk,
		entity.RolePhysician,
		entity.RoleWardNurse,
		entity.RoleDrugSupplier,
	}

	for _, name := range defaultRoles {
		var count int64
		if err := db.Model(&entity.Role{}).
			Where("name = ?", name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&entity.Role{Name: name}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdminUser creates the bootstrap administrator when the user table is
// empty. The default credentials are meant to be changed after first login.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	var adminRole entity.Role
	if err := db.Where("name = ?", entity.RoleSystemAdministrator).First(&adminRole).Error; err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.User{
		Username:     "admin",
		Email:        "admin@haramaya.edu",
		PasswordHash: string(hashedPassword),
		FirstName:    "System",
		LastName:     "Administrator",
		IsActive:     true,
		Roles:        []entity.Role{adminRole},
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Default admin user created (username: admin, password: admin123)")
	return nil
}
