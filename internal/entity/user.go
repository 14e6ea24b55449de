package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const (
	RoleSystemAdministrator = "System Administrator"
	RolePharmacist          = "Pharmacist"
	RoleDataClerk           = "Data Clerk / Cashier"
	RolePhysician           = "Physician"
	RoleWardNurse           = "Ward Nurse"
	RoleDrugSupplier        = "Drug Supplier"
)

// User is soft-deleted only; join rows in user_roles are the one exception
// and are physically removed when roles are reassigned.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string         `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	FirstName    string         `gorm:"size:50;not null" json:"first_name"`
	LastName     string         `gorm:"size:50;not null" json:"last_name"`
	Phone        *string        `gorm:"size:20" json:"phone,omitempty"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	Roles        []Role         `gorm:"many2many:user_roles;constraint:OnDelete:CASCADE" json:"roles"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RoleNames flattens the assigned roles for the identity attached to requests.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

func (u *User) HasRole(name string) bool {
	for _, role := range u.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}
