package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicineCategory struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *MedicineCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

type MedicineType struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:50;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *MedicineType) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID, err = uuid.NewV7()
	}
	return
}

// Medicine always has exactly one StockInventory row; the two are created in
// the same transaction.
type Medicine struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name                 string           `gorm:"size:200;not null;uniqueIndex:uni_medicines_live_name,where:deleted_at IS NULL" json:"name"`
	GenericName          *string          `gorm:"size:200;index" json:"generic_name,omitempty"`
	CategoryID           uuid.UUID        `gorm:"type:uuid;not null" json:"category_id"`
	Category             MedicineCategory `gorm:"constraint:OnUpdate:CASCADE" json:"category"`
	TypeID               uuid.UUID        `gorm:"type:uuid;not null" json:"type_id"`
	Type                 MedicineType     `gorm:"constraint:OnUpdate:CASCADE" json:"type"`
	Strength             *string          `gorm:"size:50" json:"strength,omitempty"`
	Unit                 string           `gorm:"size:20;not null" json:"unit"`
	ReorderLevel         int              `gorm:"not null;default:10" json:"reorder_level"`
	UnitPrice            float64          `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	RequiresPrescription bool             `gorm:"not null;default:true" json:"requires_prescription"`
	Stock                *StockInventory  `gorm:"foreignKey:MedicineID;constraint:OnDelete:CASCADE" json:"stock,omitempty"`
	CreatedAt            time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (m *Medicine) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID, err = uuid.NewV7()
	}
	return
}

func (m *Medicine) QuantityAvailable() int {
	if m.Stock == nil {
		return 0
	}
	return m.Stock.QuantityAvailable
}

type StockInventory struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MedicineID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"medicine_id"`
	QuantityAvailable int       `gorm:"not null;default:0" json:"quantity_available"`
	LastUpdated       time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

func (s *StockInventory) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}
