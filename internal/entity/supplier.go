package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Supplier struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"size:100;not null;index" json:"name"`
	ContactPerson *string        `gorm:"size:100" json:"contact_person,omitempty"`
	Email         *string        `gorm:"size:100" json:"email,omitempty"`
	Phone         string         `gorm:"size:20;not null" json:"phone"`
	Address       *string        `gorm:"type:text" json:"address,omitempty"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}
