package dto

import (
	"time"

	"github.com/google/uuid"

	"haramaya.com/pharmatrack/internal/entity"
)

type MedicineFilter struct {
	ListQuery
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	TypeID     string `form:"type_id" binding:"omitempty,uuid"`
}

type MedicineSearchQuery struct {
	Query string `form:"query" binding:"required,min=2"`
}

// CreateMedicineRequest keeps UnitPrice a pointer so that a free medicine
// (price 0) still satisfies required.
type CreateMedicineRequest struct {
	Name                 string   `json:"name" binding:"required,max=200"`
	GenericName          *string  `json:"generic_name" binding:"omitempty,max=200"`
	CategoryID           string   `json:"category_id" binding:"required,uuid"`
	TypeID               string   `json:"type_id" binding:"required,uuid"`
	Strength             *string  `json:"strength" binding:"omitempty,max=50"`
	Unit                 string   `json:"unit" binding:"required,max=20"`
	ReorderLevel         *int     `json:"reorder_level" binding:"omitempty,gte=0"`
	UnitPrice            *float64 `json:"unit_price" binding:"required,gte=0"`
	RequiresPrescription *bool    `json:"requires_prescription"`
}

type UpdateMedicineRequest struct {
	Name                 *string  `json:"name" binding:"omitempty,max=200"`
	GenericName          *string  `json:"generic_name" binding:"omitempty,max=200"`
	CategoryID           *string  `json:"category_id" binding:"omitempty,uuid"`
	TypeID               *string  `json:"type_id" binding:"omitempty,uuid"`
	Strength             *string  `json:"strength" binding:"omitempty,max=50"`
	Unit                 *string  `json:"unit" binding:"omitempty,max=20"`
	ReorderLevel         *int     `json:"reorder_level" binding:"omitempty,gte=0"`
	UnitPrice            *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	RequiresPrescription *bool    `json:"requires_prescription"`
}

type MedicineResponse struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	GenericName          *string   `json:"generic_name,omitempty"`
	CategoryID           uuid.UUID `json:"category_id"`
	CategoryName         string    `json:"category_name"`
	TypeID               uuid.UUID `json:"type_id"`
	TypeName             string    `json:"type_name"`
	Strength             *string   `json:"strength,omitempty"`
	Unit                 string    `json:"unit"`
	ReorderLevel         int       `json:"reorder_level"`
	UnitPrice            float64   `json:"unit_price"`
	RequiresPrescription bool      `json:"requires_prescription"`
	QuantityAvailable    int       `json:"quantity_available"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func NewMedicineResponse(m *entity.Medicine) MedicineResponse {
	return MedicineResponse{
		ID:                   m.ID,
		Name:                 m.Name,
		GenericName:          m.GenericName,
		CategoryID:           m.CategoryID,
		CategoryName:         m.Category.Name,
		TypeID:               m.TypeID,
		TypeName:             m.Type.Name,
		Strength:             m.Strength,
		Unit:                 m.Unit,
		ReorderLevel:         m.ReorderLevel,
		UnitPrice:            m.UnitPrice,
		RequiresPrescription: m.RequiresPrescription,
		QuantityAvailable:    m.QuantityAvailable(),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
