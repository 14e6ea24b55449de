package dto

import "haramaya.com/pharmatrack/internal/entity"

type SupplierFilter struct {
	ListQuery
	Active *bool `form:"is_active"`
}

type CreateSupplierRequest struct {
	Name          string  `json:"name" binding:"required,max=100"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=100"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         string  `json:"phone" binding:"required,max=20"`
	Address       *string `json:"address"`
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=100"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=100"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,max=20"`
	Address       *string `json:"address"`
	IsActive      *bool   `json:"is_active"`
}

// Suppliers serialize directly from the entity; no joined fields to flatten.
type SupplierResponse = entity.Supplier
