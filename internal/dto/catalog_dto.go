package dto

import (
	"time"

	"github.com/google/uuid"

	"haramaya.com/pharmatrack/internal/entity"
)

// Categories and types share the same request/response shape; each keeps its
// own named types so handlers stay explicit about which resource they serve.

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
}

type CategoryResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	MedicinesCount int64     `json:"medicines_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewCategoryResponse(c *entity.MedicineCategory, medicinesCount int64) CategoryResponse {
	return CategoryResponse{
		ID:             c.ID,
		Name:           c.Name,
		MedicinesCount: medicinesCount,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type CreateTypeRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type UpdateTypeRequest struct {
	Name *string `json:"name" binding:"omitempty,max=50"`
}

type TypeResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	MedicinesCount int64     `json:"medicines_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewTypeResponse(t *entity.MedicineType, medicinesCount int64) TypeResponse {
	return TypeResponse{
		ID:             t.ID,
		Name:           t.Name,
		MedicinesCount: medicinesCount,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
