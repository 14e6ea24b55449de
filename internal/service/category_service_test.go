package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/pkg/apperror"
)

func TestCreateCategory(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)

	res, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Analgesics"})
	require.NoError(t, err)
	assert.Equal(t, "Analgesics", res.Name)
	assert.Equal(t, int64(0), res.MedicinesCount)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)

	_, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Analgesics"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Analgesics"})
	assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Category already exists", appErr.Message)
}

func TestGetAllCategoriesIncludesCounts(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)

	withMedicines, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Analgesics"})
	require.NoError(t, err)
	empty, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Antibiotics"})
	require.NoError(t, err)
	repo.medicineCounts[withMedicines.ID] = 4

	categories, meta, err := svc.GetAllCategories(context.Background(), dto.ListQuery{})
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, int64(2), meta.TotalItems)

	byID := make(map[uuid.UUID]int64, len(categories))
	for _, category := range categories {
		byID[category.ID] = category.MedicinesCount
	}
	assert.Equal(t, int64(4), byID[withMedicines.ID])
	assert.Equal(t, int64(0), byID[empty.ID])
}

func TestGetCategory(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)

	created, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Analgesics"})
	require.NoError(t, err)
	repo.medicineCounts[created.ID] = 7

	res, err := svc.GetCategory(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Analgesics", res.Name)
	assert.Equal(t, int64(7), res.MedicinesCount)

	_, err = svc.GetCategory(context.Background(), uuid.New())
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}

func TestUpdateCategoryNameConflict(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)

	first, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Analgesics"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Antibiotics"})
	require.NoError(t, err)

	taken := "Antibiotics"
	_, err = svc.UpdateCategory(context.Background(), first.ID, dto.UpdateCategoryRequest{Name: &taken})
	assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))
}

func TestDeleteCategory(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)

	created, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Analgesics"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(context.Background(), created.ID))
	assert.NotContains(t, repo.categories, created.ID)
}

func TestDeleteCategoryWithMedicinesBlocked(t *testing.T) {
	repo := newStubCategoryRepo()
	svc := NewCategoryService(repo)

	created, err := svc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Analgesics"})
	require.NoError(t, err)
	repo.medicineCounts[created.ID] = 3

	err = svc.DeleteCategory(context.Background(), created.ID)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.MapErrorToStatus(err))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Cannot delete category with existing medicines", appErr.Message)
	assert.Contains(t, repo.categories, created.ID)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())

	err := svc.DeleteCategory(context.Background(), uuid.New())
	assert.Equal(t, http.StatusNotFound, apperror.MapErrorToStatus(err))
}
