package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQueryNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        ListQuery
		wantPage  int
		wantLimit int
	}{
		{"zero values get defaults", ListQuery{}, 1, 15},
		{"negative page reset", ListQuery{Page: -3, Limit: 10}, 1, 10},
		{"oversized limit clamped", ListQuery{Page: 2, Limit: 500}, 2, 100},
		{"valid values untouched", ListQuery{Page: 4, Limit: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantLimit, tt.in.Limit)
		})
	}
}

func TestListQueryOffset(t *testing.T) {
	q := ListQuery{Page: 3, Limit: 15}
	assert.Equal(t, 30, q.Offset())

	q = ListQuery{Page: 1, Limit: 15}
	assert.Equal(t, 0, q.Offset())
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(ListQuery{Page: 2, Limit: 15}, 31)

	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(31), meta.TotalItems)
	assert.Equal(t, 15, meta.Limit)

	meta = NewPaginationMeta(ListQuery{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, meta.TotalPages)
}
