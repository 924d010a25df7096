package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductFilter_Validate_InvertedRange(t *testing.T) {
	minPrice := decimal.RequireFromString("10.00")
	maxPrice := decimal.RequireFromString("5.00")

	filter := ProductFilter{MinPrice: &minPrice, MaxPrice: &maxPrice}

	err := filter.Validate()

	assert.ErrorIs(t, err, ErrInvalidFilterRange)
}

func TestProductFilter_Validate_EqualBounds(t *testing.T) {
	price := decimal.RequireFromString("9.99")

	filter := ProductFilter{MinPrice: &price, MaxPrice: &price}

	assert.NoError(t, filter.Validate())
}

func TestProductFilter_Validate_SingleBound(t *testing.T) {
	minPrice := decimal.RequireFromString("10.00")

	assert.NoError(t, ProductFilter{MinPrice: &minPrice}.Validate())
	assert.NoError(t, ProductFilter{MaxPrice: &minPrice}.Validate())
}

func TestProductFilter_Browse(t *testing.T) {
	assert.True(t, ProductFilter{}.Browse())

	// Whitespace-only search is still browse mode
	assert.True(t, ProductFilter{Search: "   "}.Browse())

	categoryID := uuid.New()
	assert.False(t, ProductFilter{CategoryID: &categoryID}.Browse())

	inStock := false
	assert.False(t, ProductFilter{InStock: &inStock}.Browse())

	assert.False(t, ProductFilter{Search: "laptop"}.Browse())
}

func TestPageParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  PageParams
		wantErr bool
	}{
		{"first page", PageParams{Page: 1, PageSize: 20}, false},
		{"max page size", PageParams{Page: 1, PageSize: 100}, false},
		{"zero page", PageParams{Page: 0, PageSize: 20}, true},
		{"negative page", PageParams{Page: -1, PageSize: 20}, true},
		{"zero page size", PageParams{Page: 1, PageSize: 0}, true},
		{"oversized page size", PageParams{Page: 1, PageSize: 101}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPageParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPageParams_Offset(t *testing.T) {
	assert.Equal(t, 0, PageParams{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 200, PageParams{Page: 3, PageSize: 100}.Offset())
}
