package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxPageSize bounds how many items a single listing page may return.
const MaxPageSize = 100

// ProductFilter carries optional listing criteria. Nil means the criterion
// was not specified; a non-nil zero value is a real filter (InStock=false
// selects out-of-stock products). All present criteria combine conjunctively.
type ProductFilter struct {
	CategoryID *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    *bool
	SellerID   *uuid.UUID
	Search     string
}

// Validate rejects an inverted price range before any store access
func (f ProductFilter) Validate() error {
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return ErrInvalidFilterRange
	}
	return nil
}

// SearchQuery returns the trimmed free-text query, or "" when the filter has
// no meaningful search input.
func (f ProductFilter) SearchQuery() string {
	return strings.TrimSpace(f.Search)
}

// Browse reports whether the filter is the default "browse" listing: no
// criteria at all. Browse mode additionally restricts the listing to
// in-stock products in active categories.
func (f ProductFilter) Browse() bool {
	return f.CategoryID == nil &&
		f.MinPrice == nil &&
		f.MaxPrice == nil &&
		f.InStock == nil &&
		f.SellerID == nil &&
		f.SearchQuery() == ""
}

// PageParams is a 1-indexed pagination window
type PageParams struct {
	Page     int
	PageSize int
}

// Validate enforces page >= 1 and page_size in [1,MaxPageSize]
func (p PageParams) Validate() error {
	if p.Page < 1 || p.PageSize < 1 || p.PageSize > MaxPageSize {
		return ErrInvalidPageParams
	}
	return nil
}

// Offset returns the number of rows to skip for this page
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
