package postgres

import (
	"fmt"
	"strings"

	"github.com/vkatkov/gomarket/internal/domain"
)

// productFilterSQL is the canonical SQL form of a domain.ProductFilter: a
// conjunctive WHERE clause with positional args, plus the pieces the listing
// query needs around it (category join for browse mode, tsquery expression
// for ranked search). Both the page fetch and the count are built from the
// same composed filter so they always agree on the predicate.
type productFilterSQL struct {
	conds []string
	args  []interface{}

	// joinCategories is set in browse mode, where only products in active
	// categories are listed. The inner join also drops products whose
	// category row no longer exists.
	joinCategories bool

	// tsquery is the parsed search expression (websearch_to_tsquery over
	// bound args), empty when no search is active. It is referenced twice
	// in a ranked query: the match condition and the rank ordering.
	tsquery string
}

// bind appends an argument and returns its positional placeholder
func (f *productFilterSQL) bind(arg interface{}) string {
	f.args = append(f.args, arg)
	return fmt.Sprintf("$%d", len(f.args))
}

// where appends one conjunct. Placeholders in format are produced by bind.
func (f *productFilterSQL) where(cond string) {
	f.conds = append(f.conds, cond)
}

// whereClause joins all conjuncts
func (f *productFilterSQL) whereClause() string {
	return strings.Join(f.conds, " AND ")
}

// fromClause returns the FROM clause including the browse-mode join
func (f *productFilterSQL) fromClause() string {
	if f.joinCategories {
		return "FROM products p JOIN categories c ON c.id = p.category_id"
	}
	return "FROM products p"
}

// composeProductFilter translates filter criteria into SQL. Soft-deleted
// products are always excluded here and nowhere else; call sites never
// repeat the is_active check. ftsLanguage is the Postgres text-search
// configuration matching the stored search_tsv column.
func composeProductFilter(filter domain.ProductFilter, ftsLanguage string) *productFilterSQL {
	f := &productFilterSQL{}

	f.where("p.is_active")

	if filter.Browse() {
		f.joinCategories = true
		f.where("c.is_active")
		f.where("p.stock > 0")
	}

	if filter.CategoryID != nil {
		f.where("p.category_id = " + f.bind(*filter.CategoryID))
	}

	if filter.MinPrice != nil {
		f.where("p.price >= " + f.bind(*filter.MinPrice))
	}

	if filter.MaxPrice != nil {
		f.where("p.price <= " + f.bind(*filter.MaxPrice))
	}

	if filter.InStock != nil {
		if *filter.InStock {
			f.where("p.stock > 0")
		} else {
			f.where("p.stock = 0")
		}
	}

	if filter.SellerID != nil {
		f.where("p.seller_id = " + f.bind(*filter.SellerID))
	}

	if query := filter.SearchQuery(); query != "" {
		f.tsquery = fmt.Sprintf(
			"websearch_to_tsquery(%s::regconfig, %s)",
			f.bind(ftsLanguage), f.bind(query),
		)
		f.where("p.search_tsv @@ " + f.tsquery)
	}

	return f
}
