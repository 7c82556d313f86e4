package repository

import (
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 5
	MaxPageSize       = 100
)

// ListOptions describes filter, sort and paging for a list endpoint.
type ListOptions struct {
	FilterOn    string
	FilterQuery string
	SortBy      string
	Ascending   bool
	PageNumber  int
	PageSize    int
}

// Page returns the clamped page number and size.
//
// A page number below 1 becomes 1, a size below 1 becomes the default,
// and sizes above MaxPageSize are capped.
func (o ListOptions) Page() (number, size int) {
	number, size = o.PageNumber, o.PageSize
	if number < 1 {
		number = DefaultPageNumber
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return number, size
}

// Offset is the number of rows skipped before the page starts. It saturates
// at math.MaxInt instead of wrapping, so a page far past the end stays empty.
func (o ListOptions) Offset() int {
	number, size := o.Page()
	if number-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (number - 1) * size
}

// listColumns maps a lowercased request field name to its column.
type listColumns map[string]string

func (c listColumns) lookup(field string) (string, bool) {
	column, ok := c[strings.ToLower(strings.TrimSpace(field))]
	return column, ok
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyListOptions filters, then sorts, then pages db.
//
// The filter is a case-sensitive substring match. Fields not present in
// filterable/sortable are ignored.
func applyListOptions(db *gorm.DB, opts ListOptions, filterable, sortable listColumns) *gorm.DB {
	if column, ok := filterable.lookup(opts.FilterOn); ok && opts.FilterQuery != "" {
		db = db.Where(
			clause.Expr{
				SQL:  `? LIKE ? ESCAPE '\'`,
				Vars: []any{clause.Column{Name: column}, "%" + likeEscaper.Replace(opts.FilterQuery) + "%"},
			},
		)
	}

	if column, ok := sortable.lookup(opts.SortBy); ok {
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   !opts.Ascending,
		})
	}

	_, size := opts.Page()
	return db.Offset(opts.Offset()).Limit(size)
}
