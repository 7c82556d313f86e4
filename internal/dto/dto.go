// Package dto defines the wire shapes of requests and responses and the
// mapping between them and the persisted model.
package dto

import (
	"strconv"
	"strings"

	"github.com/deppfellow/nzwalks/internal/repository"
	"github.com/deppfellow/nzwalks/internal/validation"
)

// MessageResponse is the body of mutations that return no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse pairs a confirmation message with the affected entity.
type DataResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// IDParam binds the :id path segment.
type IDParam struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (p *IDParam) Validate() error {
	return validation.Struct(p)
}

// ListQuery binds the filter, sort and paging query parameters.
//
// IsAscending stays a string so an absent value can default to true.
// Paging is clamped by repository.ListOptions.
type ListQuery struct {
	FilterOn    string `query:"filterOn"`
	FilterQuery string `query:"filterQuery"`
	SortBy      string `query:"sortBy"`
	IsAscending string `query:"isAscending" validate:"omitempty,boolean"`
	PageNumber  int    `query:"pageNumber"`
	PageSize    int    `query:"pageSize"`
}

func (q *ListQuery) Validate() error {
	return validation.Struct(q)
}

// Ascending reports the requested direction, defaulting to true.
func (q *ListQuery) Ascending() bool {
	if strings.TrimSpace(q.IsAscending) == "" {
		return true
	}
	asc, err := strconv.ParseBool(q.IsAscending)
	if err != nil {
		return true
	}
	return asc
}

// ToOptions converts the query into repository list options.
func (q *ListQuery) ToOptions() repository.ListOptions {
	return repository.ListOptions{
		FilterOn:    q.FilterOn,
		FilterQuery: q.FilterQuery,
		SortBy:      q.SortBy,
		Ascending:   q.Ascending(),
		PageNumber:  q.PageNumber,
		PageSize:    q.PageSize,
	}
}
