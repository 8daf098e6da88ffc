package handler

import (
	"strconv"

	"gamestudio/website/internal/repository"

	"github.com/gin-gonic/gin"
)

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// PaginatedResponse defines the structure for a paginated list of any type.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResponse creates a new PaginatedResponse.
func NewPaginatedResponse[T any](data []T, totalItems int64, page, limit int) PaginatedResponse[T] {
	if limit <= 0 {
		limit = 1
	}
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{
		Data: data,
		Meta: PaginationMeta{
			TotalItems:  totalItems,
			TotalPages:  (int(totalItems) + limit - 1) / limit,
			CurrentPage: page,
			PageSize:    limit,
		},
	}
}

// listOptions reads page, limit and q from the query string.
func listOptions(c *gin.Context) repository.ListOptions {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(repository.DefaultLimit)))
	if err != nil {
		limit = repository.DefaultLimit
	}
	return repository.ListOptions{Page: page, Limit: limit, Query: c.Query("q")}.Normalize()
}

// paginated converts a repository page into the API response shape.
func paginated[T, R any](set repository.Set[T], opts repository.ListOptions, convert func(T) R) PaginatedResponse[R] {
	out := make([]R, 0, len(set.Items))
	for _, item := range set.Items {
		out = append(out, convert(item))
	}
	return NewPaginatedResponse(out, set.Total, opts.Page, opts.Limit)
}

func identity[T any](v T) T { return v }
