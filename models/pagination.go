package models

// PageResponse wraps a single page of results. TotalPages is derived from a
// count taken in the same transaction as the page itself.
type PageResponse[T any] struct {
	Content    []T `json:"content"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}
