// internal/api/types/response.go
package types

import "parentpoints/internal/domain"

// PaginatedResponse defines a generic structure for paginated API responses.
// T represents the type of data contained in the 'Data' slice.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
}

// MutationResponse reports the outcome of a transition. Kid is set when the
// affected profile still exists afterwards.
type MutationResponse struct {
	Outcome string      `json:"outcome"`
	Kid     *domain.Kid `json:"kid,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
