package dto

import "time"

// APIResponse is the success envelope of every endpoint
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in the success envelope
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// PaginationInfo describes a page of a listing
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"48"`
}

// PagedResponse is a page of items with its pagination info
type PagedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// MessageResponse is returned by endpoints that only acknowledge
type MessageResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}
