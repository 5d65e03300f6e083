package dto

import "time"

// APIResponse is the standard envelope for successful responses
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewAPIResponse wraps payload data in the standard envelope
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// SuccessResponse represents a bare confirmation message
type SuccessResponse struct {
	Message string `json:"message" example:"Student deleted successfully"`
}

// PageInfo describes the window a list response was produced with
type PageInfo struct {
	Skip  int `json:"skip" example:"0"`
	Limit int `json:"limit" example:"10"`
	Count int `json:"count" example:"10"`
}

// PaginatedResponse represents a paginated list with its window metadata
type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Pagination PageInfo    `json:"pagination"`
}
