package handler

// APIResponse represents a generic API response for OpenAPI documentation
// @name APIResponse
type APIResponse[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    T    `json:"data"`
}

// ListAPIResponse represents a collection response for OpenAPI documentation
// @name ListAPIResponse
type ListAPIResponse[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    []T  `json:"data"`
	Rows    int  `json:"rows" example:"12"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @name ErrorResponse
type ErrorResponse struct {
	Success bool `json:"success" example:"false"`
	Error   struct {
		Code      string `json:"code" example:"NOT_FOUND"`
		Message   string `json:"message" example:"Resource not found"`
		RequestID string `json:"request_id,omitempty" example:"a1b2c3d4"`
	} `json:"error"`
}
