package models

// APIResponse is the envelope for every API response
type APIResponse struct {
	Status  string      `json:"status"`            // "success" or "error"
	Code    int         `json:"code"`              // HTTP status code
	Message string      `json:"message,omitempty"` // Human-readable message
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"` // Set for list responses
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds detailed error information
type APIError struct {
	Type    string `json:"type,omitempty"` // ValidationError, NotFoundError, ConflictError, DatabaseError
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}

// SuccessResponse builds a success envelope.
func SuccessResponse(code int, message string, data interface{}) APIResponse {
	return APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// ListResponse builds a success envelope carrying an item count.
func ListResponse(code int, message string, data interface{}, count int) APIResponse {
	resp := SuccessResponse(code, message, data)
	resp.Count = &count
	return resp
}

// ErrorResponse builds an error envelope.
func ErrorResponse(code int, message, errType, details string) APIResponse {
	return APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		Error: &APIError{
			Type:    errType,
			Details: details,
		},
	}
}
