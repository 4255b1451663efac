package util

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// APIError is a domain error that knows which HTTP status and error name it
// maps to. Anything that is not an *APIError surfaces as a 500.
type APIError struct {
	Name    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func ValidationError(message string) *APIError {
	return &APIError{Name: "ValidationError", Status: http.StatusBadRequest, Message: message}
}

func UnauthorizedError(message string) *APIError {
	return &APIError{Name: "UnauthorizedError", Status: http.StatusUnauthorized, Message: message}
}

func ForbiddenError(message string) *APIError {
	return &APIError{Name: "ForbiddenError", Status: http.StatusForbidden, Message: message}
}

func NotFoundError(message string) *APIError {
	return &APIError{Name: "NotFoundError", Status: http.StatusNotFound, Message: message}
}

func ConflictError(message string) *APIError {
	return &APIError{Name: "ConflictError", Status: http.StatusConflict, Message: message}
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: Failed to encode response body: %v", err)
	}
}

func WriteError(w http.ResponseWriter, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		WriteJSON(w, apiErr.Status, ErrorResponse{Success: false, Error: apiErr.Name, Message: apiErr.Message})
		return
	}
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Error: "InternalServerError", Message: "Internal Server Error"})
}
