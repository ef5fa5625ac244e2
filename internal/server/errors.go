package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/acmeshop/checkout/internal/domain"
)

// errorResponse is the body emitted by the fault boundary.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func httpStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, domain.ErrConflict) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		StatusCode: status,
		Message:    err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
