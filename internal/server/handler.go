// Package server is the HTTP boundary in front of the checkout service.
// Any error escaping the service is translated here: conflicts to 409,
// everything else to a generic 500.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/acmeshop/checkout/internal/checkout"
	"github.com/acmeshop/checkout/internal/domain"
)

type checkoutService interface {
	Checkout(ctx context.Context, ownerID string, address domain.Address) (checkout.Result, error)
}

type Handler struct {
	service checkoutService
	logger  *slog.Logger
}

func New(service checkoutService, logger *slog.Logger) (*Handler, error) {
	if service == nil {
		return nil, fmt.Errorf("service is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{service: service, logger: logger}, nil
}

type checkoutRequest struct {
	BuyerID string         `json:"buyerId"`
	Address addressRequest `json:"shipToAddress"`
}

type addressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

// HandleCheckout runs one checkout invocation and maps the outcome to a
// redirect: the basket view when the basket was empty, the order confirmation
// view on success.
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			StatusCode: http.StatusMethodNotAllowed,
			Message:    "method not allowed",
		})
		return
	}

	var req checkoutRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "invalid JSON",
		})
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "invalid JSON",
		})
		return
	}
	if req.BuyerID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "buyerId is required",
		})
		return
	}

	result, err := h.service.Checkout(r.Context(), req.BuyerID, domain.Address{
		Street:     req.Address.Street,
		City:       req.Address.City,
		State:      req.Address.State,
		Country:    req.Address.Country,
		PostalCode: req.Address.PostalCode,
	})
	if err != nil {
		h.logger.Error("checkout failed", "buyer_id", req.BuyerID, "error", err)
		writeError(w, err)
		return
	}

	switch result.Outcome {
	case checkout.OutcomeEmptyBasket:
		http.Redirect(w, r, "/basket", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/order/"+result.OrderID.String(), http.StatusSeeOther)
	}
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
