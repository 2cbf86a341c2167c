package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/landahan-pos/console/internal/pos"
)

// POSHandler records coconut purchases from sellers. The total is always
// derived server-side from quantity and price.
type POSHandler struct{}

func NewPOSHandler() *POSHandler {
	return &POSHandler{}
}

func (h *POSHandler) RegisterRoutes(r chi.Router) {
	r.Post("/pos/total", h.Total)
	r.Post("/pos/pay", h.Pay)
}

type totalResponse struct {
	Total string `json:"total"`
}

// Total previews the amount due without recording anything.
func (h *POSHandler) Total(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	var sale pos.Sale
	if !decodeJSON(w, r, &sale) {
		return
	}
	writeJSON(w, http.StatusOK, totalResponse{Total: sale.Total().StringFixed(2)})
}

func (h *POSHandler) Pay(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	var sale pos.Sale
	if !decodeJSON(w, r, &sale) {
		return
	}

	total, err := st.POS.Pay(r.Context(), sale)
	if err != nil {
		switch {
		case errors.Is(err, pos.ErrNoSeller),
			errors.Is(err, pos.ErrBadQuantity),
			errors.Is(err, pos.ErrBadPrice):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			upstreamError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, totalResponse{Total: total.StringFixed(2)})
}
