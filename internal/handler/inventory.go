package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/landahan-pos/console/internal/inventory"
	"github.com/landahan-pos/console/internal/session"
	"github.com/landahan-pos/console/internal/view"
)

// InventoryHandler serves the dashboard fragment and drives the delivery
// wizard. Wizard endpoints respond with the wizard fragment for the new
// stage so the page swaps it in directly.
type InventoryHandler struct {
	views *view.Engine
}

func NewInventoryHandler(views *view.Engine) *InventoryHandler {
	return &InventoryHandler{views: views}
}

func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/inventory", h.Page)
	r.Post("/inventory/refresh", h.Refresh)
	r.Post("/inventory/husk", h.Husk)
	r.Post("/inventory/delivery/start", h.StartDelivery)
	r.Post("/inventory/delivery/confirm", h.ConfirmDelivery)
	r.Get("/inventory/delivery/preview", h.ProfitPreview)
	r.Post("/inventory/delivery/profit", h.EnterProfit)
	r.Post("/inventory/delivery/rejects", h.SubmitRejects)
	r.Post("/inventory/delivery/cancel", h.CancelDelivery)
	r.Get("/inventory/delivery/state", h.WizardState)
}

type productRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type earnedRequest struct {
	TotalEarned decimal.Decimal `json:"total_earned"`
}

type rejectsRequest struct {
	RejectQuantity int64 `json:"reject_quantity" validate:"gte=0"`
}

func (h *InventoryHandler) Page(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	if !st.Inventory.Loaded() {
		// A failed load still renders; the toast carries the error.
		_ = st.Inventory.Load(r.Context())
	}
	h.renderPage(w, st)
}

func (h *InventoryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	if err := st.Inventory.Load(r.Context()); err != nil {
		upstreamError(w, err)
		return
	}
	h.renderPage(w, st)
}

func (h *InventoryHandler) Husk(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := st.Inventory.Husk(r.Context(), req.ProductID); err != nil {
		wizardError(w, err)
		return
	}
	h.renderPage(w, st)
}

func (h *InventoryHandler) StartDelivery(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := st.Inventory.StartDelivery(req.ProductID); err != nil {
		wizardError(w, err)
		return
	}
	h.renderWizard(w, st)
}

func (h *InventoryHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	if err := st.Inventory.ConfirmDelivery(); err != nil {
		wizardError(w, err)
		return
	}
	h.renderWizard(w, st)
}

func (h *InventoryHandler) ProfitPreview(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	earned, err := decimal.NewFromString(r.URL.Query().Get("total_earned"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid total_earned"})
		return
	}

	profit, err := st.Inventory.ProfitPreview(earned)
	if err != nil {
		wizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"profit": profit.StringFixed(2)})
}

func (h *InventoryHandler) EnterProfit(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	var req earnedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := st.Inventory.EnterProfit(req.TotalEarned); err != nil {
		wizardError(w, err)
		return
	}
	h.renderWizard(w, st)
}

func (h *InventoryHandler) SubmitRejects(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	var req rejectsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := st.Inventory.SubmitRejects(r.Context(), req.RejectQuantity); err != nil {
		wizardError(w, err)
		return
	}
	// Wizard is back to idle on success; serve the refreshed dashboard.
	h.renderPage(w, st)
}

func (h *InventoryHandler) CancelDelivery(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	if err := st.Inventory.CancelDelivery(); err != nil {
		wizardError(w, err)
		return
	}
	h.renderWizard(w, st)
}

func (h *InventoryHandler) WizardState(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}
	h.renderWizard(w, st)
}

func (h *InventoryHandler) renderPage(w http.ResponseWriter, st *session.State) {
	page := view.InventoryPage{
		Metrics:  st.Inventory.Metrics(),
		Alerts:   st.Inventory.Alerts(),
		Products: st.Inventory.Products(),
		Loaded:   st.Inventory.Loaded(),
	}
	if err := h.views.Render(w, "inventory", page); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
	}
}

func (h *InventoryHandler) renderWizard(w http.ResponseWriter, st *session.State) {
	stage, draft, active := st.Inventory.WizardState()
	wv := view.WizardView{Stage: stage.String(), Draft: draft, Active: active}
	if err := h.views.Render(w, "wizard", wv); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
	}
}

// wizardError picks the response status for a wizard or stock failure.
// Ordering violations are conflicts; bad input is a bad request; anything
// else came from the backend.
func wizardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inventory.ErrWizardBusy), errors.Is(err, inventory.ErrBadTransition):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, inventory.ErrUnknownProduct):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, inventory.ErrNotDeliverable),
		errors.Is(err, inventory.ErrNotHuskable),
		errors.Is(err, inventory.ErrNoStock),
		errors.Is(err, inventory.ErrNegativeAmount):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		upstreamError(w, err)
	}
}
