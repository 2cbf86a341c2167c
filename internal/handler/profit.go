package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/landahan-pos/console/internal/profit"
	"github.com/landahan-pos/console/internal/view"
)

// ProfitHandler serves the profit report fragment, the chart series and
// the CSV export.
type ProfitHandler struct {
	views *view.Engine
	now   func() time.Time
}

func NewProfitHandler(views *view.Engine) *ProfitHandler {
	return &ProfitHandler{views: views, now: time.Now}
}

func (h *ProfitHandler) RegisterRoutes(r chi.Router) {
	r.Get("/profit", h.Page)
	r.Get("/profit/chart", h.Chart)
	r.Get("/profit/export", h.Export)
	r.Get("/profit/products", h.Products)
}

// Page renders the report. Query parameters adjust the reporter before
// rendering: group_by switches the grouping, the date and product
// parameters replace the filters, and clear=1 resets to the default
// 30-day window.
func (h *ProfitHandler) Page(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	q := r.URL.Query()

	if q.Get("clear") == "1" {
		if err := st.Profit.ClearFilters(r.Context()); err != nil {
			upstreamError(w, err)
			return
		}
	} else if q.Has("start_date") || q.Has("end_date") || q.Has("product_id") {
		_, current, _, _ := st.Profit.State()
		f := profit.Filters{
			StartDate: q.Get("start_date"),
			EndDate:   q.Get("end_date"),
			ProductID: current.ProductID,
		}
		if raw := q.Get("product_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product_id"})
				return
			}
			f.ProductID = id
		} else if q.Has("product_id") {
			f.ProductID = 0
		}
		if err := st.Profit.SetFilters(r.Context(), f); err != nil {
			upstreamError(w, err)
			return
		}
	}

	if gb := q.Get("group_by"); gb != "" {
		if err := st.Profit.SetGroupBy(r.Context(), gb); err != nil {
			if errors.Is(err, profit.ErrBadGroupBy) {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			upstreamError(w, err)
			return
		}
	} else if !st.Profit.Loaded() {
		if err := st.Profit.Load(r.Context()); err != nil {
			upstreamError(w, err)
			return
		}
	}

	if len(st.Profit.Products()) == 0 {
		_ = st.Profit.LoadProducts(r.Context())
	}

	groupBy, filters, report, stats := st.Profit.State()
	page := view.ProfitPage{
		GroupBy:    groupBy,
		Filters:    filters,
		Report:     report,
		Statistics: stats,
		Products:   st.Profit.Products(),
	}
	if err := h.views.Render(w, "profit", page); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
	}
}

func (h *ProfitHandler) Chart(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	if !st.Profit.Loaded() {
		if err := st.Profit.Load(r.Context()); err != nil {
			upstreamError(w, err)
			return
		}
	}

	_, _, report, _ := st.Profit.State()
	writeJSON(w, http.StatusOK, report.ChartSeries())
}

func (h *ProfitHandler) Export(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	if !st.Profit.Loaded() {
		if err := st.Profit.Load(r.Context()); err != nil {
			upstreamError(w, err)
			return
		}
	}

	_, _, report, _ := st.Profit.State()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+profit.ExportFilename(h.now())+`"`)
	if err := profit.WriteCSV(w, report); err != nil {
		// Headers are gone; nothing left to do but log via the server.
		return
	}
}

func (h *ProfitHandler) Products(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	if len(st.Profit.Products()) == 0 {
		if err := st.Profit.LoadProducts(r.Context()); err != nil {
			upstreamError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": st.Profit.Products()})
}
