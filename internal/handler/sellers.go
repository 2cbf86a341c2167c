package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/landahan-pos/console/internal/sellers"
	"github.com/landahan-pos/console/internal/view"
)

const maxPhotoUpload = 5 << 20

// SellersHandler serves the seller directory fragment and the CRUD
// endpoints behind the seller modals.
type SellersHandler struct {
	views *view.Engine
	now   func() time.Time
}

func NewSellersHandler(views *view.Engine) *SellersHandler {
	return &SellersHandler{views: views, now: time.Now}
}

func (h *SellersHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sellers", h.Page)
	r.Get("/sellers/{id}", h.Get)
	r.Post("/sellers", h.Create)
	r.Put("/sellers/{id}", h.Update)
	r.Delete("/sellers/{id}", h.Delete)
}

func (h *SellersHandler) Page(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	if !st.Sellers.Loaded() {
		_ = st.Sellers.Load(r.Context())
	}

	q := sellers.Query{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		SortBy: r.URL.Query().Get("sort"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		q.Page = page
	}

	grid := view.NewSellerGrid(st.Sellers.List(q), h.now())
	if err := h.views.Render(w, "sellers", grid); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
	}
}

func (h *SellersHandler) Get(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	id, ok := sellerID(w, r)
	if !ok {
		return
	}

	seller, found := st.Sellers.Get(id)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "seller not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"seller": seller,
		"status": seller.Status(h.now()),
	})
}

func (h *SellersHandler) Create(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	var in sellers.Input
	if !decodeJSON(w, r, &in) {
		return
	}

	if err := st.Sellers.Create(r.Context(), in); err != nil {
		upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Success: true, Message: "Seller added successfully!"})
}

// Update accepts either a JSON body or a multipart form. The multipart
// variant carries the same fields plus an optional photo file, matching
// the edit modal's submit.
func (h *SellersHandler) Update(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	id, ok := sellerID(w, r)
	if !ok {
		return
	}

	var (
		in        sellers.Input
		photoName string
		photo     io.Reader
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxPhotoUpload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form data"})
			return
		}
		in = sellers.Input{
			Name:    r.FormValue("name"),
			Email:   r.FormValue("email"),
			Phone:   r.FormValue("phone"),
			Address: r.FormValue("address"),
		}
		if err := validate.Struct(in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid seller details"})
			return
		}
		file, header, err := r.FormFile("photo")
		switch err {
		case nil:
			defer file.Close()
			photoName = header.Filename
			photo = file
		case http.ErrMissingFile:
			// photo stays optional
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid photo upload"})
			return
		}
	} else if !decodeJSON(w, r, &in) {
		return
	}

	if err := st.Sellers.Update(r.Context(), id, in, photoName, photo); err != nil {
		upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Seller updated successfully!"})
}

func (h *SellersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	id, ok := sellerID(w, r)
	if !ok {
		return
	}

	if err := st.Sellers.Delete(r.Context(), id); err != nil {
		upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Seller deleted successfully."})
}

func sellerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid seller ID"})
		return 0, false
	}
	return id, true
}
