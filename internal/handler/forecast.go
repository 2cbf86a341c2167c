package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/landahan-pos/console/internal/forecast"
	"github.com/landahan-pos/console/internal/session"
)

// ForecastHandler drives the price chart page. The chart itself is drawn
// client-side, so every endpoint answers with the viewer's full snapshot:
// chart data, stat cards, the suggested order and any day prediction.
type ForecastHandler struct{}

func NewForecastHandler() *ForecastHandler {
	return &ForecastHandler{}
}

func (h *ForecastHandler) RegisterRoutes(r chi.Router) {
	r.Get("/forecast/history", h.History)
	r.Get("/forecast/params", h.Params)
	r.Post("/forecast/generate", h.Generate)
	r.Post("/forecast/auto", h.Auto)
	r.Post("/forecast/day", h.Day)
}

type generateRequest struct {
	ForecastDays int `json:"forecast_days"`
	P            int `json:"p"`
	D            int `json:"d"`
	Q            int `json:"q"`
}

type dayRequest struct {
	Day int `json:"day"`
	P   int `json:"p"`
	D   int `json:"d"`
	Q   int `json:"q"`
}

type forecastSnapshot struct {
	Chart      forecast.ChartData      `json:"chart"`
	Stats      *forecast.PriceStats    `json:"stats,omitempty"`
	Forecast   *forecast.ForecastStats `json:"forecast,omitempty"`
	Suggestion forecast.Suggestion     `json:"suggestion"`
	Prediction *forecast.DayPrediction `json:"prediction,omitempty"`
}

func (h *ForecastHandler) History(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	if err := st.Forecast.LoadHistory(r.Context()); err != nil {
		upstreamError(w, err)
		return
	}
	h.snapshot(w, st)
}

func (h *ForecastHandler) Params(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	// Falls back to ARIMA(1,1,1) with a warning when the optimizer is
	// unavailable, so this never fails the page.
	suggestion := st.Forecast.SuggestParams(r.Context())
	writeJSON(w, http.StatusOK, suggestion)
}

func (h *ForecastHandler) Generate(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p := forecast.Params{P: req.P, D: req.D, Q: req.Q}
	if err := st.Forecast.Generate(r.Context(), req.ForecastDays, p); err != nil {
		forecastError(w, err)
		return
	}
	h.snapshot(w, st)
}

func (h *ForecastHandler) Auto(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	if err := st.Forecast.Auto(r.Context()); err != nil {
		forecastError(w, err)
		return
	}
	h.snapshot(w, st)
}

func (h *ForecastHandler) Day(w http.ResponseWriter, r *http.Request) {
	st := sessionState(w, r)
	if st == nil {
		return
	}

	var req dayRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p := forecast.Params{P: req.P, D: req.D, Q: req.Q}
	if _, err := st.Forecast.Predict(r.Context(), req.Day, p); err != nil {
		forecastError(w, err)
		return
	}
	h.snapshot(w, st)
}

func (h *ForecastHandler) snapshot(w http.ResponseWriter, st *session.State) {
	chart, stats, fc, suggestion, prediction := st.Forecast.State()
	writeJSON(w, http.StatusOK, forecastSnapshot{
		Chart:      chart,
		Stats:      stats,
		Forecast:   fc,
		Suggestion: suggestion,
		Prediction: prediction,
	})
}

func forecastError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, forecast.ErrBadHorizon),
		errors.Is(err, forecast.ErrBadDay),
		errors.Is(err, forecast.ErrBadParams),
		errors.Is(err, forecast.ErrNoPrices):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		upstreamError(w, err)
	}
}
