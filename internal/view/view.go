package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/landahan-pos/console/internal/catalog"
	"github.com/landahan-pos/console/internal/forecast"
	"github.com/landahan-pos/console/internal/inventory"
	"github.com/landahan-pos/console/internal/notify"
	"github.com/landahan-pos/console/internal/profit"
	"github.com/landahan-pos/console/internal/sellers"
	"github.com/landahan-pos/console/internal/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

// Engine renders HTML fragments for page containers.
type Engine struct {
	templates *template.Template
}

func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"peso":        Peso,
		"pesoF":       PesoFloat,
		"marginClass": profit.MarginBand,
		"signClass": func(d decimal.Decimal) string {
			if d.IsNegative() {
				return "negative"
			}
			return "positive"
		},
		"formatDate": func(s string) string {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				return s
			}
			return t.Format("Jan 2, 2006")
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named fragment.
func (e *Engine) Render(w http.ResponseWriter, name string, data any) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}

// ── View models ──

// InventoryPage feeds the dashboard fragment.
type InventoryPage struct {
	Metrics  inventory.Metrics
	Alerts   []inventory.Alert
	Products []catalog.Product
	Loaded   bool
}

// WizardView feeds the delivery wizard fragment for the current stage.
type WizardView struct {
	Stage  string
	Draft  inventory.Draft
	Active bool
}

// SellerCard pairs a seller with its derived status badge.
type SellerCard struct {
	sellers.Seller
	Status string
}

// SellerGrid feeds the seller page fragment.
type SellerGrid struct {
	Sellers    []SellerCard
	Pagination shared.Pagination
}

// NewSellerGrid derives the status badges at render time.
func NewSellerGrid(page sellers.Page, now time.Time) SellerGrid {
	grid := SellerGrid{Pagination: page.Pagination}
	for _, s := range page.Sellers {
		grid.Sellers = append(grid.Sellers, SellerCard{Seller: s, Status: s.Status(now)})
	}
	return grid
}

// ProfitPage feeds the profit report fragment.
type ProfitPage struct {
	GroupBy    string
	Filters    profit.Filters
	Report     profit.Report
	Statistics profit.Statistics
	Products   []profit.ProductOption
}

// ForecastPage feeds the forecast fragment.
type ForecastPage struct {
	Chart      forecast.ChartData
	Stats      *forecast.PriceStats
	Forecast   *forecast.ForecastStats
	Suggestion forecast.Suggestion
	Prediction *forecast.DayPrediction
}

// ToastList feeds the toast container fragment.
type ToastList struct {
	Notifications []notify.Notification
}
