package handler_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/landahan-pos/console/internal/enum"
	"github.com/landahan-pos/console/internal/handler"
	"github.com/landahan-pos/console/internal/notify"
	"github.com/landahan-pos/console/internal/profit"
	"github.com/landahan-pos/console/internal/session"
)

type mockProfitStore struct {
	lastGroupBy string
	lastFilters profit.Filters
	statFilters profit.Filters
}

func (m *mockProfitStore) Transactions(ctx context.Context, groupBy string, f profit.Filters) (profit.Report, error) {
	m.lastGroupBy = groupBy
	m.lastFilters = f
	d, _ := decimal.NewFromString("37.5")
	return profit.Report{
		GroupBy: groupBy,
		Groups: []profit.Group{
			{
				Label:           "2026-08-20",
				TotalDeliveries: 1,
				TotalQuantity:   100,
				TotalSales:      decimal.NewFromInt(800),
				TotalProfit:     decimal.NewFromInt(300),
				Margin:          d,
				Deliveries: []profit.Delivery{
					{
						Date:            "2026-08-20",
						Time:            "09:15",
						ProductName:     enum.ProductHuskedCoconut,
						Quantity:        100,
						SellingPrice:    decimal.NewFromInt(800),
						CostOfGoodsSold: decimal.NewFromInt(500),
						Profit:          decimal.NewFromInt(300),
						Margin:          d,
					},
				},
			},
		},
	}, nil
}

func (m *mockProfitStore) Statistics(ctx context.Context, f profit.Filters) (profit.Statistics, error) {
	m.statFilters = f
	return profit.Statistics{
		Stats: profit.Stats{
			TotalSales:  decimal.NewFromInt(800),
			TotalProfit: decimal.NewFromInt(300),
		},
	}, nil
}

func (m *mockProfitStore) Products(ctx context.Context) ([]profit.ProductOption, error) {
	return []profit.ProductOption{{ID: 1, Name: enum.ProductHuskedCoconut}}, nil
}

func profitState(store profit.Store) *session.State {
	return &session.State{
		Profit:   profit.NewReporter(store, notify.NewCenter(nil), time.Now()),
		Notifier: notify.NewCenter(nil),
	}
}

func TestProfitPage(t *testing.T) {
	store := &mockProfitStore{}
	st := profitState(store)
	h := handler.NewProfitHandler(newViews(t))

	rr := serve(t, h, st, "GET", "/profit", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "transaction-group") {
		t.Errorf("page missing grouped transactions:\n%s", body)
	}
	if store.lastGroupBy != enum.GroupByDaily {
		t.Errorf("default grouping: got %q, want daily", store.lastGroupBy)
	}
}

func TestProfitPageGroupByParam(t *testing.T) {
	store := &mockProfitStore{}
	st := profitState(store)
	h := handler.NewProfitHandler(newViews(t))

	rr := serve(t, h, st, "GET", "/profit?group_by=weekly", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}
	if store.lastGroupBy != enum.GroupByWeekly {
		t.Errorf("grouping: got %q, want weekly", store.lastGroupBy)
	}
}

func TestProfitPageRejectsBadGrouping(t *testing.T) {
	store := &mockProfitStore{}
	st := profitState(store)
	h := handler.NewProfitHandler(newViews(t))

	rr := serve(t, h, st, "GET", "/profit?group_by=hourly", nil)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestProfitPageFilters(t *testing.T) {
	store := &mockProfitStore{}
	st := profitState(store)
	h := handler.NewProfitHandler(newViews(t))

	rr := serve(t, h, st, "GET", "/profit?start_date=2026-08-01&end_date=2026-08-31&product_id=1", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}
	if store.lastFilters.StartDate != "2026-08-01" || store.lastFilters.ProductID != 1 {
		t.Errorf("filters: got %+v", store.lastFilters)
	}
	// The statistics endpoint never receives the product filter.
	if store.statFilters.ProductID != 0 {
		t.Errorf("stats should not carry product_id, got %d", store.statFilters.ProductID)
	}
}

func TestProfitChart(t *testing.T) {
	store := &mockProfitStore{}
	st := profitState(store)
	h := handler.NewProfitHandler(newViews(t))

	rr := serve(t, h, st, "GET", "/profit/chart", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, "#16a34a") {
		t.Errorf("chart missing profit color:\n%s", body)
	}
}

func TestProfitExport(t *testing.T) {
	store := &mockProfitStore{}
	st := profitState(store)
	h := handler.NewProfitHandler(newViews(t))

	rr := serve(t, h, st, "GET", "/profit/export", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type: got %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "profit_report_") {
		t.Errorf("Content-Disposition: got %q", cd)
	}
	body := rr.Body.String()
	if !strings.HasPrefix(body, "Date,Time,Product,Quantity,Sales,COGS,Profit,Margin") {
		t.Errorf("CSV header wrong:\n%s", body)
	}
	if !strings.Contains(body, "2026-08-20,09:15,Husked Coconut,100,800.00,500.00,300.00,37.5%") {
		t.Errorf("CSV row wrong:\n%s", body)
	}
}

func TestProfitProducts(t *testing.T) {
	store := &mockProfitStore{}
	st := profitState(store)
	h := handler.NewProfitHandler(newViews(t))

	rr := serve(t, h, st, "GET", "/profit/products", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Husked Coconut") {
		t.Errorf("products missing:\n%s", rr.Body.String())
	}
}
