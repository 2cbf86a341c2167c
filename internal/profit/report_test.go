package profit_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/landahan-pos/console/internal/notify"
	"github.com/landahan-pos/console/internal/profit"
	"github.com/landahan-pos/console/internal/upstream"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestMarginBand(t *testing.T) {
	cases := []struct {
		margin string
		want   string
	}{
		{"45", "margin-high"},
		{"30", "margin-high"},
		{"29.99", "margin-medium"},
		{"15", "margin-medium"},
		{"14.5", "margin-low"},
		{"0", "margin-low"},
		{"-3", "margin-negative"},
	}
	for _, tc := range cases {
		if got := profit.MarginBand(dec(tc.margin)); got != tc.want {
			t.Errorf("MarginBand(%s) = %q, want %q", tc.margin, got, tc.want)
		}
	}
}

func TestDefaultFiltersCoverThirtyDays(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	f := profit.DefaultFilters(now)
	if f.StartDate != "2026-08-02" || f.EndDate != "2026-09-01" {
		t.Errorf("range = %s..%s", f.StartDate, f.EndDate)
	}
}

func TestFiltersValuesOmitUnset(t *testing.T) {
	v := profit.Filters{StartDate: "2026-08-01"}.Values()
	if v.Get("start_date") != "2026-08-01" {
		t.Errorf("start_date = %q", v.Get("start_date"))
	}
	if _, ok := v["end_date"]; ok {
		t.Error("empty end_date sent")
	}
	if _, ok := v["product_id"]; ok {
		t.Error("zero product_id sent")
	}
}

func sampleRawReport() profit.Report {
	return profit.Report{
		GroupBy: "raw",
		Raw: []profit.Delivery{
			{Date: "2026-08-20", Time: "09:15", ProductName: "Husked Coconut", Quantity: 100,
				SellingPrice: dec("800"), CostOfGoodsSold: dec("500"), Profit: dec("300"), Margin: dec("37.5")},
			{Date: "2026-08-21", Time: "14:40", ProductName: "Copra", Quantity: 40,
				SellingPrice: dec("400"), CostOfGoodsSold: dec("450"), Profit: dec("-50"), Margin: dec("-12.5")},
		},
	}
}

func sampleDailyReport() profit.Report {
	return profit.Report{
		GroupBy: "daily",
		Groups: []profit.Group{
			{Label: "2026-08-20", TotalDeliveries: 2, TotalQuantity: 140,
				TotalSales: dec("1200"), TotalProfit: dec("250"), Margin: dec("20.83"),
				Deliveries: sampleRawReport().Raw},
		},
	}
}

func TestChartSeriesColorsBySign(t *testing.T) {
	s := sampleRawReport().ChartSeries()
	if len(s.Values) != 2 {
		t.Fatalf("points = %d, want 2", len(s.Values))
	}
	if s.PointColors[0] != "#16a34a" || s.PointColors[1] != "#dc2626" {
		t.Errorf("point colors = %v", s.PointColors)
	}
	// One of two points is positive; majority rule keeps the line green.
	if s.LineColor != "#16a34a" {
		t.Errorf("line color = %q", s.LineColor)
	}
	if s.Labels[0] != "2026-08-20 09:15" {
		t.Errorf("label = %q", s.Labels[0])
	}
}

func TestChartSeriesMajorityLossTurnsLineRed(t *testing.T) {
	r := profit.Report{
		GroupBy: "daily",
		Groups: []profit.Group{
			{Label: "d1", TotalProfit: dec("-10")},
			{Label: "d2", TotalProfit: dec("-20")},
			{Label: "d3", TotalProfit: dec("5")},
		},
	}
	if s := r.ChartSeries(); s.LineColor != "#dc2626" {
		t.Errorf("line color = %q, want loss red", s.LineColor)
	}
}

func TestWriteCSVFlattensGroups(t *testing.T) {
	var buf bytes.Buffer
	if err := profit.WriteCSV(&buf, sampleDailyReport()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Date,Time,Product,Quantity,Sales,COGS,Profit,Margin" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2026-08-20,09:15,Husked Coconut,100,800.00,500.00,300.00,37.5%" {
		t.Errorf("row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "-50.00") {
		t.Errorf("loss row = %q", lines[2])
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC)
	if got := profit.ExportFilename(now); got != "profit_report_2026-09-01.csv" {
		t.Errorf("filename = %q", got)
	}
}

// --- Reporter ---

type mockStore struct {
	report profit.Report
	stats  profit.Statistics

	txErr    error
	statsErr error

	txGroupBy  []string
	txFilters  []profit.Filters
	statsCalls []profit.Filters
}

func (m *mockStore) Transactions(_ context.Context, groupBy string, f profit.Filters) (profit.Report, error) {
	m.txGroupBy = append(m.txGroupBy, groupBy)
	m.txFilters = append(m.txFilters, f)
	if m.txErr != nil {
		return profit.Report{}, m.txErr
	}
	return m.report, nil
}

func (m *mockStore) Statistics(_ context.Context, f profit.Filters) (profit.Statistics, error) {
	m.statsCalls = append(m.statsCalls, f)
	if m.statsErr != nil {
		return profit.Statistics{}, m.statsErr
	}
	return m.stats, nil
}

func (m *mockStore) Products(_ context.Context) ([]profit.ProductOption, error) {
	return []profit.ProductOption{{ID: 1, Name: "Husked Coconut"}}, nil
}

func TestReporterDefaultsToDailyLastThirtyDays(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	store := &mockStore{report: sampleDailyReport()}
	r := profit.NewReporter(store, notify.NewCenter(nil), now)

	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.txGroupBy[0] != "daily" {
		t.Errorf("group_by = %q", store.txGroupBy[0])
	}
	if store.txFilters[0].StartDate != "2026-08-02" {
		t.Errorf("start = %q", store.txFilters[0].StartDate)
	}
}

func TestReporterStatsIgnoreProductFilter(t *testing.T) {
	now := time.Now()
	store := &mockStore{report: sampleRawReport()}
	r := profit.NewReporter(store, notify.NewCenter(nil), now)

	err := r.SetFilters(context.Background(), profit.Filters{StartDate: "2026-08-01", EndDate: "2026-08-31", ProductID: 3})
	if err != nil {
		t.Fatalf("set filters: %v", err)
	}
	if store.txFilters[0].ProductID != 3 {
		t.Errorf("transactions product_id = %d", store.txFilters[0].ProductID)
	}
	if store.statsCalls[0].ProductID != 0 {
		t.Errorf("stats received product_id = %d", store.statsCalls[0].ProductID)
	}
	if store.statsCalls[0].StartDate != "2026-08-01" {
		t.Errorf("stats start = %q", store.statsCalls[0].StartDate)
	}
}

func TestReporterRejectsUnknownGrouping(t *testing.T) {
	store := &mockStore{}
	r := profit.NewReporter(store, notify.NewCenter(nil), time.Now())

	if err := r.SetGroupBy(context.Background(), "hourly"); err == nil {
		t.Fatal("expected error")
	}
	if len(store.txGroupBy) != 0 {
		t.Errorf("network call made for invalid grouping")
	}
}

func TestReporterFailedLoadKeepsPreviousReport(t *testing.T) {
	store := &mockStore{report: sampleDailyReport()}
	center := notify.NewCenter(nil)
	r := profit.NewReporter(store, center, time.Now())
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	store.txErr = &upstream.Error{Status: 500, Message: "boom"}
	if err := r.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}

	_, _, report, _ := r.State()
	if report.Empty() {
		t.Error("previous report lost after failed reload")
	}
	found := false
	for _, n := range center.Active() {
		if n.Kind == "error" && n.Message == "Failed to load data: boom" {
			found = true
		}
	}
	if !found {
		t.Errorf("error toast missing: %+v", center.Active())
	}
}
