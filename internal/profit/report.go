package profit

import (
	"net/url"
	"strconv"
	"time"

	"github.com/landahan-pos/console/internal/enum"
	"github.com/shopspring/decimal"
)

// Margin color bands for the stats card and table cells.
const (
	MarginHigh     = "margin-high"
	MarginMedium   = "margin-medium"
	MarginLow      = "margin-low"
	MarginNegative = "margin-negative"
)

var (
	marginHighCutoff   = decimal.NewFromInt(30)
	marginMediumCutoff = decimal.NewFromInt(15)
)

// MarginBand classifies a profit margin percentage.
func MarginBand(margin decimal.Decimal) string {
	switch {
	case margin.GreaterThanOrEqual(marginHighCutoff):
		return MarginHigh
	case margin.GreaterThanOrEqual(marginMediumCutoff):
		return MarginMedium
	case margin.GreaterThanOrEqual(decimal.Zero):
		return MarginLow
	default:
		return MarginNegative
	}
}

// Filters narrow the report. Dates are inclusive YYYY-MM-DD strings,
// matching the upstream query contract; empty means unbounded.
type Filters struct {
	StartDate string
	EndDate   string
	ProductID int64
}

// DefaultFilters covers the trailing 30 days.
func DefaultFilters(now time.Time) Filters {
	return Filters{
		StartDate: now.AddDate(0, 0, -30).Format("2006-01-02"),
		EndDate:   now.Format("2006-01-02"),
	}
}

// Values encodes the filters as upstream query parameters. Unset fields
// are omitted rather than sent empty.
func (f Filters) Values() url.Values {
	v := url.Values{}
	if f.StartDate != "" {
		v.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("end_date", f.EndDate)
	}
	if f.ProductID != 0 {
		v.Set("product_id", strconv.FormatInt(f.ProductID, 10))
	}
	return v
}

// Delivery is one completed delivery row as the report returns it.
type Delivery struct {
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	ProductName     string          `json:"product_name"`
	Quantity        int64           `json:"quantity"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	CostOfGoodsSold decimal.Decimal `json:"cost_of_goods_sold"`
	Profit          decimal.Decimal `json:"profit"`
	Margin          decimal.Decimal `json:"margin"`
}

// Group is one collapsed bucket of deliveries: a day, a week or a month
// depending on the report's grouping.
type Group struct {
	Label           string
	TotalDeliveries int64
	TotalQuantity   int64
	TotalSales      decimal.Decimal
	TotalProfit     decimal.Decimal
	Margin          decimal.Decimal
	Deliveries      []Delivery
}

// Report holds one loaded transactions response. Raw reports carry the
// flat delivery list; grouped reports carry buckets.
type Report struct {
	GroupBy string
	Raw     []Delivery
	Groups  []Group
}

// Empty reports whether the report has nothing to render.
func (r Report) Empty() bool {
	return len(r.Raw) == 0 && len(r.Groups) == 0
}

// Rows flattens the report back to individual deliveries, in report
// order. Used by the CSV export, which always emits per-delivery rows
// regardless of grouping.
func (r Report) Rows() []Delivery {
	if r.GroupBy == enum.GroupByRaw {
		return r.Raw
	}
	var rows []Delivery
	for _, g := range r.Groups {
		rows = append(rows, g.Deliveries...)
	}
	return rows
}

// Series is the profit line chart data: one label and value per point,
// green points for non-negative profit, red for losses. The line itself
// takes the majority color.
type Series struct {
	Labels      []string          `json:"labels"`
	Values      []decimal.Decimal `json:"values"`
	PointColors []string          `json:"point_colors"`
	LineColor   string            `json:"line_color"`
}

const (
	colorProfit = "#16a34a"
	colorLoss   = "#dc2626"
)

// ChartSeries builds the chart points from the report: per-delivery
// profit for raw reports, per-bucket totals otherwise.
func (r Report) ChartSeries() Series {
	var s Series
	if r.GroupBy == enum.GroupByRaw {
		for _, d := range r.Raw {
			s.Labels = append(s.Labels, d.Date+" "+d.Time)
			s.Values = append(s.Values, d.Profit)
		}
	} else {
		for _, g := range r.Groups {
			s.Labels = append(s.Labels, g.Label)
			s.Values = append(s.Values, g.TotalProfit)
		}
	}

	positive := 0
	for _, v := range s.Values {
		if v.IsNegative() {
			s.PointColors = append(s.PointColors, colorLoss)
		} else {
			s.PointColors = append(s.PointColors, colorProfit)
			positive++
		}
	}

	s.LineColor = colorProfit
	if len(s.Values) > 0 && positive*2 < len(s.Values) {
		s.LineColor = colorLoss
	}
	return s
}

// Stats are the headline numbers for the filtered period.
type Stats struct {
	TotalSales           decimal.Decimal `json:"total_sales"`
	TotalCOGS            decimal.Decimal `json:"total_cogs"`
	TotalProfit          decimal.Decimal `json:"total_profit"`
	ProfitMargin         decimal.Decimal `json:"profit_margin"`
	TotalDeliveries      int64           `json:"total_deliveries"`
	AvgProfitPerDelivery decimal.Decimal `json:"avg_profit_per_delivery"`
}

// Highlight is the best or worst single delivery in the period.
type Highlight struct {
	ProductName string          `json:"product_name"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Profit      decimal.Decimal `json:"profit"`
}

// ProductPerformance is one row of the per-product breakdown table.
type ProductPerformance struct {
	ProductName   string          `json:"product_name"`
	Deliveries    int64           `json:"deliveries"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalCOGS     decimal.Decimal `json:"total_cogs"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	Margin        decimal.Decimal `json:"margin"`
}

// Statistics bundles everything the stats endpoint returns.
type Statistics struct {
	Stats              Stats                `json:"stats"`
	BestDelivery       *Highlight           `json:"best_delivery"`
	WorstDelivery      *Highlight           `json:"worst_delivery"`
	ProductPerformance []ProductPerformance `json:"product_performance"`
}

// ProductOption is one entry of the product filter dropdown.
type ProductOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
