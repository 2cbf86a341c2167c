package profit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/landahan-pos/console/internal/enum"
	"github.com/landahan-pos/console/internal/upstream"
	"github.com/shopspring/decimal"
)

// Store defines the report endpoints the profit page consumes.
type Store interface {
	Transactions(ctx context.Context, groupBy string, f Filters) (Report, error)
	Statistics(ctx context.Context, f Filters) (Statistics, error)
	Products(ctx context.Context) ([]ProductOption, error)
}

// API adapts the upstream profit endpoints. Every profit response wraps
// its payload in a success envelope; a false success carries the error
// in message.
type API struct {
	client *upstream.Client
}

func NewAPI(client *upstream.Client) *API {
	return &API{client: client}
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Grouped buckets arrive under different keys depending on the grouping;
// dailyGroup and periodGroup cover the two wire shapes.
type dailyGroup struct {
	Date            string          `json:"date"`
	TotalDeliveries int64           `json:"total_deliveries"`
	TotalQuantity   int64           `json:"total_quantity"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	Margin          decimal.Decimal `json:"margin"`
	Deliveries      []Delivery      `json:"deliveries"`
}

type periodGroup struct {
	WeekLabel       string          `json:"week_label"`
	MonthLabel      string          `json:"month_label"`
	TotalDeliveries int64           `json:"total_deliveries"`
	TotalQuantity   int64           `json:"total_quantity"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	Margin          decimal.Decimal `json:"margin"`
	Transactions    []Delivery      `json:"transactions"`
}

func (a *API) Transactions(ctx context.Context, groupBy string, f Filters) (Report, error) {
	var resp struct {
		envelope
		Data json.RawMessage `json:"data"`
	}

	params := f.Values()
	params.Set("group_by", groupBy)
	if err := a.client.Get(ctx, "/profit/transactions?"+params.Encode(), &resp); err != nil {
		return Report{}, err
	}
	if !resp.Success {
		return Report{}, fmt.Errorf("profit transactions: %s", resp.Message)
	}

	report := Report{GroupBy: groupBy}
	switch groupBy {
	case enum.GroupByRaw:
		if err := json.Unmarshal(resp.Data, &report.Raw); err != nil {
			return Report{}, fmt.Errorf("decode raw report: %w", err)
		}
	case enum.GroupByDaily:
		var days []dailyGroup
		if err := json.Unmarshal(resp.Data, &days); err != nil {
			return Report{}, fmt.Errorf("decode daily report: %w", err)
		}
		for _, d := range days {
			report.Groups = append(report.Groups, Group{
				Label:           d.Date,
				TotalDeliveries: d.TotalDeliveries,
				TotalQuantity:   d.TotalQuantity,
				TotalSales:      d.TotalSales,
				TotalProfit:     d.TotalProfit,
				Margin:          d.Margin,
				Deliveries:      d.Deliveries,
			})
		}
	case enum.GroupByWeekly, enum.GroupByMonthly:
		var periods []periodGroup
		if err := json.Unmarshal(resp.Data, &periods); err != nil {
			return Report{}, fmt.Errorf("decode %s report: %w", groupBy, err)
		}
		for _, p := range periods {
			label := p.WeekLabel
			if groupBy == enum.GroupByMonthly {
				label = p.MonthLabel
			}
			report.Groups = append(report.Groups, Group{
				Label:           label,
				TotalDeliveries: p.TotalDeliveries,
				TotalQuantity:   p.TotalQuantity,
				TotalSales:      p.TotalSales,
				TotalProfit:     p.TotalProfit,
				Margin:          p.Margin,
				Deliveries:      p.Transactions,
			})
		}
	default:
		return Report{}, fmt.Errorf("unknown grouping %q", groupBy)
	}
	return report, nil
}

func (a *API) Statistics(ctx context.Context, f Filters) (Statistics, error) {
	var resp struct {
		envelope
		Statistics
	}
	path := "/profit/stats"
	if params := f.Values(); len(params) > 0 {
		path += "?" + params.Encode()
	}
	if err := a.client.Get(ctx, path, &resp); err != nil {
		return Statistics{}, err
	}
	if !resp.Success {
		return Statistics{}, fmt.Errorf("profit stats: %s", resp.Message)
	}
	return resp.Statistics, nil
}

func (a *API) Products(ctx context.Context) ([]ProductOption, error) {
	var resp struct {
		envelope
		Products []ProductOption `json:"products"`
	}
	if err := a.client.Get(ctx, "/profit/products", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("profit products: %s", resp.Message)
	}
	return resp.Products, nil
}
