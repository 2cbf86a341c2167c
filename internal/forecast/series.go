package forecast

import (
	"errors"
	"fmt"
)

// Forecast horizon limits enforced before any upstream call.
const (
	MinForecastDays = 7
	MaxForecastDays = 90
	MinSpecificDay  = 1
	MaxSpecificDay  = 90
)

var (
	ErrBadHorizon = fmt.Errorf("forecast days must be between %d and %d", MinForecastDays, MaxForecastDays)
	ErrBadDay     = fmt.Errorf("day must be between %d and %d", MinSpecificDay, MaxSpecificDay)
	ErrBadParams  = errors.New("ARIMA orders must be non-negative integers")
	ErrNoPrices   = errors.New("no price data available")
)

// Params is an ARIMA(p,d,q) order.
type Params struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`
}

// DefaultParams is the fallback order when parameter optimization is
// unavailable.
var DefaultParams = Params{P: 1, D: 1, Q: 1}

func (p Params) Validate() error {
	if p.P < 0 || p.D < 0 || p.Q < 0 {
		return ErrBadParams
	}
	return nil
}

func (p Params) Order() string {
	return fmt.Sprintf("ARIMA(%d,%d,%d)", p.P, p.D, p.Q)
}

// ValidateHorizon checks a forecast length against the allowed window.
func ValidateHorizon(days int) error {
	if days < MinForecastDays || days > MaxForecastDays {
		return ErrBadHorizon
	}
	return nil
}

// ValidateDay checks a single-day prediction offset.
func ValidateDay(day int) error {
	if day < MinSpecificDay || day > MaxSpecificDay {
		return ErrBadDay
	}
	return nil
}

// Series is one dated price sequence as the forecast backend returns it.
type Series struct {
	Dates  []string  `json:"dates"`
	Prices []float64 `json:"prices"`
}

// Band is the forecast with its confidence interval.
type Band struct {
	Dates      []string  `json:"dates"`
	Prices     []float64 `json:"prices"`
	LowerBound []float64 `json:"lower_bound"`
	UpperBound []float64 `json:"upper_bound"`
}

// ModelInfo describes the fitted model.
type ModelInfo struct {
	Order string  `json:"order"`
	AIC   float64 `json:"aic"`
	BIC   float64 `json:"bic"`
}

// Result is a full forecast response.
type Result struct {
	Historical Series    `json:"historical"`
	Forecast   Band      `json:"forecast"`
	ModelInfo  ModelInfo `json:"model_info"`
}

// Suggestion is the optimizer's recommended order. AIC and BIC are nil
// when the backend could not score the fit; Warning carries its caveat.
type Suggestion struct {
	Params  Params   `json:"params"`
	AIC     *float64 `json:"aic,omitempty"`
	BIC     *float64 `json:"bic,omitempty"`
	Warning string   `json:"warning,omitempty"`
}

// PriceStats summarizes a historical series.
type PriceStats struct {
	Current float64 `json:"current"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Summarize computes the stat cards for a price series.
func Summarize(s Series) (PriceStats, error) {
	if len(s.Prices) == 0 {
		return PriceStats{}, ErrNoPrices
	}
	stats := PriceStats{
		Current: s.Prices[len(s.Prices)-1],
		Min:     s.Prices[0],
		Max:     s.Prices[0],
	}
	sum := 0.0
	for _, p := range s.Prices {
		sum += p
		if p < stats.Min {
			stats.Min = p
		}
		if p > stats.Max {
			stats.Max = p
		}
	}
	stats.Average = sum / float64(len(s.Prices))
	return stats, nil
}

// ForecastStats summarizes a forecast relative to the last known price.
type ForecastStats struct {
	Current       float64   `json:"current"`
	Average       float64   `json:"average"`
	End           float64   `json:"end"`
	PercentChange float64   `json:"percent_change"`
	Model         ModelInfo `json:"model"`
}

// SummarizeForecast computes the forecast stat cards. PercentChange is
// the end-of-horizon move from the current price.
func SummarizeForecast(r Result) (ForecastStats, error) {
	if len(r.Historical.Prices) == 0 || len(r.Forecast.Prices) == 0 {
		return ForecastStats{}, ErrNoPrices
	}

	current := r.Historical.Prices[len(r.Historical.Prices)-1]
	end := r.Forecast.Prices[len(r.Forecast.Prices)-1]
	sum := 0.0
	for _, p := range r.Forecast.Prices {
		sum += p
	}

	stats := ForecastStats{
		Current: current,
		Average: sum / float64(len(r.Forecast.Prices)),
		End:     end,
		Model:   r.ModelInfo,
	}
	if current != 0 {
		stats.PercentChange = (end - current) / current * 100
	}
	return stats, nil
}

// DayPrediction is the predicted price for one specific future day.
type DayPrediction struct {
	Day   int     `json:"day"`
	Date  string  `json:"date"`
	Price float64 `json:"price"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// PredictDay picks the requested day out of a forecast horizon. Day 1 is
// the first forecast point.
func PredictDay(r Result, day int) (DayPrediction, error) {
	if err := ValidateDay(day); err != nil {
		return DayPrediction{}, err
	}
	idx := day - 1
	if idx >= len(r.Forecast.Prices) || idx >= len(r.Forecast.Dates) ||
		idx >= len(r.Forecast.LowerBound) || idx >= len(r.Forecast.UpperBound) {
		return DayPrediction{}, fmt.Errorf("forecast horizon shorter than day %d", day)
	}
	return DayPrediction{
		Day:   day,
		Date:  r.Forecast.Dates[idx],
		Price: r.Forecast.Prices[idx],
		Lower: r.Forecast.LowerBound[idx],
		Upper: r.Forecast.UpperBound[idx],
	}, nil
}

// ChartData is the line chart payload: one shared label axis, the
// historical line, and forecast/bound lines padded with nulls over the
// historical period so they start where history ends.
type ChartData struct {
	Title      string     `json:"title"`
	Labels     []string   `json:"labels"`
	Historical []float64  `json:"historical"`
	Forecast   []*float64 `json:"forecast,omitempty"`
	LowerBound []*float64 `json:"lower_bound,omitempty"`
	UpperBound []*float64 `json:"upper_bound,omitempty"`
}

// HistoryChart builds the chart for historical prices only.
func HistoryChart(s Series) ChartData {
	return ChartData{
		Title:      "Historical Husked Coconut Prices",
		Labels:     append([]string(nil), s.Dates...),
		Historical: append([]float64(nil), s.Prices...),
	}
}

// ForecastChart builds the combined historical-plus-forecast chart.
func ForecastChart(r Result, title string) ChartData {
	c := ChartData{
		Title:      title,
		Labels:     append(append([]string(nil), r.Historical.Dates...), r.Forecast.Dates...),
		Historical: append([]float64(nil), r.Historical.Prices...),
	}
	pad := len(r.Historical.Prices)
	c.Forecast = padSeries(pad, r.Forecast.Prices)
	c.LowerBound = padSeries(pad, r.Forecast.LowerBound)
	c.UpperBound = padSeries(pad, r.Forecast.UpperBound)
	return c
}

func padSeries(pad int, values []float64) []*float64 {
	out := make([]*float64, pad, pad+len(values))
	for i := range values {
		v := values[i]
		out = append(out, &v)
	}
	return out
}
