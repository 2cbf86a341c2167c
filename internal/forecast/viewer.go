package forecast

import (
	"context"
	"fmt"
	"sync"
)

// Viewer owns the forecast page state for one console session: the
// current chart, stats and suggested parameters. Operations replace the
// chart only on success.
type Viewer struct {
	mu         sync.Mutex
	store      Store
	chart      ChartData
	stats      *PriceStats
	forecast   *ForecastStats
	suggestion Suggestion
	prediction *DayPrediction
}

func NewViewer(store Store) *Viewer {
	return &Viewer{store: store, suggestion: Suggestion{Params: DefaultParams}}
}

// LoadHistory fetches the historical price series and resets the page to
// a history-only chart.
func (v *Viewer) LoadHistory(ctx context.Context) error {
	series, err := v.store.HistoricalPrices(ctx)
	if err != nil {
		return err
	}
	stats, err := Summarize(series)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.chart = HistoryChart(series)
	v.stats = &stats
	v.forecast = nil
	v.prediction = nil
	v.mu.Unlock()
	return nil
}

// SuggestParams asks the backend for the optimal ARIMA order. When the
// optimizer is unreachable the viewer falls back to ARIMA(1,1,1) and
// reports no error, so the page stays usable.
func (v *Viewer) SuggestParams(ctx context.Context) Suggestion {
	suggestion, err := v.store.BestParams(ctx)
	if err != nil {
		suggestion = Suggestion{
			Params:  DefaultParams,
			Warning: "Could not optimize parameters. Using defaults.",
		}
	}

	v.mu.Lock()
	v.suggestion = suggestion
	v.mu.Unlock()
	return suggestion
}

// Generate runs a manual forecast over the given horizon. Inputs are
// validated before any network call.
func (v *Viewer) Generate(ctx context.Context, days int, p Params) error {
	if err := ValidateHorizon(days); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	result, err := v.store.Forecast(ctx, days, p)
	if err != nil {
		return err
	}
	return v.applyForecast(result, fmt.Sprintf("Price Forecast - %s", result.ModelInfo.Order), nil)
}

// Auto lets the backend pick the model and horizon.
func (v *Viewer) Auto(ctx context.Context) error {
	result, err := v.store.AutoForecast(ctx)
	if err != nil {
		return err
	}
	return v.applyForecast(result, fmt.Sprintf("Best Model: %s", result.ModelInfo.Order), nil)
}

// Predict forecasts exactly far enough to read off one future day and
// highlights it alongside the full horizon chart.
func (v *Viewer) Predict(ctx context.Context, day int, p Params) (DayPrediction, error) {
	if err := ValidateDay(day); err != nil {
		return DayPrediction{}, err
	}
	if err := p.Validate(); err != nil {
		return DayPrediction{}, err
	}

	result, err := v.store.Forecast(ctx, day, p)
	if err != nil {
		return DayPrediction{}, err
	}
	prediction, err := PredictDay(result, day)
	if err != nil {
		return DayPrediction{}, err
	}

	title := fmt.Sprintf("Forecast with Day %d Highlighted - %s", day, result.ModelInfo.Order)
	if err := v.applyForecast(result, title, &prediction); err != nil {
		return DayPrediction{}, err
	}
	return prediction, nil
}

func (v *Viewer) applyForecast(result Result, title string, prediction *DayPrediction) error {
	stats, err := SummarizeForecast(result)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.chart = ForecastChart(result, title)
	v.forecast = &stats
	v.stats = nil
	v.prediction = prediction
	v.mu.Unlock()
	return nil
}

// State returns everything the page renders: the chart, whichever stats
// block applies, the current suggestion and any day prediction.
func (v *Viewer) State() (ChartData, *PriceStats, *ForecastStats, Suggestion, *DayPrediction) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.chart, v.stats, v.forecast, v.suggestion, v.prediction
}
