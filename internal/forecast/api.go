package forecast

import (
	"context"
	"fmt"

	"github.com/landahan-pos/console/internal/upstream"
)

// Store defines the forecast backend calls the viewer needs.
type Store interface {
	HistoricalPrices(ctx context.Context) (Series, error)
	BestParams(ctx context.Context) (Suggestion, error)
	Forecast(ctx context.Context, days int, p Params) (Result, error)
	AutoForecast(ctx context.Context) (Result, error)
}

// API adapts the ARIMA service endpoints. The service speaks the same
// success envelope as the profit endpoints but reports failures under
// "error" rather than "message".
type API struct {
	client *upstream.Client
}

func NewAPI(client *upstream.Client) *API {
	return &API{client: client}
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     string `json:"error"`
}

func (e envelope) failure(op string) error {
	if e.Err != "" {
		return fmt.Errorf("%s: %s", op, e.Err)
	}
	if e.Message != "" {
		return fmt.Errorf("%s: %s", op, e.Message)
	}
	return fmt.Errorf("%s failed", op)
}

func (a *API) HistoricalPrices(ctx context.Context) (Series, error) {
	var resp struct {
		envelope
		Data Series `json:"data"`
	}
	if err := a.client.Get(ctx, "/husked-coconut-prices", &resp); err != nil {
		return Series{}, err
	}
	if !resp.Success {
		return Series{}, resp.failure("load prices")
	}
	return resp.Data, nil
}

func (a *API) BestParams(ctx context.Context) (Suggestion, error) {
	var resp struct {
		envelope
		Params
		AIC     *float64 `json:"aic"`
		BIC     *float64 `json:"bic"`
		Warning string   `json:"warning"`
	}
	if err := a.client.Get(ctx, "/best-params", &resp); err != nil {
		return Suggestion{}, err
	}
	if !resp.Success {
		return Suggestion{}, resp.failure("optimize parameters")
	}
	return Suggestion{Params: resp.Params, AIC: resp.AIC, BIC: resp.BIC, Warning: resp.Warning}, nil
}

func (a *API) Forecast(ctx context.Context, days int, p Params) (Result, error) {
	body := struct {
		ForecastDays int `json:"forecast_days"`
		Params
	}{ForecastDays: days, Params: p}

	var resp struct {
		envelope
		Result
	}
	if err := a.client.Post(ctx, "/forecast", body, &resp); err != nil {
		return Result{}, err
	}
	if !resp.Success {
		return Result{}, resp.failure("forecast")
	}
	return resp.Result, nil
}

func (a *API) AutoForecast(ctx context.Context) (Result, error) {
	var resp struct {
		envelope
		Result
	}
	if err := a.client.Get(ctx, "/auto-forecast", &resp); err != nil {
		return Result{}, err
	}
	if !resp.Success {
		return Result{}, resp.failure("auto-forecast")
	}
	return resp.Result, nil
}
