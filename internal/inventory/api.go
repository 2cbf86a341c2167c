package inventory

import (
	"context"

	"github.com/landahan-pos/console/internal/catalog"
	"github.com/landahan-pos/console/internal/upstream"
)

// API implements Store against the backend REST API.
type API struct {
	client *upstream.Client
}

func NewAPI(client *upstream.Client) *API {
	return &API{client: client}
}

func (a *API) ProductsSummary(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := a.client.Get(ctx, "/products-summary", &products); err != nil {
		return nil, err
	}
	return products, nil
}

type messageResponse struct {
	Message string `json:"message"`
}

func (a *API) Husk(ctx context.Context, productID int64) (string, error) {
	body := map[string]int64{"product_id": productID}
	var res messageResponse
	if err := a.client.Post(ctx, "/inventory/husk", body, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (a *API) ConfirmDelivery(ctx context.Context, req DeliveryRequest) (string, error) {
	var res messageResponse
	if err := a.client.Post(ctx, "/inventory/confirm-delivery", req, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}
