package sellers

import (
	"context"
	"fmt"
	"io"

	"github.com/landahan-pos/console/internal/upstream"
)

// API adapts the upstream seller endpoints to the Store interface.
type API struct {
	client *upstream.Client
}

func NewAPI(client *upstream.Client) *API {
	return &API{client: client}
}

func (a *API) Overview(ctx context.Context) ([]Seller, error) {
	var resp struct {
		Sellers []Seller `json:"sellers"`
	}
	if err := a.client.Get(ctx, "/sellers/overview", &resp); err != nil {
		return nil, err
	}
	return resp.Sellers, nil
}

func (a *API) Create(ctx context.Context, in Input) error {
	return a.client.Post(ctx, "/sellers", in, nil)
}

func (a *API) Update(ctx context.Context, id int64, in Input) error {
	return a.client.Put(ctx, fmt.Sprintf("/sellers/%d", id), in, nil)
}

func (a *API) Delete(ctx context.Context, id int64) error {
	return a.client.Delete(ctx, fmt.Sprintf("/sellers/%d", id), nil)
}

func (a *API) UploadPhoto(ctx context.Context, id int64, filename string, photo io.Reader) error {
	return a.client.PostMultipart(ctx, fmt.Sprintf("/sellers/%d/photo", id), "photo", filename, photo, nil)
}
