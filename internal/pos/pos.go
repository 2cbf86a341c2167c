package pos

import (
	"context"
	"errors"
	"fmt"

	"github.com/landahan-pos/console/internal/notify"
	"github.com/landahan-pos/console/internal/upstream"
	"github.com/shopspring/decimal"
)

var (
	ErrNoSeller    = errors.New("select a seller first")
	ErrBadQuantity = errors.New("quantity must be a positive whole number")
	ErrBadPrice    = errors.New("price must be greater than zero")
)

// Sale is one POS entry. Total is always derived, never accepted from
// the client.
type Sale struct {
	SellerID  int64           `json:"seller_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (s Sale) Validate() error {
	if s.SellerID <= 0 {
		return ErrNoSeller
	}
	if s.Quantity <= 0 {
		return ErrBadQuantity
	}
	if !s.Price.IsPositive() {
		return ErrBadPrice
	}
	return nil
}

// Total recomputes quantity × price. Safe on any input, so it can back
// the live total display before the sale validates.
func (s Sale) Total() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(s.Quantity))
}

// Store defines the backend call the terminal needs.
type Store interface {
	SubmitSale(ctx context.Context, s Sale) (string, error)
}

// Terminal handles POS entry for one console session.
type Terminal struct {
	store    Store
	notifier *notify.Center
}

func NewTerminal(store Store, notifier *notify.Center) *Terminal {
	return &Terminal{store: store, notifier: notifier}
}

// Pay validates and submits one sale. Validation failures never reach
// the network.
func (t *Terminal) Pay(ctx context.Context, s Sale) (decimal.Decimal, error) {
	if err := s.Validate(); err != nil {
		t.notifier.Error(err.Error())
		return decimal.Zero, err
	}

	msg, err := t.store.SubmitSale(ctx, s)
	if err != nil {
		if !errors.Is(err, upstream.ErrSessionExpired) {
			t.notifier.Error(fmt.Sprintf("Payment failed: %s", userMessage(err)))
		}
		return decimal.Zero, err
	}

	if msg == "" {
		msg = "Transaction recorded."
	}
	t.notifier.Success(msg)
	return s.Total(), nil
}

// API adapts POST /transactions.
type API struct {
	client *upstream.Client
}

func NewAPI(client *upstream.Client) *API {
	return &API{client: client}
}

func (a *API) SubmitSale(ctx context.Context, s Sale) (string, error) {
	body := struct {
		Sale
		Total decimal.Decimal `json:"total"`
	}{Sale: s, Total: s.Total()}

	var resp struct {
		Message string `json:"message"`
	}
	if err := a.client.Post(ctx, "/transactions", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func userMessage(err error) string {
	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		return upErr.Message
	}
	return "network error, please try again"
}
