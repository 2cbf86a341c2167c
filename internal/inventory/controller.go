package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/landahan-pos/console/internal/catalog"
	"github.com/landahan-pos/console/internal/notify"
	"github.com/landahan-pos/console/internal/upstream"
	"github.com/shopspring/decimal"
)

// Store defines the backend calls the dashboard needs.
// Satisfied by *API; narrow interface for testability.
type Store interface {
	ProductsSummary(ctx context.Context) ([]catalog.Product, error)
	Husk(ctx context.Context, productID int64) (string, error)
	ConfirmDelivery(ctx context.Context, req DeliveryRequest) (string, error)
}

// DeliveryRequest is the confirm-delivery body. It carries both the
// quantity and the locally computed cost basis so the backend can use
// either contract variant.
type DeliveryRequest struct {
	ProductID       int64           `json:"product_id"`
	Quantity        int64           `json:"quantity"`
	CostOfGoodsSold decimal.Decimal `json:"cost_of_goods_sold"`
	TotalEarned     decimal.Decimal `json:"total_earned"`
	RejectQuantity  int64           `json:"reject_quantity"`
}

// Metrics are the dashboard headline numbers, summed over every product
// except Reject (rejects have no stock value).
type Metrics struct {
	TotalQuantity int64
	StockValue    decimal.Decimal
}

// Alert is one high-stock warning, in product-list order.
type Alert struct {
	ProductID    int64
	ProductName  string
	CurrentStock int64
	Threshold    int64
	Action       string
}

// Controller owns the inventory page state for one console session: the
// product list, the derived metrics and alerts, and the delivery wizard.
// The product list is replaced wholesale on every successful reload and
// left untouched on failure.
type Controller struct {
	mu       sync.Mutex
	store    Store
	notifier *notify.Center
	products []catalog.Product
	loaded   bool
	wizard   Wizard
}

func NewController(store Store, notifier *notify.Center) *Controller {
	return &Controller{store: store, notifier: notifier}
}

// Load refreshes the product list from the backend. On failure the
// previously loaded list stays rendered.
func (c *Controller) Load(ctx context.Context) error {
	products, err := c.store.ProductsSummary(ctx)
	if err != nil {
		if !errors.Is(err, upstream.ErrSessionExpired) {
			c.notifier.Error(fmt.Sprintf("Error loading inventory: %s", userMessage(err)))
		}
		return err
	}

	c.mu.Lock()
	c.products = catalog.Resolve(products)
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Loaded reports whether at least one reload has succeeded.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Products returns a copy of the current list.
func (c *Controller) Products() []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]catalog.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Metrics sums lifetime quantity and estimated stock value across all
// non-Reject products. Pure function of current state.
func (c *Controller) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := Metrics{StockValue: decimal.Zero}
	for _, p := range c.products {
		if p.Kind == catalog.KindReject {
			continue
		}
		m.TotalQuantity += p.TotalQuantity
		m.StockValue = m.StockValue.Add(p.StockValue())
	}
	return m
}

// Alerts lists every product at or above its threshold, with the action
// the console should suggest.
func (c *Controller) Alerts() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()

	var alerts []Alert
	for _, p := range c.products {
		if !p.IsHighStock() {
			continue
		}
		action := p.SuggestedAction()
		if action == "" {
			continue
		}
		alerts = append(alerts, Alert{
			ProductID:    p.ID,
			ProductName:  p.Name,
			CurrentStock: p.CurrentStock,
			Threshold:    p.HighStockThreshold,
			Action:       action,
		})
	}
	return alerts
}

// Husk converts all unhusked stock into husked stock server-side, then
// reloads. No local mutation is ever applied optimistically.
func (c *Controller) Husk(ctx context.Context, productID int64) error {
	p, ok := c.product(productID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownProduct, productID)
	}
	if !p.Huskable() {
		return fmt.Errorf("%w: %s", ErrNotHuskable, p.Name)
	}

	msg, err := c.store.Husk(ctx, productID)
	if err != nil {
		if !errors.Is(err, upstream.ErrSessionExpired) {
			c.notifier.Error(fmt.Sprintf("Error: %s", userMessage(err)))
		}
		return err
	}

	c.notifier.Success(msg)
	return c.Load(ctx)
}

// StartDelivery opens the wizard's confirm stage for the given product.
func (c *Controller) StartDelivery(productID int64) (Draft, error) {
	p, ok := c.product(productID)
	if !ok {
		return Draft{}, fmt.Errorf("%w: %d", ErrUnknownProduct, productID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.wizard.Dispatch(Event{Kind: EventStart, Product: p}); err != nil {
		return Draft{}, err
	}
	draft, _ := c.wizard.Draft()
	return draft, nil
}

// ConfirmDelivery advances the wizard from the confirm stage to the
// profit stage.
func (c *Controller) ConfirmDelivery() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wizard.Dispatch(Event{Kind: EventConfirm})
}

// ProfitPreview recomputes earned − COGS without advancing the wizard.
// Called on every keystroke of the profit input.
func (c *Controller) ProfitPreview(totalEarned decimal.Decimal) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, ok := c.wizard.Draft()
	if !ok {
		return decimal.Zero, ErrBadTransition
	}
	return totalEarned.Sub(draft.CostOfGoodsSold), nil
}

// EnterProfit records the amount earned and moves to the rejects stage.
func (c *Controller) EnterProfit(totalEarned decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wizard.Dispatch(Event{Kind: EventEnterProfit, TotalEarned: totalEarned})
}

// SubmitRejects records the reject count and sends the whole draft in a
// single confirm-delivery call. The draft is cleared whether the call
// succeeds or fails; the user restarts the wizard to retry.
func (c *Controller) SubmitRejects(ctx context.Context, rejectQuantity int64) error {
	c.mu.Lock()
	if err := c.wizard.Dispatch(Event{Kind: EventEnterRejects, RejectQuantity: rejectQuantity}); err != nil {
		c.mu.Unlock()
		return err
	}
	draft, _ := c.wizard.Draft()
	c.mu.Unlock()

	msg, err := c.store.ConfirmDelivery(ctx, DeliveryRequest{
		ProductID:       draft.ProductID,
		Quantity:        draft.Quantity,
		CostOfGoodsSold: draft.CostOfGoodsSold,
		TotalEarned:     draft.TotalEarned,
		RejectQuantity:  draft.RejectQuantity,
	})

	c.mu.Lock()
	c.wizard.Dispatch(Event{Kind: EventResolve})
	c.mu.Unlock()

	if err != nil {
		if !errors.Is(err, upstream.ErrSessionExpired) {
			c.notifier.Error(fmt.Sprintf("Error: %s", userMessage(err)))
		}
		return err
	}

	c.notifier.Success(msg)
	return c.Load(ctx)
}

// CancelDelivery discards the draft and returns to idle without
// contacting the backend.
func (c *Controller) CancelDelivery() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wizard.Dispatch(Event{Kind: EventCancel})
}

// WizardState reports the stage and a copy of the draft for rendering.
func (c *Controller) WizardState() (Stage, Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	draft, ok := c.wizard.Draft()
	return c.wizard.Stage(), draft, ok
}

func (c *Controller) product(id int64) (catalog.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// userMessage strips transport detail off errors before they reach a toast.
func userMessage(err error) string {
	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		return upErr.Message
	}
	return "network error, please try again"
}
