package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/landahan-pos/console/internal/catalog"
	"github.com/landahan-pos/console/internal/inventory"
	"github.com/landahan-pos/console/internal/notify"
	"github.com/landahan-pos/console/internal/upstream"
	"github.com/shopspring/decimal"
)

// --- Mock store ---

type mockStore struct {
	products   []catalog.Product
	listErr    error
	huskErr    error
	deliverErr error

	huskCalls    []int64
	deliverCalls []inventory.DeliveryRequest
}

func (m *mockStore) ProductsSummary(_ context.Context) ([]catalog.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]catalog.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *mockStore) Husk(_ context.Context, productID int64) (string, error) {
	m.huskCalls = append(m.huskCalls, productID)
	if m.huskErr != nil {
		return "", m.huskErr
	}
	return "Husking complete", nil
}

func (m *mockStore) ConfirmDelivery(_ context.Context, req inventory.DeliveryRequest) (string, error) {
	m.deliverCalls = append(m.deliverCalls, req)
	if m.deliverErr != nil {
		return "", m.deliverErr
	}
	return "Delivery recorded", nil
}

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Husked Coconut", CurrentStock: 100, TotalQuantity: 500, TotalCost: decimal.NewFromInt(2500), HighStockThreshold: 80},
		{ID: 2, Name: "Unhusked Coconut", CurrentStock: 200, TotalQuantity: 400, TotalCost: decimal.NewFromInt(800), HighStockThreshold: 150},
		{ID: 3, Name: "Copra", CurrentStock: 10, TotalQuantity: 100, TotalCost: decimal.NewFromInt(1000), HighStockThreshold: 50},
		{ID: 4, Name: "Reject", CurrentStock: 7, TotalQuantity: 7, TotalCost: decimal.NewFromInt(70)},
	}
}

func newController(store *mockStore) (*inventory.Controller, *notify.Center) {
	center := notify.NewCenter(nil)
	return inventory.NewController(store, center), center
}

func mustLoad(t *testing.T, c *inventory.Controller) {
	t.Helper()
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
}

// --- Tests ---

func TestLoadReplacesListWholesale(t *testing.T) {
	store := &mockStore{products: sampleProducts()}
	c, _ := newController(store)
	mustLoad(t, c)

	if got := len(c.Products()); got != 4 {
		t.Fatalf("products = %d, want 4", got)
	}

	store.products = sampleProducts()[:1]
	mustLoad(t, c)
	if got := len(c.Products()); got != 1 {
		t.Errorf("products = %d after reload, want 1", got)
	}
}

func TestFailedLoadKeepsPreviousState(t *testing.T) {
	store := &mockStore{products: sampleProducts()}
	c, center := newController(store)
	mustLoad(t, c)

	store.listErr = &upstream.Error{Status: 500, Message: "boom"}
	if err := c.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}

	if got := len(c.Products()); got != 4 {
		t.Errorf("products = %d after failed reload, want previous 4", got)
	}
	active := center.Active()
	if len(active) != 1 || active[0].Kind != "error" {
		t.Errorf("expected one error notification, got %+v", active)
	}
}

func TestMetricsSkipRejects(t *testing.T) {
	store := &mockStore{products: sampleProducts()}
	c, _ := newController(store)
	mustLoad(t, c)

	m := c.Metrics()
	// 500 + 400 + 100, Reject's 7 excluded
	if m.TotalQuantity != 1000 {
		t.Errorf("total quantity = %d, want 1000", m.TotalQuantity)
	}
	// 100×5 + 200×2 + 10×10 = 1000.00, Reject's value excluded
	if got := m.StockValue.StringFixed(2); got != "1000.00" {
		t.Errorf("stock value = %s, want 1000.00", got)
	}
}

func TestAlertsFollowProductOrder(t *testing.T) {
	store := &mockStore{products: sampleProducts()}
	c, _ := newController(store)
	mustLoad(t, c)

	alerts := c.Alerts()
	if len(alerts) != 2 {
		t.Fatalf("alerts = %d, want 2", len(alerts))
	}
	if alerts[0].ProductName != "Husked Coconut" || alerts[0].Action != "deliver" {
		t.Errorf("alert[0] = %+v", alerts[0])
	}
	if alerts[1].ProductName != "Unhusked Coconut" || alerts[1].Action != "process (husk)" {
		t.Errorf("alert[1] = %+v", alerts[1])
	}
}

func TestHuskSuccessReloadsAndNotifies(t *testing.T) {
	store := &mockStore{products: sampleProducts()}
	c, center := newController(store)
	mustLoad(t, c)

	if err := c.Husk(context.Background(), 2); err != nil {
		t.Fatalf("husk: %v", err)
	}
	if len(store.huskCalls) != 1 || store.huskCalls[0] != 2 {
		t.Errorf("husk calls = %v", store.huskCalls)
	}

	active := center.Active()
	if len(active) != 1 || active[0].Kind != "success" {
		t.Errorf("notifications = %+v", active)
	}
}

func TestHuskRejectsNonHuskableProduct(t *testing.T) {
	store := &mockStore{products: sampleProducts()}
	c, _ := newController(store)
	mustLoad(t, c)

	if err := c.Husk(context.Background(), 1); err == nil {
		t.Fatal("expected error husking Husked Coconut")
	}
	if len(store.huskCalls) != 0 {
		t.Errorf("husk reached the backend for a non-huskable product")
	}
}

func TestDeliveryWizardSubmitsAccumulatedDraft(t *testing.T) {
	store := &mockStore{products: sampleProducts()}
	c, _ := newController(store)
	mustLoad(t, c)

	draft, err := c.StartDelivery(1)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := draft.CostOfGoodsSold.StringFixed(2); got != "500.00" {
		t.Errorf("COGS = %s, want 500.00", got)
	}

	if err := c.ConfirmDelivery(); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	profit, err := c.ProfitPreview(decimal.NewFromInt(800))
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if got := profit.StringFixed(2); got != "300.00" {
		t.Errorf("profit preview = %s, want 300.00", got)
	}

	if err := c.EnterProfit(decimal.NewFromInt(800)); err != nil {
		t.Fatalf("enter profit: %v", err)
	}
	if err := c.SubmitRejects(context.Background(), 4); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(store.deliverCalls) != 1 {
		t.Fatalf("confirm-delivery calls = %d, want exactly 1", len(store.deliverCalls))
	}
	req := store.deliverCalls[0]
	if req.ProductID != 1 || req.Quantity != 100 || req.RejectQuantity != 4 {
		t.Errorf("request = %+v", req)
	}
	if got := req.TotalEarned.StringFixed(2); got != "800.00" {
		t.Errorf("total earned = %s", got)
	}
	if got := req.CostOfGoodsSold.StringFixed(2); got != "500.00" {
		t.Errorf("COGS = %s", got)
	}

	if stage, _, ok := c.WizardState(); stage != inventory.StageIdle || ok {
		t.Errorf("wizard not reset after submit: stage=%v draft=%v", stage, ok)
	}
}

func TestDeliveryFailureClearsDraftWithoutRetry(t *testing.T) {
	store := &mockStore{products: sampleProducts()}
	c, center := newController(store)
	mustLoad(t, c)

	c.StartDelivery(1)
	c.ConfirmDelivery()
	c.EnterProfit(decimal.NewFromInt(50))

	store.deliverErr = &upstream.Error{Status: 400, Message: "delivery rejected"}
	if err := c.SubmitRejects(context.Background(), 0); err == nil {
		t.Fatal("expected submit error")
	}

	if len(store.deliverCalls) != 1 {
		t.Errorf("confirm-delivery calls = %d, want 1 (no retry)", len(store.deliverCalls))
	}
	if stage, _, ok := c.WizardState(); stage != inventory.StageIdle || ok {
		t.Errorf("wizard not reset after failure: stage=%v draft=%v", stage, ok)
	}

	found := false
	for _, n := range center.Active() {
		if n.Kind == "error" && n.Message == "Error: delivery rejected" {
			found = true
		}
	}
	if !found {
		t.Errorf("server message not surfaced: %+v", center.Active())
	}
}

func TestCancelMakesNoBackendCall(t *testing.T) {
	store := &mockStore{products: sampleProducts()}
	c, _ := newController(store)
	mustLoad(t, c)

	c.StartDelivery(1)
	c.ConfirmDelivery()
	if err := c.CancelDelivery(); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if len(store.deliverCalls) != 0 {
		t.Errorf("cancel reached the backend: %v", store.deliverCalls)
	}
	if stage, _, ok := c.WizardState(); stage != inventory.StageIdle || ok {
		t.Errorf("wizard not idle after cancel")
	}
}

func TestSessionExpiryDoesNotDoubleNotify(t *testing.T) {
	store := &mockStore{products: sampleProducts()}
	c, center := newController(store)
	mustLoad(t, c)

	store.listErr = upstream.ErrSessionExpired
	err := c.Load(context.Background())
	if !errors.Is(err, upstream.ErrSessionExpired) {
		t.Fatalf("err = %v", err)
	}

	// The session-level expiry hook owns that toast; the controller must
	// not add its own.
	if got := len(center.Active()); got != 0 {
		t.Errorf("notifications = %d, want 0", got)
	}
}
