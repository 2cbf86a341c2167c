package handler_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/landahan-pos/console/internal/handler"
	"github.com/landahan-pos/console/internal/notify"
	"github.com/landahan-pos/console/internal/pos"
	"github.com/landahan-pos/console/internal/session"
)

type mockPOSStore struct {
	sales []pos.Sale
}

func (m *mockPOSStore) SubmitSale(ctx context.Context, s pos.Sale) (string, error) {
	m.sales = append(m.sales, s)
	return "Transaction recorded.", nil
}

func posState(store pos.Store) *session.State {
	return &session.State{
		POS:      pos.NewTerminal(store, notify.NewCenter(nil)),
		Notifier: notify.NewCenter(nil),
	}
}

func TestPOSTotalPreview(t *testing.T) {
	st := posState(&mockPOSStore{})
	h := handler.NewPOSHandler()

	rr := serve(t, h, st, "POST", "/pos/total", jsonBody(`{"seller_id":1,"product_id":2,"quantity":12,"price":"35.50"}`))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"total":"426.00"`) {
		t.Errorf("total wrong:\n%s", rr.Body.String())
	}
}

func TestPOSPay(t *testing.T) {
	store := &mockPOSStore{}
	st := posState(store)
	h := handler.NewPOSHandler()

	rr := serve(t, h, st, "POST", "/pos/pay", jsonBody(`{"seller_id":1,"product_id":2,"quantity":12,"price":"35.50"}`))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", rr.Code, rr.Body.String())
	}
	if len(store.sales) != 1 {
		t.Fatalf("sales: got %d, want 1", len(store.sales))
	}
	if store.sales[0].Quantity != 12 {
		t.Errorf("quantity: got %d", store.sales[0].Quantity)
	}
}

func TestPOSPayRejectsMissingSeller(t *testing.T) {
	store := &mockPOSStore{}
	st := posState(store)
	h := handler.NewPOSHandler()

	rr := serve(t, h, st, "POST", "/pos/pay", jsonBody(`{"product_id":2,"quantity":12,"price":"35.50"}`))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if len(store.sales) != 0 {
		t.Errorf("store should not be called for invalid sale")
	}
}
