package pos_test

import (
	"context"
	"errors"
	"testing"

	"github.com/landahan-pos/console/internal/notify"
	"github.com/landahan-pos/console/internal/pos"
	"github.com/landahan-pos/console/internal/upstream"
	"github.com/shopspring/decimal"
)

type mockStore struct {
	submitted []pos.Sale
	err       error
}

func (m *mockStore) SubmitSale(_ context.Context, s pos.Sale) (string, error) {
	m.submitted = append(m.submitted, s)
	if m.err != nil {
		return "", m.err
	}
	return "Transaction recorded.", nil
}

func validSale() pos.Sale {
	return pos.Sale{SellerID: 7, ProductID: 1, Quantity: 12, Price: decimal.NewFromFloat(35.50)}
}

func TestTotalIsQuantityTimesPrice(t *testing.T) {
	s := validSale()
	if got := s.Total().StringFixed(2); got != "426.00" {
		t.Errorf("total = %s, want 426.00", got)
	}

	// Live total display runs before validation, so garbage input must
	// still compute without panicking.
	zero := pos.Sale{}
	if got := zero.Total().StringFixed(2); got != "0.00" {
		t.Errorf("zero total = %s", got)
	}
}

func TestValidateRejectsBeforeNetwork(t *testing.T) {
	cases := []struct {
		name string
		sale pos.Sale
		want error
	}{
		{"no seller", pos.Sale{ProductID: 1, Quantity: 1, Price: decimal.NewFromInt(10)}, pos.ErrNoSeller},
		{"zero quantity", pos.Sale{SellerID: 1, ProductID: 1, Price: decimal.NewFromInt(10)}, pos.ErrBadQuantity},
		{"negative quantity", pos.Sale{SellerID: 1, ProductID: 1, Quantity: -2, Price: decimal.NewFromInt(10)}, pos.ErrBadQuantity},
		{"zero price", pos.Sale{SellerID: 1, ProductID: 1, Quantity: 1}, pos.ErrBadPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockStore{}
			term := pos.NewTerminal(store, notify.NewCenter(nil))

			_, err := term.Pay(context.Background(), tc.sale)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
			if len(store.submitted) != 0 {
				t.Error("invalid sale reached the backend")
			}
		})
	}
}

func TestPaySubmitsAndNotifies(t *testing.T) {
	store := &mockStore{}
	center := notify.NewCenter(nil)
	term := pos.NewTerminal(store, center)

	total, err := term.Pay(context.Background(), validSale())
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if total.StringFixed(2) != "426.00" {
		t.Errorf("total = %s", total.StringFixed(2))
	}
	if len(store.submitted) != 1 || store.submitted[0].SellerID != 7 {
		t.Errorf("submitted = %+v", store.submitted)
	}

	active := center.Active()
	if len(active) != 1 || active[0].Kind != "success" {
		t.Errorf("notifications = %+v", active)
	}
}

func TestPaySurfacesServerMessage(t *testing.T) {
	store := &mockStore{err: &upstream.Error{Status: 400, Message: "insufficient stock"}}
	center := notify.NewCenter(nil)
	term := pos.NewTerminal(store, center)

	if _, err := term.Pay(context.Background(), validSale()); err == nil {
		t.Fatal("expected error")
	}

	found := false
	for _, n := range center.Active() {
		if n.Kind == "error" && n.Message == "Payment failed: insufficient stock" {
			found = true
		}
	}
	if !found {
		t.Errorf("server message not surfaced: %+v", center.Active())
	}
}
