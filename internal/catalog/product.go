package catalog

import (
	"github.com/landahan-pos/console/internal/enum"
	"github.com/shopspring/decimal"
)

// Kind classifies a product once at load time so action eligibility never
// depends on repeated name-string comparisons.
type Kind int

const (
	KindOther Kind = iota
	KindHusked
	KindUnhusked
	KindCopra
	KindReject
)

// ParseKind resolves the upstream product name to its Kind. Unknown names
// map to KindOther, which is never eligible for any action.
func ParseKind(name string) Kind {
	switch name {
	case enum.ProductHuskedCoconut:
		return KindHusked
	case enum.ProductUnhuskedCoconut:
		return KindUnhusked
	case enum.ProductCopra:
		return KindCopra
	case enum.ProductReject:
		return KindReject
	}
	return KindOther
}

// Product is one row of the upstream /products-summary response.
// TotalQuantity and TotalCost are lifetime purchase figures; the average
// unit cost is always derived from them, never stored.
type Product struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Kind               Kind            `json:"-"`
	CurrentStock       int64           `json:"current_stock"`
	TotalQuantity      int64           `json:"total_quantity"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	HighStockThreshold int64           `json:"high_stock_threshold"`
	RejectCount        int64           `json:"reject_count"`
}

// Resolve fills in the Kind for every product. Call once after decoding.
func Resolve(products []Product) []Product {
	for i := range products {
		products[i].Kind = ParseKind(products[i].Name)
	}
	return products
}

// AverageUnitCost is TotalCost / TotalQuantity, or zero when nothing has
// ever been purchased. Never divides by zero.
func (p Product) AverageUnitCost() decimal.Decimal {
	if p.TotalQuantity <= 0 {
		return decimal.Zero
	}
	return p.TotalCost.Div(decimal.NewFromInt(p.TotalQuantity))
}

// StockValue is the estimated value of the stock on hand.
func (p Product) StockValue() decimal.Decimal {
	return decimal.NewFromInt(p.CurrentStock).Mul(p.AverageUnitCost())
}

// IsHighStock reports whether the configured threshold has been reached.
// A zero threshold disables the alert for that product.
func (p Product) IsHighStock() bool {
	return p.HighStockThreshold > 0 && p.CurrentStock >= p.HighStockThreshold
}

// Deliverable products can go through the delivery wizard.
func (p Product) Deliverable() bool {
	return p.Kind == KindHusked || p.Kind == KindCopra
}

// Huskable products can be converted to husked stock.
func (p Product) Huskable() bool {
	return p.Kind == KindUnhusked
}

// SuggestedAction names the action an alert should recommend, or "" when
// the product has no eligible action.
func (p Product) SuggestedAction() string {
	switch {
	case p.Huskable():
		return enum.ActionHusk
	case p.Deliverable():
		return enum.ActionDeliver
	}
	return ""
}
