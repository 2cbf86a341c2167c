package sellers

import (
	"strings"
	"time"

	"github.com/landahan-pos/console/internal/enum"
	"github.com/shopspring/decimal"
)

// activityWindow is how far back a seller's last transaction may be for
// the seller to still count as active.
const activityWindowMonths = 6

// Seller is one row of the overview endpoint. Revenue, counts and the
// last transaction date are aggregated upstream.
type Seller struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	Phone               string          `json:"phone"`
	Address             string          `json:"address"`
	PhotoURL            string          `json:"photo_url"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TransactionsCount   int64           `json:"transactions_count"`
	TotalQuantity       int64           `json:"total_quantity"`
	LastTransactionDate *time.Time      `json:"last_transaction_date"`
}

// Status derives the activity badge: active when the last transaction is
// within the activity window, inactive otherwise or when the seller has
// never transacted.
func (s Seller) Status(now time.Time) string {
	if s.LastTransactionDate == nil {
		return enum.SellerInactive
	}
	cutoff := now.AddDate(0, -activityWindowMonths, 0)
	if s.LastTransactionDate.Before(cutoff) {
		return enum.SellerInactive
	}
	return enum.SellerActive
}

// Initials builds the avatar placeholder text from the seller's name.
func (s Seller) Initials() string {
	var b strings.Builder
	for _, word := range strings.Fields(s.Name) {
		b.WriteString(strings.ToUpper(word[:1]))
	}
	return b.String()
}

// matches reports whether the seller satisfies a case-insensitive
// substring search over name, email and phone.
func (s Seller) matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.Name), term) ||
		strings.Contains(strings.ToLower(s.Email), term) ||
		(s.Phone != "" && strings.Contains(strings.ToLower(s.Phone), term))
}

// Input is the create/update form body.
type Input struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Address string `json:"address" validate:"omitempty,max=255"`
}
