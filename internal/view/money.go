package view

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Peso renders "₱1,234.56". Zero and negative values stay well formed:
// ₱0.00 and ₱-50.00, never NaN.
func Peso(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	return "₱" + sign + groupThousands(s[:dot]) + s[dot:]
}

// PesoFloat is Peso for the float64 series the forecast backend returns.
func PesoFloat(v float64) string {
	return Peso(decimal.NewFromFloat(v))
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
