package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountMode tells FinalPrice how to read the discount value.
type DiscountMode string

const (
	ModeAmount  DiscountMode = "amount"
	ModePercent DiscountMode = "percent"
)

var ErrUnknownDiscountMode = errors.New("unknown discount mode")

var hundred = decimal.NewFromInt(100)

// ParseDiscountMode accepts "amount" (also the empty string) and
// "percent"/"percentage".
func ParseDiscountMode(s string) (DiscountMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "amount", "flat":
		return ModeAmount, nil
	case "percent", "percentage":
		return ModePercent, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDiscountMode, s)
}

// FinalPrice applies a discount to original (øre). ok is false when the
// original price is unknown. Percent discounts round half away from zero;
// amount discounts are whole øre and any fraction is dropped. The result is
// never negative.
func FinalPrice(original *int64, discount float64, mode DiscountMode) (price int64, ok bool) {
	if original == nil {
		return 0, false
	}
	if discount == 0 {
		return *original, true
	}

	o := decimal.NewFromInt(*original)
	d := decimal.NewFromFloat(discount)

	var p decimal.Decimal
	switch mode {
	case ModePercent:
		p = o.Mul(decimal.NewFromInt(1).Sub(d.Div(hundred))).Round(0)
	default:
		p = o.Sub(d)
	}
	if p.IsNegative() {
		return 0, true
	}
	return p.IntPart(), true
}

// Savings returns (original - final) * quantity, or 0 when either price is
// unknown. It is never negative.
func Savings(original, final *int64, quantity int) int64 {
	if original == nil || final == nil {
		return 0
	}
	s := (*original - *final) * int64(quantity)
	if s < 0 {
		return 0
	}
	return s
}

// DiscountPercentage derives the whole-percent discount between two prices.
func DiscountPercentage(original, final int64) float64 {
	if original <= 0 || final >= original {
		return 0
	}
	pct := decimal.NewFromInt(original - final).Mul(hundred).Div(decimal.NewFromInt(original)).Round(0)
	f, _ := pct.Float64()
	return f
}

// FormatPrice renders øre as a Norwegian krone amount, e.g. "1 234,50 kr".
func FormatPrice(ore int64) string {
	whole, frac := splitKroner(ore)
	return whole + "," + frac + " kr"
}

// FormatPriceShort is FormatPrice without a ",00" suffix.
func FormatPriceShort(ore int64) string {
	whole, frac := splitKroner(ore)
	if frac == "00" {
		return whole + " kr"
	}
	return whole + "," + frac + " kr"
}

func splitKroner(ore int64) (whole, frac string) {
	s := decimal.New(ore, -2).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String(), frac
}
