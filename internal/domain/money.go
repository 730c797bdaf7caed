package domain

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// HSTRate is the Ontario harmonized sales tax applied on top of league cost.
const HSTRate = 0.13

// Money is an amount in minor currency units (cents).
type Money int64

// MoneyFromMajor converts a decimal major-unit amount, rounding to the
// nearest minor unit.
func MoneyFromMajor(v float64) Money {
	return Money(math.Round(v * 100))
}

func (m Money) Major() float64 {
	return float64(m) / 100
}

// Format renders the amount as "$1,234.56 CAD". An empty currency drops the
// suffix.
func (m Money) Format(currency string) string {
	p := message.NewPrinter(language.English)
	s := p.Sprintf("$%.2f", m.Major())
	if currency == "" {
		return s
	}
	return s + " " + strings.ToUpper(currency)
}

type CostBreakdown struct {
	Base  Money
	Tax   Money
	Total Money
}

func NewCostBreakdown(base Money) CostBreakdown {
	tax := Money(math.Round(float64(base) * HSTRate))
	return CostBreakdown{Base: base, Tax: tax, Total: base + tax}
}

// AmountLimits are the gateway's per-transaction bounds in minor units.
type AmountLimits struct {
	Min      Money
	Max      Money
	Currency string
}

// Check rejects amounts the gateway would refuse.
func (l AmountLimits) Check(amount Money) error {
	if amount < l.Min {
		return Validationf("Payment amount (%s) is below the minimum transaction amount of %s",
			amount.Format(l.Currency), l.Min.Format(l.Currency))
	}
	if amount > l.Max {
		return Validationf("Payment amount (%s) exceeds the maximum transaction amount",
			amount.Format(l.Currency))
	}
	return nil
}
