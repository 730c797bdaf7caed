package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromMajor(t *testing.T) {
	tests := []struct {
		in   float64
		want Money
	}{
		{0, 0},
		{0.5, 50},
		{0.49, 49},
		{249.99, 24999},
		{282.49, 28249},
		{0.1 + 0.2, 30},
		{999999.99, 99999999},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MoneyFromMajor(tt.in), "input %v", tt.in)
	}
}

func TestMoneyFormat(t *testing.T) {
	assert.Equal(t, "$0.50 CAD", Money(50).Format("cad"))
	assert.Equal(t, "$1,234.56 CAD", Money(123456).Format("cad"))
	assert.Equal(t, "$10.00", Money(1000).Format(""))
}

func TestNewCostBreakdown(t *testing.T) {
	c := NewCostBreakdown(25000)
	assert.Equal(t, Money(25000), c.Base)
	assert.Equal(t, Money(3250), c.Tax)
	assert.Equal(t, Money(28250), c.Total)
}

func TestAmountLimitsCheck(t *testing.T) {
	limits := AmountLimits{Min: 50, Max: 99999999, Currency: "cad"}

	err := limits.Check(49)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Payment amount ($0.49 CAD) is below the minimum transaction amount of $0.50 CAD", err.Error())

	assert.NoError(t, limits.Check(50))
	assert.NoError(t, limits.Check(99999999))

	err = limits.Check(100000000)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Payment amount ($1,000,000.00 CAD) exceeds the maximum transaction amount", err.Error())
}
