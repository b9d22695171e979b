package domain_test

import (
	"testing"

	"github.com/api-sage/account-ledger/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyRejectsNegative(t *testing.T) {
	_, err := domain.NewMoney(-1)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestParseMoney(t *testing.T) {
	m, err := domain.ParseMoney("12.34")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), m.Units())
	assert.Equal(t, "12.34", m.String())

	whole, err := domain.ParseMoney("150")
	require.NoError(t, err)
	assert.Equal(t, int64(15000), whole.Units())
	assert.Equal(t, "150.00", whole.String())
}

func TestParseMoneyRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"negative":     "-5.00",
		"not a number": "ten",
		"sub-cent":     "1.005",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := domain.ParseMoney(raw)
			require.ErrorIs(t, err, domain.ErrInvalidAmount)
		})
	}
}

func TestMoneyFromDecimalRejectsSubCentPrecision(t *testing.T) {
	_, err := domain.MoneyFromDecimal(decimal.RequireFromString("0.001"))
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestMoneySubUnderflow(t *testing.T) {
	small, err := domain.NewMoney(100)
	require.NoError(t, err)
	large, err := domain.NewMoney(250)
	require.NoError(t, err)

	_, err = small.Sub(large)
	require.ErrorIs(t, err, domain.ErrUnderflow)

	got, err := large.Sub(small)
	require.NoError(t, err)
	assert.Equal(t, int64(150), got.Units())
}

func TestMoneyComparisons(t *testing.T) {
	a, _ := domain.NewMoney(100)
	b, _ := domain.NewMoney(200)

	assert.True(t, a.LessThan(b))
	assert.False(t, b.LessThan(a))
	assert.True(t, a.Equal(a))
	assert.True(t, b.IsPositive())
	assert.True(t, domain.ZeroMoney.IsZero())
}

// Repeated ten-cent movements must never drift, which is the whole point of
// integer minor units over binary floats.
func TestMoneyNoDriftOverRepeatedCycles(t *testing.T) {
	dime, err := domain.ParseMoney("0.10")
	require.NoError(t, err)

	balance := domain.ZeroMoney
	for i := 0; i < 10000; i++ {
		balance = balance.Add(dime)
	}
	assert.Equal(t, "1000.00", balance.String())

	for i := 0; i < 10000; i++ {
		var err error
		balance, err = balance.Sub(dime)
		require.NoError(t, err)
	}
	assert.True(t, balance.IsZero())
}
