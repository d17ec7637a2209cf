package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) Money {
	t.Helper()
	m, err := MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestMoneyArithmetic(t *testing.T) {
	a := money(t, "1500.50")
	b := money(t, "499.50")

	assert.Equal(t, "2000", a.Add(b).String())
	assert.Equal(t, "1001", a.Sub(b).String())
	assert.Equal(t, "-1500.5", a.Neg().String())
	assert.True(t, a.Equal(money(t, "1500.5")))
	assert.True(t, ZeroMoney().IsZero())
	assert.True(t, a.IsPositive())
	assert.True(t, a.Neg().IsNegative())
}

func TestMoneyApplyDiscount(t *testing.T) {
	base := money(t, "3000")

	assert.Equal(t, "2700.00", base.ApplyDiscount(decimal.NewFromInt(10)).Fixed())
	assert.Equal(t, "3000.00", base.ApplyDiscount(decimal.Zero).Fixed())
}

func TestMoneySplitGST(t *testing.T) {
	cgst, sgst := money(t, "3000").SplitGST(decimal.NewFromInt(18))

	assert.Equal(t, "270.00", cgst.Fixed())
	assert.Equal(t, "270.00", sgst.Fixed())

	cgst, sgst = money(t, "3000").SplitGST(decimal.Zero)
	assert.True(t, cgst.IsZero())
	assert.True(t, sgst.IsZero())
}

func TestMoneyDisplay(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", "₹0.00"},
		{"999.5", "₹999.50"},
		{"1234.5", "₹1,234.50"},
		{"123456.78", "₹1,23,456.78"},
		{"12345678", "₹1,23,45,678.00"},
		{"-1500", "-₹1,500.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, money(t, tt.amount).Display(), "amount %s", tt.amount)
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(money(t, "1500.50"))
	require.NoError(t, err)
	assert.Equal(t, `"1500.5"`, string(data))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"270.00"`), &m))
	assert.Equal(t, "270.00", m.Fixed())

	assert.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &m))
}

func TestMoneyFromStringInvalid(t *testing.T) {
	_, err := MoneyFromString("twelve rupees")
	assert.Error(t, err)
}
