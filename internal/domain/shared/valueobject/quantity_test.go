package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaleQuantity(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"half unit", "0.5", true},
		{"whole unit", "1", true},
		{"two and a half", "2.5", true},
		{"zero", "0", false},
		{"negative", "-1", false},
		{"below half step", "0.3", false},
		{"off the half grid", "1.75", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := decimal.NewFromString(tt.value)
			require.NoError(t, err)

			q, qErr := NewSaleQuantity(v)
			if tt.valid {
				require.NoError(t, qErr)
				assert.True(t, q.Amount().Equal(v))
			} else {
				assert.Error(t, qErr)
			}
		})
	}
}

func TestIsSaleStep(t *testing.T) {
	assert.True(t, IsSaleStep(decimal.NewFromFloat(2.5)))
	assert.False(t, IsSaleStep(decimal.NewFromFloat(2.3)))
}

func TestQuantityCost(t *testing.T) {
	q, err := NewSaleQuantity(decimal.NewFromFloat(2.5))
	require.NoError(t, err)

	total := q.Cost(NewMoney(decimal.NewFromInt(1500)))
	assert.Equal(t, "3750.00", total.Fixed())
	assert.Equal(t, "2.5", q.String())
}
