package catalog

import (
	"testing"

	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct(
		"Premium Emulsion", "Asian Paints", CategoryPaint, "Deep Base", "3209",
		decimal.NewFromInt(1500), decimal.NewFromInt(18),
		decimal.NewFromInt(4), "Litre",
	)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates active product", func(t *testing.T) {
		p := createTestProduct(t)

		assert.Equal(t, ProductStatusActive, p.Status)
		assert.Equal(t, "4 Litre", p.Unit())
		assert.True(t, p.StockQuantity.IsZero())
		require.Len(t, p.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeProductCreated, p.GetDomainEvents()[0].EventType())
	})

	t.Run("requires HSN code for taxed paint categories", func(t *testing.T) {
		_, err := NewProduct(
			"Premium Emulsion", "Asian Paints", CategoryPaint, "Deep Base", "",
			decimal.NewFromInt(1500), decimal.NewFromInt(18),
			decimal.NewFromInt(4), "Litre",
		)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MISSING_HSN_CODE", domainErr.Code)
	})

	t.Run("accessories do not need HSN", func(t *testing.T) {
		_, err := NewProduct(
			"Roller 9in", "Generic", CategoryAccessory, "", "",
			decimal.NewFromInt(120), decimal.NewFromInt(18),
			decimal.NewFromInt(1), "Piece",
		)
		assert.NoError(t, err)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewProduct("", "Brand", CategoryPaint, "", "3209",
			decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(1), "Litre")
		assert.Error(t, err)

		_, err = NewProduct("Paint", "Brand", ProductCategory("chemical"), "", "3209",
			decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(1), "Litre")
		assert.Error(t, err)

		_, err = NewProduct("Paint", "Brand", CategoryPaint, "", "3209",
			decimal.NewFromInt(-100), decimal.Zero, decimal.NewFromInt(1), "Litre")
		assert.Error(t, err)
	})
}

func TestProductPriceAndGST(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.ChangePrice(decimal.NewFromInt(1600)))
	assert.True(t, p.UnitPrice.Equal(decimal.NewFromInt(1600)))

	assert.Error(t, p.ChangePrice(decimal.NewFromInt(-1)))

	require.NoError(t, p.SetGSTRate(decimal.NewFromInt(12), "3208"))
	assert.Equal(t, "3208", p.HSNCode)

	err := p.SetGSTRate(decimal.NewFromInt(12), "")
	assert.Error(t, err, "taxed paint needs an HSN code")

	require.NoError(t, p.SetGSTRate(decimal.Zero, ""), "untaxed products may drop the HSN code")
}

func TestProductStockChecks(t *testing.T) {
	p := createTestProduct(t)
	p.StockQuantity = decimal.NewFromInt(10)

	assert.True(t, p.CanFulfill(decimal.NewFromInt(10)))
	assert.False(t, p.CanFulfill(decimal.NewFromFloat(10.5)))

	require.NoError(t, p.SetLowStockThreshold(decimal.NewFromInt(5)))
	assert.False(t, p.IsLowStock())

	p.StockQuantity = decimal.NewFromInt(5)
	assert.True(t, p.IsLowStock())
}

func TestProductDisableEnable(t *testing.T) {
	p := createTestProduct(t)
	p.ClearDomainEvents()

	p.Disable()
	assert.False(t, p.IsActive())
	require.Len(t, p.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeProductDisabled, p.GetDomainEvents()[0].EventType())

	// disabling twice emits no second event
	p.Disable()
	assert.Len(t, p.GetDomainEvents(), 1)

	p.Enable()
	assert.True(t, p.IsActive())
}
