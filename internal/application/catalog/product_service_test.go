package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/paintdesk/backend/internal/domain/catalog"
	"github.com/paintdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubProductRepo) FindLowStock(_ context.Context) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0)
	for _, p := range r.products {
		if p.IsActive() && p.IsLowStock() {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return shared.ErrNotFound
	}
	next := p.StockQuantity.Add(delta)
	if next.IsNegative() {
		return shared.ErrInsufficientStock
	}
	p.StockQuantity = next
	return nil
}

func newProductService() (*ProductService, *stubProductRepo) {
	repo := newStubProductRepo()
	return NewProductService(repo, nil), repo
}

func validCreateRequest() CreateProductRequest {
	return CreateProductRequest{
		Name:      "Premium Emulsion",
		Brand:     "Asian Paints",
		Category:  catalog.CategoryPaint,
		Base:      "Deep Base",
		HSNCode:   "3208",
		UnitPrice: decimal.NewFromInt(1500),
		GSTRate:   decimal.NewFromInt(18),
		UnitValue: decimal.NewFromInt(4),
		UnitType:  "Litre",
	}
}

func TestProductServiceCreate(t *testing.T) {
	service, repo := newProductService()

	threshold := decimal.NewFromInt(5)
	cost := decimal.NewFromInt(1200)
	req := validCreateRequest()
	req.CostPrice = &cost
	req.LowStockThreshold = &threshold

	resp, err := service.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Premium Emulsion", resp.Name)
	assert.Equal(t, "4 Litre", resp.Unit)
	assert.Equal(t, catalog.ProductStatusActive, resp.Status)
	assert.True(t, resp.CostPrice.Equal(cost))
	assert.True(t, resp.StockQuantity.IsZero())
	assert.Len(t, repo.products, 1)
}

func TestProductServiceCreateRequiresHSN(t *testing.T) {
	service, _ := newProductService()

	req := validCreateRequest()
	req.HSNCode = ""

	_, err := service.Create(context.Background(), req)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_HSN_CODE", domainErr.Code)
}

func TestProductServiceUpdateAndPrice(t *testing.T) {
	service, _ := newProductService()
	created, err := service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, UpdateProductRequest{
		Name:  "Premium Emulsion Plus",
		Brand: "Asian Paints",
		Base:  "White Base",
	})
	require.NoError(t, err)
	assert.Equal(t, "Premium Emulsion Plus", updated.Name)
	assert.Equal(t, "White Base", updated.Base)

	priced, err := service.ChangePrice(context.Background(), created.ID, ChangePriceRequest{
		UnitPrice: decimal.NewFromInt(1650),
	})
	require.NoError(t, err)
	assert.True(t, priced.UnitPrice.Equal(decimal.NewFromInt(1650)))
}

func TestProductServiceSetGSTRate(t *testing.T) {
	service, _ := newProductService()
	created, err := service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = service.SetGSTRate(context.Background(), created.ID, SetGSTRateRequest{
		GSTRate: decimal.NewFromInt(12),
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_HSN_CODE", domainErr.Code)

	resp, err := service.SetGSTRate(context.Background(), created.ID, SetGSTRateRequest{
		GSTRate: decimal.NewFromInt(12),
		HSNCode: "3209",
	})
	require.NoError(t, err)
	assert.True(t, resp.GSTRate.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, "3209", resp.HSNCode)
}

func TestProductServiceDisableEnable(t *testing.T) {
	service, repo := newProductService()
	created, err := service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	disabled, err := service.Disable(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.ProductStatusDisabled, disabled.Status)

	enabled, err := service.Enable(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.ProductStatusActive, enabled.Status)
	assert.True(t, repo.products[created.ID].IsActive())
}

func TestProductServiceListLowStock(t *testing.T) {
	service, repo := newProductService()

	threshold := decimal.NewFromInt(5)
	req := validCreateRequest()
	req.LowStockThreshold = &threshold
	created, err := service.Create(context.Background(), req)
	require.NoError(t, err)

	repo.products[created.ID].StockQuantity = decimal.NewFromInt(3)

	low, err := service.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.True(t, low[0].IsLowStock)

	repo.products[created.ID].StockQuantity = decimal.NewFromInt(20)
	low, err = service.ListLowStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestProductServiceUploadImage(t *testing.T) {
	service, _ := newProductService()
	created, err := service.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = service.UploadImage(context.Background(), created.ID, "tin.jpg", []byte("jpeg"), "image/jpeg")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STORAGE_UNAVAILABLE", domainErr.Code)

	service.SetObjectStorage(stubStorage{})
	resp, err := service.UploadImage(context.Background(), created.ID, "tin.jpg", []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Contains(t, resp.ImageURL, "tin.jpg")
}

type stubStorage struct{}

func (stubStorage) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "https://files.local/" + key, nil
}

func (stubStorage) Delete(_ context.Context, _ string) error {
	return nil
}
