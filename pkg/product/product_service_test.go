package product

import (
	"Product-Scanner/domain"
	"Product-Scanner/entities"
	"Product-Scanner/internal/testdb"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepository struct{}

func (failingRepository) GetProductBySerial(ctx context.Context, serial string) (*entities.Product, error) {
	return nil, errors.New("connection refused")
}

func (failingRepository) UpsertProducts(ctx context.Context, products []*entities.Product) error {
	return errors.New("connection refused")
}

func seedProducts(t *testing.T, repo ProductRepository, products ...*entities.Product) {
	t.Helper()
	require.NoError(t, repo.UpsertProducts(context.Background(), products))
}

func TestFindBySerialExactMatch(t *testing.T) {
	repo := NewProductRepository(testdb.New(t))
	seedProducts(t, repo,
		&entities.Product{SerialNumber: "SN-001", ProductName: "Widget", ProductCode: "WG-1", Location: "Gudang A"},
		&entities.Product{SerialNumber: "SN-0010", ProductName: "Widget XL"},
	)
	svc := NewProductService(repo)

	got, err := svc.FindBySerial(context.Background(), "SN-001")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.ProductName)
	assert.Equal(t, "WG-1", got.ProductCode)
	assert.Equal(t, "Gudang A", got.Location)
	assert.NotEmpty(t, got.ID)
}

func TestFindBySerialMisses(t *testing.T) {
	repo := NewProductRepository(testdb.New(t))
	seedProducts(t, repo, &entities.Product{SerialNumber: "SN-001", ProductName: "Widget"})
	svc := NewProductService(repo)

	for _, serial := range []string{"SN-999", "SN-00", "sn-001"} {
		_, err := svc.FindBySerial(context.Background(), serial)
		assert.ErrorIs(t, err, domain.ErrProductNotFound, serial)
	}

	_, err := svc.FindBySerial(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrEmptySerial)
}

func TestFindBySerialTransportFailure(t *testing.T) {
	svc := NewProductService(failingRepository{})

	_, err := svc.FindBySerial(context.Background(), "SN-001")
	assert.ErrorIs(t, err, domain.ErrLookupTransport)
	assert.NotErrorIs(t, err, domain.ErrProductNotFound)
}

func TestImportProductsUpserts(t *testing.T) {
	repo := NewProductRepository(testdb.New(t))
	svc := NewProductService(repo)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "products.yaml")
	doc := `
- serial_number: SN-001
  product_name: Widget
  packaging: Box
- serial_number: "  "
  product_name: Skipped
- serial_number: SN-002
  product_name: Gadget
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	n, err := svc.ImportProducts(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	updated := `
- serial_number: SN-001
  product_name: Widget v2
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))
	_, err = svc.ImportProducts(ctx, path)
	require.NoError(t, err)

	got, err := svc.FindBySerial(ctx, "SN-001")
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", got.ProductName)
}
