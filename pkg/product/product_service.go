package product

import (
	"Product-Scanner/domain"
	"Product-Scanner/entities"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
)

type (
	ProductService interface {
		FindBySerial(ctx context.Context, serial string) (domain.ProductResponse, error)
		ImportProducts(ctx context.Context, path string) (int, error)
	}

	productService struct {
		productRepository ProductRepository
	}
)

func NewProductService(productRepository ProductRepository) ProductService {
	return &productService{
		productRepository: productRepository,
	}
}

// FindBySerial does an exact match. A miss is domain.ErrProductNotFound; any
// other store failure is wrapped in domain.ErrLookupTransport.
func (s *productService) FindBySerial(ctx context.Context, serial string) (domain.ProductResponse, error) {
	if serial == "" {
		return domain.ProductResponse{}, domain.ErrEmptySerial
	}

	product, err := s.productRepository.GetProductBySerial(ctx, serial)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProductResponse{}, domain.ErrProductNotFound
		}
		return domain.ProductResponse{}, fmt.Errorf("%w: %v", domain.ErrLookupTransport, err)
	}

	return ToProductResponse(product), nil
}

// ImportProducts loads a YAML list of products and upserts them by serial number.
func (s *productService) ImportProducts(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading product file: %w", err)
	}

	var products []*entities.Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return 0, fmt.Errorf("parsing product file: %w", err)
	}

	valid := products[:0]
	for _, p := range products {
		p.SerialNumber = strings.TrimSpace(p.SerialNumber)
		if p.SerialNumber == "" {
			continue
		}
		valid = append(valid, p)
	}

	if err := s.productRepository.UpsertProducts(ctx, valid); err != nil {
		return 0, fmt.Errorf("saving products: %w", err)
	}
	return len(valid), nil
}

func ToProductResponse(p *entities.Product) domain.ProductResponse {
	return domain.ProductResponse{
		ID:              p.ID.String(),
		SerialNumber:    p.SerialNumber,
		ProductName:     p.ProductName,
		ProductCode:     p.ProductCode,
		Packaging:       p.Packaging,
		ProductionOrder: p.ProductionOrder,
		ProductionDate:  p.ProductionDate,
		ProductionTime:  p.ProductionTime,
		Location:        p.Location,
	}
}
