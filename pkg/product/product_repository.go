package product

import (
	"Product-Scanner/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ProductRepository interface {
		GetProductBySerial(ctx context.Context, serial string) (*entities.Product, error)
		UpsertProducts(ctx context.Context, products []*entities.Product) error
	}

	productRepository struct {
		db *gorm.DB
	}
)

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// GetProductBySerial returns gorm.ErrRecordNotFound when no row matches exactly.
func (r *productRepository) GetProductBySerial(ctx context.Context, serial string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("serial_number = ?", serial).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) UpsertProducts(ctx context.Context, products []*entities.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "serial_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"product_name", "product_code", "packaging", "production_order",
			"production_date", "production_time", "location", "updated_at",
		}),
	}).Create(&products).Error
}
