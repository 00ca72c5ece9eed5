package scanner

import (
	"Product-Scanner/entities"
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ScannerRepository interface {
		GetActiveScanners(ctx context.Context, userID string) ([]*entities.Scanner, error)
		SearchScanners(ctx context.Context, userID string, query string) ([]*entities.Scanner, error)
		UpsertScanner(ctx context.Context, scanner *entities.Scanner) error
		DeleteScanner(ctx context.Context, userID string, id string) error
	}

	scannerRepository struct {
		db *gorm.DB
	}
)

func NewScannerRepository(db *gorm.DB) ScannerRepository {
	return &scannerRepository{db: db}
}

// GetActiveScanners orders by last use, never-used profiles last.
func (r *scannerRepository) GetActiveScanners(ctx context.Context, userID string) ([]*entities.Scanner, error) {
	var scanners []*entities.Scanner
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("last_used_at IS NULL, last_used_at DESC").
		Find(&scanners).Error; err != nil {
		return nil, err
	}
	return scanners, nil
}

func (r *scannerRepository) SearchScanners(ctx context.Context, userID string, query string) ([]*entities.Scanner, error) {
	var scanners []*entities.Scanner
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) LIKE ? ESCAPE '\\'", userID, pattern).
		Order("created_at DESC").
		Find(&scanners).Error; err != nil {
		return nil, err
	}
	return scanners, nil
}

// UpsertScanner inserts or replaces the profile keyed by (user_id, name) and
// reloads it so scanner carries the stored id and created_at.
func (r *scannerRepository) UpsertScanner(ctx context.Context, scanner *entities.Scanner) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "metadata", "is_active", "last_used_at", "updated_at"}),
	}).Create(scanner).Error
	if err != nil {
		return err
	}

	var stored entities.Scanner
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", scanner.UserID, scanner.Name).
		First(&stored).Error; err != nil {
		return err
	}
	*scanner = stored
	return nil
}

// DeleteScanner hard-deletes one profile of the user. It returns
// gorm.ErrRecordNotFound when nothing matched.
func (r *scannerRepository) DeleteScanner(ctx context.Context, userID string, id string) error {
	result := r.db.WithContext(ctx).Unscoped().
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.Scanner{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
