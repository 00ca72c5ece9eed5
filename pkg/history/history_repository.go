package history

import (
	"Product-Scanner/entities"
	"context"

	"gorm.io/gorm"
)

type (
	HistoryRepository interface {
		CreateScanHistory(ctx context.Context, history *entities.ScanHistory) error
		GetScanHistory(ctx context.Context, userID string, method string, page, limit int) ([]*entities.ScanHistory, int64, error)
	}

	historyRepository struct {
		db *gorm.DB
	}
)

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) CreateScanHistory(ctx context.Context, history *entities.ScanHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

func (r *historyRepository) GetScanHistory(ctx context.Context, userID string, method string, page, limit int) ([]*entities.ScanHistory, int64, error) {
	var histories []*entities.ScanHistory
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.ScanHistory{}).Where("user_id = ?", userID)
	if method != "all" && method != "" {
		query = query.Where("method = ?", method)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&histories).Error; err != nil {
		return nil, 0, err
	}

	return histories, count, nil
}
