package history

import (
	"Product-Scanner/domain"
	"context"
)

type (
	HistoryService interface {
		GetScanHistory(ctx context.Context, userID string, method string, page, limit int) ([]domain.ScanHistoryResponse, int64, error)
	}

	historyService struct {
		historyRepository HistoryRepository
	}
)

func NewHistoryService(historyRepository HistoryRepository) HistoryService {
	return &historyService{historyRepository: historyRepository}
}

func (s *historyService) GetScanHistory(ctx context.Context, userID string, method string, page, limit int) ([]domain.ScanHistoryResponse, int64, error) {
	histories, count, err := s.historyRepository.GetScanHistory(ctx, userID, method, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.ScanHistoryResponse, 0, len(histories))
	for _, h := range histories {
		response = append(response, domain.ScanHistoryResponse{
			ID:           h.ID.String(),
			ScannedValue: h.ScannedValue,
			Method:       h.Method,
			CreatedAt:    h.CreatedAt,
		})
	}
	return response, count, nil
}
