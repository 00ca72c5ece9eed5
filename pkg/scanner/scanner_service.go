package scanner

import (
	"Product-Scanner/domain"
	"Product-Scanner/entities"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	// ScannerService is scoped to one owner per call. An empty userID means
	// there is no authenticated user and every operation is a silent no-op.
	ScannerService interface {
		GetActiveScanners(ctx context.Context, userID string) ([]domain.ScannerResponse, error)
		SearchScanners(ctx context.Context, userID string, query string) (domain.SearchScannersResponse, error)
		UpsertScanner(ctx context.Context, userID string, req domain.UpsertScannerRequest) (domain.ScannerResponse, error)
		DeleteScanner(ctx context.Context, userID string, id string, confirmed bool) error
	}

	scannerService struct {
		scannerRepository ScannerRepository
	}
)

func NewScannerService(scannerRepository ScannerRepository) ScannerService {
	return &scannerService{
		scannerRepository: scannerRepository,
	}
}

func (s *scannerService) GetActiveScanners(ctx context.Context, userID string) ([]domain.ScannerResponse, error) {
	if userID == "" {
		return []domain.ScannerResponse{}, nil
	}

	scanners, err := s.scannerRepository.GetActiveScanners(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistry, err)
	}
	return toScannerResponses(scanners), nil
}

func (s *scannerService) SearchScanners(ctx context.Context, userID string, query string) (domain.SearchScannersResponse, error) {
	query = strings.TrimSpace(query)
	if userID == "" || query == "" {
		return domain.SearchScannersResponse{Scanners: []domain.ScannerResponse{}}, nil
	}

	scanners, err := s.scannerRepository.SearchScanners(ctx, userID, query)
	if err != nil {
		return domain.SearchScannersResponse{}, fmt.Errorf("%w: %v", domain.ErrRegistry, err)
	}

	res := domain.SearchScannersResponse{Scanners: toScannerResponses(scanners)}
	if len(scanners) == 0 {
		res.Message = domain.MessageScannerNotFound
		res.ClearAfterMs = domain.SearchMessageClearAfterMs
	}
	return res, nil
}

func (s *scannerService) UpsertScanner(ctx context.Context, userID string, req domain.UpsertScannerRequest) (domain.ScannerResponse, error) {
	if userID == "" {
		return domain.ScannerResponse{}, nil
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ScannerResponse{}, domain.ErrParseUUID
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ScannerResponse{}, fmt.Errorf("%w: empty scanner name", domain.ErrRegistry)
	}
	switch req.Type {
	case domain.ScannerTypeCamera, domain.ScannerTypeManual, domain.ScannerTypeExcel:
	default:
		return domain.ScannerResponse{}, fmt.Errorf("%w: unknown scanner type %q", domain.ErrRegistry, req.Type)
	}

	now := time.Now()
	scanner := &entities.Scanner{
		UserID:     userUUID,
		Name:       name,
		Type:       req.Type,
		Metadata:   datatypes.JSONMap(req.Metadata),
		IsActive:   true,
		LastUsedAt: &now,
	}

	if err := s.scannerRepository.UpsertScanner(ctx, scanner); err != nil {
		return domain.ScannerResponse{}, fmt.Errorf("%w: %v", domain.ErrRegistry, err)
	}
	return toScannerResponse(scanner), nil
}

// DeleteScanner refuses to touch the store until the user has confirmed.
func (s *scannerService) DeleteScanner(ctx context.Context, userID string, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrDeleteNotConfirmed
	}
	if userID == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrScannerNotFound
	}

	if err := s.scannerRepository.DeleteScanner(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrScannerNotFound
		}
		return fmt.Errorf("%w: %v", domain.ErrRegistry, err)
	}
	return nil
}

func toScannerResponses(scanners []*entities.Scanner) []domain.ScannerResponse {
	res := make([]domain.ScannerResponse, 0, len(scanners))
	for _, sc := range scanners {
		res = append(res, toScannerResponse(sc))
	}
	return res
}

func toScannerResponse(sc *entities.Scanner) domain.ScannerResponse {
	return domain.ScannerResponse{
		ID:         sc.ID.String(),
		Name:       sc.Name,
		Type:       sc.Type,
		Metadata:   sc.Metadata,
		IsActive:   sc.IsActive,
		CreatedAt:  sc.CreatedAt,
		LastUsedAt: sc.LastUsedAt,
	}
}
