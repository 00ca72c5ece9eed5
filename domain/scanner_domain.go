package domain

import (
	"errors"
	"time"
)

const (
	ScannerTypeCamera = "camera"
	ScannerTypeManual = "manual"
	ScannerTypeExcel  = "excel"

	// SearchMessageClearAfterMs tells the UI how long to keep the search "not found" notice.
	SearchMessageClearAfterMs = 3000
)

var (
	MessageSuccessGetScanners    = "scanners retrieved successfully"
	MessageSuccessSearchScanners = "scanner search completed"
	MessageSuccessSaveScanner    = "scanner saved successfully"
	MessageSuccessDeleteScanner  = "scanner deleted successfully"

	// Copy shown in the scanner UI.
	MessageScannerNotFound     = "Scanner tidak ditemukan"
	MessageFailedScannerAction = "Gagal memproses data scanner"
	MessageConfirmDelete       = "Konfirmasi diperlukan untuk menghapus scanner"

	ErrRegistry           = errors.New("scanner registry failure")
	ErrScannerNotFound    = errors.New("scanner not found")
	ErrDeleteNotConfirmed = errors.New("scanner deletion not confirmed")
)

type (
	UpsertScannerRequest struct {
		Name     string         `json:"name" validate:"required,max=100"`
		Type     string         `json:"type" validate:"required,oneof=camera manual excel"`
		Metadata map[string]any `json:"metadata"`
	}

	ScannerResponse struct {
		ID         string         `json:"id"`
		Name       string         `json:"name"`
		Type       string         `json:"type"`
		Metadata   map[string]any `json:"metadata,omitempty"`
		IsActive   bool           `json:"is_active"`
		CreatedAt  time.Time      `json:"created_at"`
		LastUsedAt *time.Time     `json:"last_used_at,omitempty"`
	}

	SearchScannersResponse struct {
		Scanners     []ScannerResponse `json:"scanners"`
		Message      string            `json:"message,omitempty"`
		ClearAfterMs int               `json:"clear_after_ms,omitempty"`
	}
)
