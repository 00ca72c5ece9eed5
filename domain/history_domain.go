package domain

import "time"

const (
	MethodCamera = "camera"
	MethodManual = "manual"
	MethodExcel  = "excel"
)

var (
	MessageSuccessGetHistory = "scan history retrieved successfully"
	MessageFailedGetHistory  = "failed to retrieve scan history"
)

type (
	ScanEvent struct {
		UserID string
		Value  string
		Method string
	}

	ScanHistoryResponse struct {
		ID           string    `json:"id"`
		ScannedValue string    `json:"scanned_value"`
		Method       string    `json:"method"`
		CreatedAt    time.Time `json:"created_at"`
	}
)
