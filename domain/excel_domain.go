package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessVerifySpreadsheet = "spreadsheet verified successfully"
	MessageFailedVerifySpreadsheet  = "failed to verify spreadsheet"

	ErrInvalidSpreadsheet = errors.New("invalid spreadsheet file")
	ErrEmptySpreadsheet   = errors.New("spreadsheet has no serial numbers")
)

type (
	VerifySpreadsheetRequest struct {
		File        *multipart.FileHeader `form:"file" validate:"required"`
		NotifyEmail string                `form:"notify_email" validate:"omitempty,email"`
	}

	SpreadsheetRowResult struct {
		Row     int              `json:"row"`
		Serial  string           `json:"serial"`
		Status  string           `json:"status"` // "success" or "error"
		Message string           `json:"message,omitempty"`
		Product *ProductResponse `json:"product,omitempty"`
	}

	VerifySpreadsheetResponse struct {
		FileURL  string                 `json:"file_url,omitempty"`
		Total    int                    `json:"total"`
		Found    int                    `json:"found"`
		NotFound int                    `json:"not_found"`
		Failed   int                    `json:"failed"`
		Rows     []SpreadsheetRowResult `json:"rows"`
	}
)
