package excel

import (
	"Product-Scanner/domain"
	"Product-Scanner/internal/utils/storage"
	"Product-Scanner/pkg/scan"
	"context"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/gofiber/fiber/v2/log"
	"github.com/xuri/excelize/v2"
)

type (
	// Notifier delivers an HTML summary, mailing.SendMail in production.
	Notifier func(toEmail string, subject string, body string) error

	ExcelService interface {
		VerifySpreadsheet(ctx context.Context, userID string, req domain.VerifySpreadsheetRequest) (domain.VerifySpreadsheetResponse, error)
	}

	excelService struct {
		products scan.ProductFinder
		history  scan.HistoryRecorder
		s3       storage.AwsS3
		notify   Notifier
	}
)

// NewExcelService wires the verifier. s3 and notify may be nil.
func NewExcelService(products scan.ProductFinder, history scan.HistoryRecorder, s3 storage.AwsS3, notify Notifier) ExcelService {
	return &excelService{
		products: products,
		history:  history,
		s3:       s3,
		notify:   notify,
	}
}

func (s *excelService) VerifySpreadsheet(ctx context.Context, userID string, req domain.VerifySpreadsheetRequest) (domain.VerifySpreadsheetResponse, error) {
	ext := strings.ToLower(filepath.Ext(req.File.Filename))
	if !slices.Contains(storage.AllowSpreadsheet, ext) {
		return domain.VerifySpreadsheetResponse{}, fmt.Errorf("%w: unsupported extension %q", domain.ErrInvalidSpreadsheet, ext)
	}

	serials, err := readSerials(req)
	if err != nil {
		return domain.VerifySpreadsheetResponse{}, err
	}
	if len(serials) == 0 {
		return domain.VerifySpreadsheetResponse{}, domain.ErrEmptySpreadsheet
	}

	res := domain.VerifySpreadsheetResponse{
		FileURL: s.archive(ctx, userID, req),
		Total:   len(serials),
		Rows:    make([]domain.SpreadsheetRowResult, 0, len(serials)),
	}

	for _, sr := range serials {
		row := domain.SpreadsheetRowResult{Row: sr.row, Serial: sr.value}

		product, err := s.products.FindBySerial(ctx, sr.value)
		switch {
		case err == nil:
			row.Status = domain.StatusSuccess
			row.Product = &product
			res.Found++
			if s.history != nil {
				s.history.Record(domain.ScanEvent{UserID: userID, Value: sr.value, Method: domain.MethodExcel})
			}
		case errors.Is(err, domain.ErrProductNotFound):
			row.Status = domain.StatusError
			row.Message = domain.MessageProductNotFound
			res.NotFound++
		default:
			log.Errorw("spreadsheet lookup failed", "user_id", userID, "serial", sr.value, "error", err)
			row.Status = domain.StatusError
			row.Message = domain.MessageLookupFailed
			res.Failed++
		}
		res.Rows = append(res.Rows, row)
	}

	if req.NotifyEmail != "" && s.notify != nil {
		go s.sendSummary(req.NotifyEmail, req.File.Filename, res)
	}
	return res, nil
}

type serialRow struct {
	row   int
	value string
}

// readSerials returns the first column of the first sheet. A first row
// whose cell holds no digit is treated as a header.
func readSerials(req domain.VerifySpreadsheetRequest) ([]serialRow, error) {
	src, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}

	var serials []serialRow
	for i, cells := range rows {
		if len(cells) == 0 {
			continue
		}
		value := strings.TrimSpace(cells[0])
		if value == "" {
			continue
		}
		if i == 0 && !strings.ContainsFunc(value, unicode.IsDigit) {
			continue
		}
		serials = append(serials, serialRow{row: i + 1, value: value})
	}
	return serials, nil
}

// archive keeps a copy of the upload. Failures only cost the link.
func (s *excelService) archive(ctx context.Context, userID string, req domain.VerifySpreadsheetRequest) string {
	if s.s3 == nil {
		return ""
	}

	name := fmt.Sprintf("scan-%s-%d", userID, time.Now().UnixNano())
	objectKey, err := s.s3.UploadFile(ctx, name, req.File, "spreadsheets", storage.AllowSpreadsheet...)
	if err != nil {
		log.Warnw("failed to archive spreadsheet", "user_id", userID, "file", req.File.Filename, "error", err)
		return ""
	}
	return s.s3.GetPublicLinkKey(objectKey)
}

func (s *excelService) sendSummary(toEmail string, fileName string, res domain.VerifySpreadsheetResponse) {
	subject := "Hasil verifikasi produk: " + fileName
	if err := s.notify(toEmail, subject, summaryBody(fileName, res)); err != nil {
		log.Warnw("failed to send spreadsheet summary", "to", toEmail, "error", err)
	}
}

func summaryBody(fileName string, res domain.VerifySpreadsheetResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h3>Hasil verifikasi %s</h3>", html.EscapeString(fileName))
	fmt.Fprintf(&b, "<p>Total: %d, ditemukan: %d, tidak ditemukan: %d, gagal: %d</p>",
		res.Total, res.Found, res.NotFound, res.Failed)
	if res.FileURL != "" {
		fmt.Fprintf(&b, `<p><a href="%s">Unduh file</a></p>`, html.EscapeString(res.FileURL))
	}

	b.WriteString("<table><tr><th>Baris</th><th>Serial</th><th>Produk</th></tr>")
	for _, row := range res.Rows {
		name := row.Message
		if row.Product != nil {
			name = row.Product.ProductName
		}
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%s</td></tr>",
			row.Row, html.EscapeString(row.Serial), html.EscapeString(name))
	}
	b.WriteString("</table>")
	return b.String()
}
