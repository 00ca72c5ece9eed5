package excel

import (
	"Product-Scanner/domain"
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubFinder map[string]domain.ProductResponse

func (f stubFinder) FindBySerial(ctx context.Context, serial string) (domain.ProductResponse, error) {
	if serial == "BROKEN" {
		return domain.ProductResponse{}, errors.New("timeout")
	}
	p, ok := f[serial]
	if !ok {
		return domain.ProductResponse{}, domain.ErrProductNotFound
	}
	return p, nil
}

type stubHistory struct {
	mu     sync.Mutex
	events []domain.ScanEvent
}

func (h *stubHistory) Record(event domain.ScanEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

type stubStorage struct {
	err      error
	uploaded []string
}

func (s *stubStorage) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	key := folder + "/" + fileName + ".xlsx"
	s.uploaded = append(s.uploaded, key)
	return key, nil
}

func (s *stubStorage) DeleteFile(ctx context.Context, objectKey string) error {
	return nil
}

func (s *stubStorage) GetPublicLinkKey(objectKey string) string {
	return "https://files.example.com/" + objectKey
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func workbook(t *testing.T, column ...string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, v := range column {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

var products = stubFinder{
	"SN-001": {SerialNumber: "SN-001", ProductName: "Widget"},
	"SN-002": {SerialNumber: "SN-002", ProductName: "Gadget"},
}

func TestVerifySpreadsheet(t *testing.T) {
	history := &stubHistory{}
	s3 := &stubStorage{}
	svc := NewExcelService(products, history, s3, nil)

	req := domain.VerifySpreadsheetRequest{
		File: fileHeader(t, "batch.xlsx", workbook(t, "Serial Number", "SN-001", "", "SN-999", "SN-002", "BROKEN")),
	}
	res, err := svc.VerifySpreadsheet(context.Background(), "user-1", req)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.Found)
	assert.Equal(t, 1, res.NotFound)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, s3.uploaded, 1)
	assert.Equal(t, "https://files.example.com/"+s3.uploaded[0], res.FileURL)

	require.Len(t, res.Rows, 4)
	assert.Equal(t, 2, res.Rows[0].Row)
	assert.Equal(t, "Widget", res.Rows[0].Product.ProductName)
	assert.Equal(t, 4, res.Rows[1].Row)
	assert.Equal(t, domain.MessageProductNotFound, res.Rows[1].Message)
	assert.Equal(t, domain.MessageLookupFailed, res.Rows[3].Message)

	require.Len(t, history.events, 2)
	for _, e := range history.events {
		assert.Equal(t, domain.MethodExcel, e.Method)
		assert.Equal(t, "user-1", e.UserID)
	}
}

func TestVerifySpreadsheetWithoutHeader(t *testing.T) {
	svc := NewExcelService(products, nil, nil, nil)

	res, err := svc.VerifySpreadsheet(context.Background(), "user-1", domain.VerifySpreadsheetRequest{
		File: fileHeader(t, "batch.xlsx", workbook(t, "SN-001", "SN-002")),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Found)
	assert.Empty(t, res.FileURL)
}

func TestVerifySpreadsheetArchiveFailureIsNotFatal(t *testing.T) {
	svc := NewExcelService(products, nil, &stubStorage{err: errors.New("access denied")}, nil)

	res, err := svc.VerifySpreadsheet(context.Background(), "user-1", domain.VerifySpreadsheetRequest{
		File: fileHeader(t, "batch.xlsx", workbook(t, "SN-001")),
	})
	require.NoError(t, err)
	assert.Empty(t, res.FileURL)
	assert.Equal(t, 1, res.Found)
}

func TestVerifySpreadsheetRejectsBadInput(t *testing.T) {
	svc := NewExcelService(products, nil, nil, nil)
	ctx := context.Background()

	_, err := svc.VerifySpreadsheet(ctx, "user-1", domain.VerifySpreadsheetRequest{
		File: fileHeader(t, "batch.csv", []byte("SN-001\n")),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSpreadsheet)

	_, err = svc.VerifySpreadsheet(ctx, "user-1", domain.VerifySpreadsheetRequest{
		File: fileHeader(t, "batch.xlsx", []byte("not a workbook")),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSpreadsheet)

	_, err = svc.VerifySpreadsheet(ctx, "user-1", domain.VerifySpreadsheetRequest{
		File: fileHeader(t, "batch.xlsx", workbook(t, "Serial Number")),
	})
	assert.ErrorIs(t, err, domain.ErrEmptySpreadsheet)
}

func TestVerifySpreadsheetMailsSummary(t *testing.T) {
	type mail struct{ to, subject, body string }
	sent := make(chan mail, 1)
	svc := NewExcelService(products, nil, nil, func(to, subject, body string) error {
		sent <- mail{to, subject, body}
		return nil
	})

	_, err := svc.VerifySpreadsheet(context.Background(), "user-1", domain.VerifySpreadsheetRequest{
		File:        fileHeader(t, "batch.xlsx", workbook(t, "SN-001", "<b>SN-404</b>")),
		NotifyEmail: "ops@example.com",
	})
	require.NoError(t, err)

	select {
	case m := <-sent:
		assert.Equal(t, "ops@example.com", m.to)
		assert.Contains(t, m.subject, "batch.xlsx")
		assert.Contains(t, m.body, "Widget")
		assert.Contains(t, m.body, "&lt;b&gt;SN-404&lt;/b&gt;")
	case <-time.After(2 * time.Second):
		t.Fatal("summary not sent")
	}
}
