package storage

import (
	"Product-Scanner/internal/utils"
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAwsS3WithoutBucket(t *testing.T) {
	require.NoError(t, utils.ParseConfig([]byte(`AWS_S3_REGION: ap-southeast-1`)))
	t.Cleanup(func() { _ = utils.ParseConfig(nil) })

	_, err := NewAwsS3(context.Background())
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}

func TestUploadFileRejectsExtension(t *testing.T) {
	s := &awsS3{bucket: "scanner", region: "ap-southeast-1"}

	_, err := s.UploadFile(context.Background(), "upload", &multipart.FileHeader{Filename: "serials.csv"}, "spreadsheets", AllowSpreadsheet...)
	assert.ErrorIs(t, err, ErrFileTypeNotAllowed)
}

func TestGetPublicLinkKey(t *testing.T) {
	s := &awsS3{bucket: "scanner", region: "ap-southeast-1"}
	assert.Equal(t, "https://scanner.s3.ap-southeast-1.amazonaws.com/spreadsheets/a.xlsx", s.GetPublicLinkKey("spreadsheets/a.xlsx"))
}
