package scanner

import (
	"Product-Scanner/domain"
	"Product-Scanner/entities"
	"Product-Scanner/internal/testdb"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	deleteCalls int
	deleteErr   error
	searchErr   error
}

func (r *fakeRepository) GetActiveScanners(ctx context.Context, userID string) ([]*entities.Scanner, error) {
	return nil, nil
}

func (r *fakeRepository) SearchScanners(ctx context.Context, userID string, query string) ([]*entities.Scanner, error) {
	return nil, r.searchErr
}

func (r *fakeRepository) UpsertScanner(ctx context.Context, scanner *entities.Scanner) error {
	return nil
}

func (r *fakeRepository) DeleteScanner(ctx context.Context, userID string, id string) error {
	r.deleteCalls++
	return r.deleteErr
}

func newUser(t *testing.T, db *gorm.DB) string {
	t.Helper()
	user := &entities.User{Name: "Operator", Email: uuid.NewString() + "@example.com", Role: domain.RoleUser}
	require.NoError(t, db.Create(user).Error)
	return user.ID.String()
}

func TestUpsertScannerReplacesByName(t *testing.T) {
	db := testdb.New(t)
	svc := NewScannerService(NewScannerRepository(db))
	userID := newUser(t, db)
	ctx := context.Background()

	first, err := svc.UpsertScanner(ctx, userID, domain.UpsertScannerRequest{
		Name:     "Kamera Gudang",
		Type:     domain.ScannerTypeCamera,
		Metadata: map[string]any{"camera_id": "cam-1"},
	})
	require.NoError(t, err)
	assert.True(t, first.IsActive)
	require.NotNil(t, first.LastUsedAt)

	second, err := svc.UpsertScanner(ctx, userID, domain.UpsertScannerRequest{
		Name:     "Kamera Gudang",
		Type:     domain.ScannerTypeCamera,
		Metadata: map[string]any{"camera_id": "cam-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "cam-2", second.Metadata["camera_id"])

	list, err := svc.GetActiveScanners(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetActiveScannersOrdersByLastUse(t *testing.T) {
	db := testdb.New(t)
	repo := NewScannerRepository(db)
	svc := NewScannerService(repo)
	userID := newUser(t, db)
	owner := uuid.MustParse(userID)
	ctx := context.Background()

	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	require.NoError(t, repo.UpsertScanner(ctx, &entities.Scanner{UserID: owner, Name: "never", Type: domain.ScannerTypeManual, IsActive: true}))
	require.NoError(t, repo.UpsertScanner(ctx, &entities.Scanner{UserID: owner, Name: "older", Type: domain.ScannerTypeManual, IsActive: true, LastUsedAt: &older}))
	require.NoError(t, repo.UpsertScanner(ctx, &entities.Scanner{UserID: owner, Name: "newer", Type: domain.ScannerTypeCamera, IsActive: true, LastUsedAt: &newer}))

	list, err := svc.GetActiveScanners(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "newer", list[0].Name)
	assert.Equal(t, "older", list[1].Name)
	assert.Equal(t, "never", list[2].Name)

	other, err := svc.GetActiveScanners(ctx, newUser(t, db))
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSearchScanners(t *testing.T) {
	db := testdb.New(t)
	svc := NewScannerService(NewScannerRepository(db))
	userID := newUser(t, db)
	ctx := context.Background()

	for _, name := range []string{"Kamera Depan", "Scanner Manual", "100% Excel"} {
		_, err := svc.UpsertScanner(ctx, userID, domain.UpsertScannerRequest{Name: name, Type: domain.ScannerTypeManual})
		require.NoError(t, err)
	}

	res, err := svc.SearchScanners(ctx, userID, "KAMERA")
	require.NoError(t, err)
	require.Len(t, res.Scanners, 1)
	assert.Equal(t, "Kamera Depan", res.Scanners[0].Name)
	assert.Empty(t, res.Message)

	res, err = svc.SearchScanners(ctx, userID, "%")
	require.NoError(t, err)
	require.Len(t, res.Scanners, 1)
	assert.Equal(t, "100% Excel", res.Scanners[0].Name)

	res, err = svc.SearchScanners(ctx, userID, "zzz")
	require.NoError(t, err)
	assert.Empty(t, res.Scanners)
	assert.Equal(t, domain.MessageScannerNotFound, res.Message)
	assert.Equal(t, domain.SearchMessageClearAfterMs, res.ClearAfterMs)

	res, err = svc.SearchScanners(ctx, userID, "   ")
	require.NoError(t, err)
	assert.Empty(t, res.Scanners)
	assert.Empty(t, res.Message)
}

func TestSearchScannersStoreFailure(t *testing.T) {
	svc := NewScannerService(&fakeRepository{searchErr: errors.New("timeout")})

	_, err := svc.SearchScanners(context.Background(), uuid.NewString(), "kamera")
	assert.ErrorIs(t, err, domain.ErrRegistry)
}

func TestDeleteScannerRequiresConfirmation(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewScannerService(repo)

	err := svc.DeleteScanner(context.Background(), uuid.NewString(), uuid.NewString(), false)
	assert.ErrorIs(t, err, domain.ErrDeleteNotConfirmed)
	assert.Zero(t, repo.deleteCalls)

	require.NoError(t, svc.DeleteScanner(context.Background(), uuid.NewString(), uuid.NewString(), true))
	assert.Equal(t, 1, repo.deleteCalls)
}

func TestDeleteScannerWithMalformedID(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewScannerService(repo)

	err := svc.DeleteScanner(context.Background(), uuid.NewString(), "abc", true)
	assert.ErrorIs(t, err, domain.ErrScannerNotFound)
	assert.Zero(t, repo.deleteCalls)
}

func TestDeleteScanner(t *testing.T) {
	db := testdb.New(t)
	svc := NewScannerService(NewScannerRepository(db))
	userID := newUser(t, db)
	ctx := context.Background()

	saved, err := svc.UpsertScanner(ctx, userID, domain.UpsertScannerRequest{Name: "Kamera", Type: domain.ScannerTypeCamera})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteScanner(ctx, newUser(t, db), saved.ID, true), domain.ErrScannerNotFound)

	require.NoError(t, svc.DeleteScanner(ctx, userID, saved.ID, true))
	assert.ErrorIs(t, svc.DeleteScanner(ctx, userID, saved.ID, true), domain.ErrScannerNotFound)

	list, err := svc.GetActiveScanners(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestScannerServiceWithoutUserIsNoop(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewScannerService(repo)
	ctx := context.Background()

	list, err := svc.GetActiveScanners(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	saved, err := svc.UpsertScanner(ctx, "", domain.UpsertScannerRequest{Name: "x", Type: domain.ScannerTypeManual})
	require.NoError(t, err)
	assert.Empty(t, saved.ID)

	require.NoError(t, svc.DeleteScanner(ctx, "", uuid.NewString(), true))
	assert.Zero(t, repo.deleteCalls)
}
