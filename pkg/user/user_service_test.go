package user

import (
	"Product-Scanner/domain"
	"Product-Scanner/entities"
	"Product-Scanner/internal/testdb"
	"Product-Scanner/pkg/jwt"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// racingRepository reports no existing user but loses the insert race.
type racingRepository struct{}

func (racingRepository) RegisterUser(ctx context.Context, user *entities.User) error {
	return errDuplicate
}

func (racingRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (racingRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret")
	svc := NewUserService(NewUserRepository(testdb.New(t)), jwtService)
	ctx := context.Background()

	registered, err := svc.Register(ctx, domain.RegisterRequest{Name: "Sari", Email: " Sari@Example.com ", Password: "rahasia123"})
	require.NoError(t, err)
	assert.Equal(t, "sari@example.com", registered.Email)
	assert.Equal(t, domain.RoleUser, registered.Role)

	_, err = svc.Register(ctx, domain.RegisterRequest{Name: "Sari", Email: "sari@example.com", Password: "rahasia123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "sari@example.com", Password: "salah"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "rahasia123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "SARI@example.com", Password: "rahasia123"})
	require.NoError(t, err)

	userID, role, err := jwtService.GetUserIDByToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, domain.RoleUser, role)

	me, err := svc.GetMe(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Sari", me.Name)

	_, err = svc.GetMe(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegisterDuplicateRace(t *testing.T) {
	svc := NewUserService(racingRepository{}, jwt.NewJWTService("test-secret"))

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Name: "A", Email: "a@example.com", Password: "rahasia123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUserMapsUniqueViolation(t *testing.T) {
	db := testdb.New(t)
	repo := NewUserRepository(db)
	db.Callback().Create().Before("gorm:create").Register("test:unique_violation", func(tx *gorm.DB) {
		_ = tx.AddError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	})

	err := repo.RegisterUser(context.Background(), &entities.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, errDuplicate)
}
