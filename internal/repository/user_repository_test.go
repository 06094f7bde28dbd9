package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"sentinel-auth-service/config"
	"sentinel-auth-service/internal/autherr"
	"sentinel-auth-service/internal/model"
	"sentinel-auth-service/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &config.Database{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func TestCreateUser_Success(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewUserRepository(db)

	createdAt := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "Alice", "alice@example.com", "bcrypt-hash").
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "name", "email", "created_at"}).
			AddRow("u1", "Alice", "alice@example.com", createdAt))

	user, err := repo.CreateUser(context.Background(), db.DB, &model.User{
		UUID:         "u1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "bcrypt-hash",
	})

	require.NoError(t, err)
	assert.Equal(t, "u1", user.UUID)
	assert.Equal(t, "alice@example.com", user.Email)
	// RETURNING не включает password_hash: хэш не возвращается из БД
	assert.Empty(t, user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u2", "Bob", "alice@example.com", "bcrypt-hash").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := repo.CreateUser(context.Background(), db.DB, &model.User{
		UUID:         "u2",
		Name:         "Bob",
		Email:        "alice@example.com",
		PasswordHash: "bcrypt-hash",
	})

	assert.ErrorIs(t, err, autherr.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_Found(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewUserRepository(db)

	createdAt := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT uuid, name, email, password_hash, created_at FROM users WHERE email = $1")).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "name", "email", "password_hash", "created_at"}).
			AddRow("u1", "Alice", "alice@example.com", "bcrypt-hash", createdAt))

	user, err := repo.FindByEmail(context.Background(), db.DB, "alice@example.com")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.UUID)
	assert.Equal(t, "bcrypt-hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_NotFound(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT uuid, name, email, password_hash, created_at FROM users WHERE email = $1")).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "name", "email", "password_hash", "created_at"}))

	user, err := repo.FindByEmail(context.Background(), db.DB, "nobody@example.com")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUUID_NotFound(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT uuid, name, email, password_hash, created_at FROM users WHERE uuid = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "name", "email", "password_hash", "created_at"}))

	user, err := repo.FindByUUID(context.Background(), db.DB, "missing")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}
