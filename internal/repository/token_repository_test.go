package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"sentinel-auth-service/internal/model"
	"sentinel-auth-service/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tokenColumnsQuery          = "SELECT uuid, user_uuid, token_hash, expires_at, revoked_at, created_at FROM refresh_tokens WHERE token_hash = $1"
	tokenColumnsForUpdateQuery = tokenColumnsQuery + " FOR UPDATE"
)

func tokenRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"uuid", "user_uuid", "token_hash", "expires_at", "revoked_at", "created_at"})
}

func TestTokenCreate_Success(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewRefreshTokenRepository(db)

	now := time.Now()
	expiresAt := now.Add(168 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO refresh_tokens")).
		WithArgs("r1", "u1", "digest", expiresAt).
		WillReturnRows(tokenRows().AddRow("r1", "u1", "digest", expiresAt, nil, now))

	created, err := repo.Create(context.Background(), db.DB, &model.RefreshToken{
		UUID:      "r1",
		UserUUID:  "u1",
		TokenHash: "digest",
		ExpiresAt: expiresAt,
	})

	require.NoError(t, err)
	assert.Equal(t, "r1", created.UUID)
	assert.Equal(t, "u1", created.UserUUID)
	assert.Nil(t, created.RevokedAt)
	assert.False(t, created.Revoked())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenFindByHash_Found(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewRefreshTokenRepository(db)

	now := time.Now()
	revokedAt := now.Add(-time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(tokenColumnsQuery)).
		WithArgs("digest").
		WillReturnRows(tokenRows().AddRow("r1", "u1", "digest", now.Add(time.Hour), revokedAt, now))

	token, err := repo.FindByHash(context.Background(), db.DB, "digest")

	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "u1", token.UserUUID)
	assert.True(t, token.Revoked())
	assert.False(t, token.Expired(now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenFindByHash_NotFound(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewRefreshTokenRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(tokenColumnsQuery)).
		WithArgs("unknown-digest").
		WillReturnRows(tokenRows())

	token, err := repo.FindByHash(context.Background(), db.DB, "unknown-digest")

	assert.NoError(t, err)
	assert.Nil(t, token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Чтение под ротацию обязано блокировать строку: без FOR UPDATE две конкурентные
// транзакции обе видят неотозванный токен и обе успешно его ротируют
func TestTokenFindByHashForUpdate_LocksRow(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewRefreshTokenRepository(db)

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(tokenColumnsForUpdateQuery)).
		WithArgs("digest").
		WillReturnRows(tokenRows().AddRow("r1", "u1", "digest", now.Add(time.Hour), nil, now))

	token, err := repo.FindByHashForUpdate(context.Background(), db.DB, "digest")

	require.NoError(t, err)
	require.NotNil(t, token)
	assert.False(t, token.Revoked())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenFindByHashForUpdate_NotFound(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewRefreshTokenRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(tokenColumnsForUpdateQuery)).
		WithArgs("unknown-digest").
		WillReturnRows(tokenRows())

	token, err := repo.FindByHashForUpdate(context.Background(), db.DB, "unknown-digest")

	assert.NoError(t, err)
	assert.Nil(t, token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Повторный отзыв и отзыв неизвестного хэша затрагивают 0 строк и не являются ошибкой
func TestTokenRevoke_Idempotent(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewRefreshTokenRepository(db)

	query := regexp.QuoteMeta("UPDATE refresh_tokens SET revoked_at = NOW() WHERE token_hash = $1 AND revoked_at IS NULL")

	mock.ExpectExec(query).WithArgs("digest").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("digest").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(query).WithArgs("unknown-digest").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Revoke(context.Background(), db.DB, "digest"))
	assert.NoError(t, repo.Revoke(context.Background(), db.DB, "digest"))
	assert.NoError(t, repo.Revoke(context.Background(), db.DB, "unknown-digest"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Полный цикл ротации в рамках одной транзакции:
// блокирующий поиск, отзыв, вставка, commit
func TestTokenRotation_InTransaction(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewRefreshTokenRepository(db)
	ctx := context.Background()

	now := time.Now()
	expiresAt := now.Add(168 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(tokenColumnsForUpdateQuery)).
		WithArgs("old-digest").
		WillReturnRows(tokenRows().AddRow("r1", "u1", "old-digest", expiresAt, nil, now))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_tokens SET revoked_at = NOW()")).
		WithArgs("old-digest").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO refresh_tokens")).
		WithArgs("r2", "u1", "new-digest", expiresAt).
		WillReturnRows(tokenRows().AddRow("r2", "u1", "new-digest", expiresAt, nil, now))
	mock.ExpectCommit()

	tx, rollback, commit, err := repo.BeginTX(ctx)
	require.NoError(t, err)
	defer rollback()

	found, err := repo.FindByHashForUpdate(ctx, tx, "old-digest")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.Revoked())

	require.NoError(t, repo.Revoke(ctx, tx, "old-digest"))

	created, err := repo.Create(ctx, tx, &model.RefreshToken{
		UUID:      "r2",
		UserUUID:  found.UserUUID,
		TokenHash: "new-digest",
		ExpiresAt: expiresAt,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-digest", created.TokenHash)

	require.NoError(t, commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Rollback после commit: defer rollback() в сервисе не должен ронять успешный путь
func TestBeginTX_RollbackAfterCommit(t *testing.T) {
	db, mock := newTestDatabase(t)
	repo := repository.NewRefreshTokenRepository(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, rollback, commit, err := repo.BeginTX(context.Background())
	require.NoError(t, err)

	require.NoError(t, commit())
	assert.Error(t, rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
