package repository

import (
	"context"
	"database/sql"
	"errors"

	"sentinel-auth-service/config"
	"sentinel-auth-service/internal/model"
	"sentinel-auth-service/internal/util"

	"github.com/jmoiron/sqlx"
)

type RefreshTokenRepository struct {
	*config.Database
}

func NewRefreshTokenRepository(database *config.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{database}
}

// Create сохраняет дайджест refresh-токена в базе данных.
// Сырой секрет в БД не попадает никогда, только его SHA-256 хэш.
func (r *RefreshTokenRepository) Create(ctx context.Context, exec sqlx.ExtContext, token *model.RefreshToken) (*model.RefreshToken, error) {
	query := `INSERT INTO refresh_tokens (uuid, user_uuid, token_hash, expires_at)
				VALUES ($1, $2, $3, $4)
				RETURNING uuid, user_uuid, token_hash, expires_at, revoked_at, created_at
	`

	created := &model.RefreshToken{}
	err := exec.QueryRowxContext(ctx, query,
		token.UUID,
		token.UserUUID,
		token.TokenHash,
		token.ExpiresAt,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[TokenRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// FindByHash ищет refresh-токен по дайджесту секрета.
// Возвращает (nil, nil), если токен не найден: отсутствие записи — не инфраструктурная ошибка.
func (r *RefreshTokenRepository) FindByHash(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.RefreshToken, error) {
	query := `SELECT uuid, user_uuid, token_hash, expires_at, revoked_at, created_at FROM refresh_tokens WHERE token_hash = $1`

	return r.findByHash(ctx, exec, query, tokenHash)
}

// FindByHashForUpdate ищет refresh-токен и блокирует строку до конца транзакции.
// Без FOR UPDATE две конкурентные транзакции на уровне READ COMMITTED обе
// читают неотозванную строку и обе успешно завершают ротацию одного секрета.
// С блокировкой вторая транзакция ждет первую и после ее коммита перечитывает
// строку уже с проставленным revoked_at.
func (r *RefreshTokenRepository) FindByHashForUpdate(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.RefreshToken, error) {
	query := `SELECT uuid, user_uuid, token_hash, expires_at, revoked_at, created_at FROM refresh_tokens WHERE token_hash = $1 FOR UPDATE`

	return r.findByHash(ctx, exec, query, tokenHash)
}

func (r *RefreshTokenRepository) findByHash(ctx context.Context, exec sqlx.ExtContext, query string, tokenHash string) (*model.RefreshToken, error) {
	token := &model.RefreshToken{}
	err := sqlx.GetContext(ctx, exec, token, query, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[TokenRepo] ошибка при выполнении запроса", err)
	}

	return token, nil
}

// Revoke проставляет revoked_at у токена с указанным дайджестом.
// Операция идемпотентна: уже отозванный или несуществующий хэш не является ошибкой,
// поэтому количество затронутых строк не проверяется.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, exec sqlx.ExtContext, tokenHash string) error {
	query := `UPDATE refresh_tokens SET revoked_at = NOW() WHERE token_hash = $1 AND revoked_at IS NULL`

	if _, err := exec.ExecContext(ctx, query, tokenHash); err != nil {
		return util.LogError("[TokenRepo] не удалось отозвать рефреш токен", err)
	}

	return nil
}

// BeginTX начинает транзакцию. Ротация (отзыв предъявленного токена + вставка нового)
// выполняется внутри одной транзакции, чтобы конкурентное предъявление того же секрета
// не наблюдало промежуточного состояния.
func (r *RefreshTokenRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}
