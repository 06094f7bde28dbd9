package ports

import (
	"context"

	"sentinel-auth-service/internal/model"

	"github.com/jmoiron/sqlx"
)

// RefreshTokenRepository : SQL слой для refresh-токенов.
// FindByHash и FindByHashForUpdate возвращают (nil, nil), если токен не найден.
// FindByHashForUpdate блокирует найденную строку до конца транзакции: при
// конкурентном предъявлении одного секрета второй вызов дождется первой
// транзакции и увидит уже отозванное состояние.
// Revoke идемпотентен: повторный отзыв и отзыв несуществующего хэша не являются ошибкой.
type RefreshTokenRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, token *model.RefreshToken) (*model.RefreshToken, error)
	FindByHash(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.RefreshToken, error)
	FindByHashForUpdate(ctx context.Context, exec sqlx.ExtContext, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, exec sqlx.ExtContext, tokenHash string) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}
