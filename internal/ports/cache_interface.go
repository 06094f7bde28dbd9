package ports

import (
	"context"

	"sentinel-auth-service/internal/model"
)

// CacheRepository : Redis слой для кэширования публичных полей пользователя.
// GetUser возвращает (nil, nil), если записи нет в кэше.
type CacheRepository interface {
	SetUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, uuid string) (*model.User, error)
	DeleteUser(ctx context.Context, uuid string) error
}
