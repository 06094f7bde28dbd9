package ports

import (
	"context"

	"sentinel-auth-service/internal/model"

	"github.com/jmoiron/sqlx"
)

// UserRepository : SQL слой для пользователей.
// FindByEmail и FindByUUID возвращают (nil, nil), если пользователь не найден.
type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
}
