package ports

import (
	"context"

	"sentinel-auth-service/internal/model"
)

type AuthenticationService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.TokensPair, error)
	Refresh(ctx context.Context, refreshSecret string) (*model.TokensPair, error)
	Logout(ctx context.Context, refreshSecret string) error
}

type UserService interface {
	GetProfile(ctx context.Context, userUUID string) (*model.User, error)
}
