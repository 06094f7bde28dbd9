package ports

import (
	"sentinel-auth-service/internal/model"
	"sentinel-auth-service/internal/security"
)

type TokenService interface {
	MintAccessToken(userUUID string) (string, error)
	VerifyAccessToken(tokenStr string) (*security.Claims, error)
	NewRefreshToken(userUUID string) (*model.RefreshToken, string, error)
	HashRefreshSecret(secret string) string
}
