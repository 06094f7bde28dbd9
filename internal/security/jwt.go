package security

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sentinel-auth-service/config"
	"sentinel-auth-service/internal/autherr"
	"sentinel-auth-service/internal/model"
	"sentinel-auth-service/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// refreshSecretBytes — количество случайных байт в refresh-секрете (384 бита энтропии).
const refreshSecretBytes = 48

type Claims struct {
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// MintAccessToken выпускает подписанный access-токен с subject = UUID пользователя
// и сроком действия из конфигурации.
func (service *JWTService) MintAccessToken(userUUID string) (string, error) {
	ttl, err := time.ParseDuration(service.AccessTokenTTL)
	if err != nil {
		return "", util.LogError("ошибка парсинга access_token_ttl", err)
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUUID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "sentinel-auth-service",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", util.LogError("ошибка подписи токена", err)
	}

	return accessToken, nil
}

// VerifyAccessToken проверяет подпись, структуру и срок действия access-токена.
// Проверка stateless: хранилище не опрашивается, access-токены не отзываются.
// Любая причина отказа схлопывается в autherr.ErrInvalidToken.
func (service *JWTService) VerifyAccessToken(tokenStr string) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	})

	if err != nil || !jwtToken.Valid || claims.Subject == "" {
		return nil, autherr.ErrInvalidToken
	}

	return claims, nil
}

// NewRefreshToken генерирует новый refresh-секрет и модель для его хранения.
// Секрет возвращается вызывающей стороне единственный раз, в БД попадает только дайджест.
func (service *JWTService) NewRefreshToken(userUUID string) (*model.RefreshToken, string, error) {
	secret, err := GenerateRefreshSecret()
	if err != nil {
		return nil, "", err
	}

	ttl, err := time.ParseDuration(service.RefreshTokenTTL)
	if err != nil {
		return nil, "", util.LogError("ошибка парсинга refresh_token_ttl", err)
	}

	now := time.Now().UTC()
	refreshToken := &model.RefreshToken{
		UUID:      uuid.New().String(),
		UserUUID:  userUUID,
		TokenHash: HashRefreshSecret(secret),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	return refreshToken, secret, nil
}

func (service *JWTService) HashRefreshSecret(secret string) string {
	return HashRefreshSecret(secret)
}

// GenerateRefreshSecret возвращает криптографически случайную hex-строку.
func GenerateRefreshSecret() (string, error) {
	buf := make([]byte, refreshSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", util.LogError("ошибка генерации refresh-секрета", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashRefreshSecret вычисляет детерминированный SHA-256 дайджест секрета.
// Дайджест не солится: он служит ключом поиска в refresh_tokens.
func HashRefreshSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// JWTMiddleware извлекает Bearer-токен из заголовка Authorization и проверяет его.
// Заголовок обязан иметь вид ровно из двух частей "Bearer <token>".
func JWTMiddleware(jwtService *JWTService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			parts := strings.Split(request.Header.Get("Authorization"), " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				util.HandleError(writer, "токен отсутствует", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.VerifyAccessToken(parts[1])
			if err != nil {
				util.HandleError(writer, "невалидный токен", http.StatusUnauthorized)
				return
			}

			req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
			next.ServeHTTP(writer, req)
		})
	}
}

// SubjectFromContext возвращает UUID аутентифицированного пользователя.
func SubjectFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return "", fmt.Errorf("пользователь не авторизован")
	}
	return claims.Subject, nil
}
