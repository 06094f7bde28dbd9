package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sentinel-auth-service/config"
	"sentinel-auth-service/internal/autherr"
	"sentinel-auth-service/internal/model"
	"sentinel-auth-service/internal/ports"
	"sentinel-auth-service/internal/security"
	"sentinel-auth-service/internal/util"

	"github.com/google/uuid"
)

type AuthenticationService struct {
	db              *config.Database
	userRepository  ports.UserRepository
	tokenRepository ports.RefreshTokenRepository
	tokenService    ports.TokenService
}

func NewAuthenticationService(
	db *config.Database,
	userRepository ports.UserRepository,
	tokenRepository ports.RefreshTokenRepository,
	tokenService ports.TokenService,
) *AuthenticationService {
	return &AuthenticationService{
		db:              db,
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		tokenService:    tokenService,
	}
}

// Register создает нового пользователя.
// Проверка занятости email выполняется до вставки, но гонку двух одновременных
// регистраций разрешает уникальное ограничение БД: репозиторий транслирует его
// в autherr.ErrDuplicateEmail.
//
// Возвращает публичные поля созданного пользователя; хэш пароля в ответ не попадает.
func (s *AuthenticationService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, autherr.ErrInvalidInput
	}

	existing, err := s.userRepository.FindByEmail(ctx, s.db.DB, email)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	if existing != nil {
		return nil, autherr.ErrDuplicateEmail
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	created, err := s.userRepository.CreateUser(ctx, s.db.DB, user)
	if err != nil {
		if errors.Is(err, autherr.ErrDuplicateEmail) {
			return nil, autherr.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return created, nil
}

// Login проверяет учетные данные и выдает пару токенов.
// Несуществующий email и неверный пароль дают одну и ту же ошибку
// autherr.ErrInvalidCredentials, чтобы не допускать перебор пользователей.
//
// Сырой refresh-секрет передается клиенту единственный раз, в БД остается только дайджест.
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.TokensPair, error) {
	if email == "" || password == "" {
		return nil, autherr.ErrInvalidInput
	}

	user, err := s.userRepository.FindByEmail(ctx, s.db.DB, email)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		return nil, autherr.ErrInvalidCredentials
	}

	accessToken, err := s.tokenService.MintAccessToken(user.UUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	refreshToken, secret, err := s.tokenService.NewRefreshToken(user.UUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	if _, err := s.tokenRepository.Create(ctx, s.db.DB, refreshToken); err != nil {
		return nil, fmt.Errorf("ошибка сохранения refresh токена: %w", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: secret,
	}, nil
}

// Refresh выполняет ротацию refresh-токена.
//
// Предъявленный токен отзывается, и тем же запросом создается новый токен
// той же принадлежности. Оба действия идут в одной транзакции, а строка токена
// читается с блокировкой: конкурентное предъявление того же секрета дождется
// завершения первой ротации и увидит уже отозванное состояние. Повторное
// предъявление ротированного секрета всегда получает autherr.ErrRevokedToken —
// это встроенная детекция кражи токена.
func (s *AuthenticationService) Refresh(ctx context.Context, refreshSecret string) (*model.TokensPair, error) {
	if refreshSecret == "" {
		return nil, autherr.ErrMissingToken
	}

	tokenHash := s.tokenService.HashRefreshSecret(refreshSecret)

	exec, rollback, commit, err := s.tokenRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("не удалось начать транзакцию", err)
	}
	defer rollback()

	stored, err := s.tokenRepository.FindByHashForUpdate(ctx, exec, tokenHash)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска refresh токена: %w", err)
	}
	if stored == nil {
		return nil, autherr.ErrInvalidToken
	}
	if stored.Revoked() {
		return nil, autherr.ErrRevokedToken
	}
	if stored.Expired(time.Now().UTC()) {
		return nil, autherr.ErrExpiredToken
	}

	if err := s.tokenRepository.Revoke(ctx, exec, tokenHash); err != nil {
		return nil, fmt.Errorf("не удалось отозвать refresh токен: %w", err)
	}

	newToken, secret, err := s.tokenService.NewRefreshToken(stored.UserUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	if _, err := s.tokenRepository.Create(ctx, exec, newToken); err != nil {
		return nil, fmt.Errorf("ошибка сохранения refresh токена: %w", err)
	}

	accessToken, err := s.tokenService.MintAccessToken(stored.UserUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("не удалось зафиксировать транзакцию", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: secret,
	}, nil
}

// Logout отзывает предъявленный refresh-токен.
// Операция идемпотентна и не сообщает, существовал ли токен: неизвестный
// или уже отозванный секрет дает тот же результат, что и активный.
func (s *AuthenticationService) Logout(ctx context.Context, refreshSecret string) error {
	if refreshSecret == "" {
		return autherr.ErrMissingToken
	}

	tokenHash := s.tokenService.HashRefreshSecret(refreshSecret)

	if err := s.tokenRepository.Revoke(ctx, s.db.DB, tokenHash); err != nil {
		return fmt.Errorf("не удалось отозвать refresh токен: %w", err)
	}

	return nil
}
