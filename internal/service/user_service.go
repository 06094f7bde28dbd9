package service

import (
	"context"
	"fmt"
	"log"

	"sentinel-auth-service/config"
	"sentinel-auth-service/internal/autherr"
	"sentinel-auth-service/internal/model"
	"sentinel-auth-service/internal/ports"
)

type UserService struct {
	db              *config.Database
	userRepository  ports.UserRepository
	cacheRepository ports.CacheRepository
}

func NewUserService(
	db *config.Database,
	userRepository ports.UserRepository,
	cacheRepository ports.CacheRepository,
) *UserService {
	return &UserService{
		db:              db,
		userRepository:  userRepository,
		cacheRepository: cacheRepository,
	}
}

// GetProfile возвращает публичные поля пользователя: сначала из кэша,
// при промахе — из БД с последующим заполнением кэша.
// Недоступность Redis не фатальна: профиль читается из БД.
func (s *UserService) GetProfile(ctx context.Context, userUUID string) (*model.User, error) {
	cached, err := s.cacheRepository.GetUser(ctx, userUUID)
	if err == nil && cached != nil {
		return cached, nil
	}

	user, err := s.userRepository.FindByUUID(ctx, s.db.DB, userUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	if user == nil {
		return nil, autherr.ErrUserNotFound
	}

	if err := s.cacheRepository.SetUser(ctx, user); err != nil {
		log.Printf("не удалось положить профиль в кэш: %v", err)
	}

	return user, nil
}
