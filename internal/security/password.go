package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword хэширует пароль через bcrypt со случайной солью на каждый вызов.
// Результат самоописываемый: алгоритм, cost и соль закодированы в самой строке,
// поэтому для проверки не нужны внешние метаданные.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хэширования пароля: %w", err)
	}
	return string(hash), nil
}

// CheckPassword сравнивает пароль с хэшем за константное время.
// Поврежденный хэш и несовпадение пароля неразличимы: оба дают false.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
