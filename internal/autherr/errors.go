// Package autherr содержит типизированные ошибки бизнес-правил аутентификации.
// Сервисы возвращают их (обернутыми через %w), а HTTP-слой переводит в статус-коды
// через errors.Is. Инфраструктурные ошибки (БД, Redis, подпись) в этот набор
// не входят и наружу отдаются как общая внутренняя ошибка.
package autherr

import "errors"

var (
	// ErrInvalidInput — отсутствуют или пусты обязательные поля запроса.
	ErrInvalidInput = errors.New("некорректные данные запроса")

	// ErrDuplicateEmail — email уже занят другим пользователем.
	ErrDuplicateEmail = errors.New("email уже зарегистрирован")

	// ErrInvalidCredentials — неверная пара email/пароль. Несуществующий email
	// и неверный пароль намеренно неразличимы для вызывающей стороны.
	ErrInvalidCredentials = errors.New("неверные учетные данные")

	// ErrMissingToken — токен не был передан.
	ErrMissingToken = errors.New("токен отсутствует")

	// ErrInvalidToken — токен не найден, поврежден или подписан другим ключом.
	ErrInvalidToken = errors.New("невалидный токен")

	// ErrRevokedToken — refresh-токен уже был отозван (logout или ротация).
	ErrRevokedToken = errors.New("токен отозван")

	// ErrExpiredToken — срок действия refresh-токена истек.
	ErrExpiredToken = errors.New("срок действия токена истек")

	// ErrUserNotFound — пользователь не найден (например, удален администратором).
	ErrUserNotFound = errors.New("пользователь не найден")
)
