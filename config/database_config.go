package config

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Database struct {
	*sqlx.DB
}

func NewDatabaseConnection(dbDriver string, dbConnectionStr string) (*Database, error) {
	database, err := sqlx.Connect(dbDriver, dbConnectionStr)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка пинга БД: %w", err)
	}

	log.Println("Подключение к БД успешно выполнено")
	return &Database{
		database,
	}, nil
}

// InitSchema создает таблицы users и refresh_tokens, если их еще нет.
// Уникальные ограничения на email и token_hash являются последним арбитром
// при конкурентной регистрации и конкурентной ротации токенов.
func (db *Database) InitSchema(ctx context.Context) error {
	usersQuery := `
	CREATE TABLE IF NOT EXISTS users (
		uuid UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`

	tokensQuery := `
	CREATE TABLE IF NOT EXISTS refresh_tokens (
		uuid UUID PRIMARY KEY,
		user_uuid UUID NOT NULL REFERENCES users(uuid) ON DELETE CASCADE,
		token_hash VARCHAR(128) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		revoked_at TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	)`

	if _, err := db.DB.ExecContext(ctx, usersQuery); err != nil {
		return fmt.Errorf("ошибка создания таблицы users: %w", err)
	}
	if _, err := db.DB.ExecContext(ctx, tokensQuery); err != nil {
		return fmt.Errorf("ошибка создания таблицы refresh_tokens: %w", err)
	}

	return nil
}

func (db *Database) Close() error {
	err := db.DB.Close()
	if err != nil {
		return fmt.Errorf("ошибка закрытия соединения с БД: %w", err)
	}

	return nil
}
