// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, подписок, способов оплаты и платежей.
//
// Все операции выполняются в рамках одного запроса без прикладных блокировок:
// параллельный доступ к одной сущности опирается на изоляцию транзакций и
// уникальные ограничения самой базы.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrUniqueViolation сигнализирует о нарушении уникального ограничения,
// например дубликате номера карты.
var ErrUniqueViolation = errors.New("unique violation")

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// wrapErr приводит ошибки драйвера к ошибкам пакета: нарушение уникального
// ограничения заменяется на ErrUniqueViolation, остальные ошибки оборачиваются
// именем операции.
func wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", op, ErrUniqueViolation)
	}
	return fmt.Errorf("%s: %w", op, err)
}
