// Package repository реализует хранилище данных на основе PostgreSQL
// для реестра абонементов. Предоставляет операции над тарифной лестницей,
// записями подписок, выпуском токенов, счетами участников и глобальным
// состоянием реестра, а также транзакционную обёртку: все мутации одного
// вызова mint/recharge выполняются в одной транзакции и откатываются вместе.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Memetic-Block/membership-nfts/internal/ledger"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// querier объединяет *sql.DB и *sql.Tx: методы хранилища выполняются
// либо на соединении, либо внутри открытой транзакции.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с реестром и пользователями.
type Storage struct {
	DB *sql.DB

	q querier
}

// New создаёт подключение к PostgreSQL.
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

func (s *Storage) querier() querier {
	if s.q != nil {
		return s.q
	}
	return s.DB
}

// Begin открывает транзакцию и возвращает связанное с ней представление
// хранилища. Вызывающий обязан завершить её через Commit или Rollback.
func (s *Storage) Begin(ctx context.Context) (ledger.Tx, error) {
	const op = "storage.Begin"
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &txStorage{
		Storage: Storage{DB: s.DB, q: tx},
		tx:      tx,
	}, nil
}

// txStorage — хранилище, привязанное к открытой транзакции.
type txStorage struct {
	Storage
	tx *sql.Tx
}

// Commit фиксирует транзакцию.
func (t *txStorage) Commit() error {
	return t.tx.Commit()
}

// Rollback откатывает транзакцию. После Commit возвращает sql.ErrTxDone,
// что позволяет безопасно вызывать его в defer.
func (t *txStorage) Rollback() error {
	return t.tx.Rollback()
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'ledger_state'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table ledger_state missing or query error: %w", err)
	}
	return nil
}
