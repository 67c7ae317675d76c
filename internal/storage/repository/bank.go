package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Memetic-Block/membership-nfts/internal/ledger"
)

// Transfer переводит amount со счёта from на счёт to. Перевод отклоняется,
// если любой из счетов заморожен или на from не хватает средств. Списание и
// зачисление выполняются на общем querier вызова: внутри транзакции mint
// они откатываются вместе с остальными записями.
func (s *Storage) Transfer(ctx context.Context, from, to string, amount uint64) error {
	const op = "storage.Transfer"

	if amount == 0 {
		return nil
	}

	debit := `UPDATE accounts SET balance = balance - $2
			  WHERE address = $1 AND NOT frozen AND balance >= $2`
	res, err := s.querier().ExecContext(ctx, debit, from, amount)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: debit %s: %w", op, from, ledger.ErrTransferFailure)
	}

	credit := `INSERT INTO accounts (address, balance) VALUES ($1, $2)
			   ON CONFLICT (address) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance
			   WHERE NOT accounts.frozen`
	res, err = s.querier().ExecContext(ctx, credit, to, amount)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err = res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: credit %s: %w", op, to, ledger.ErrTransferFailure)
	}
	return nil
}

// Deposit зачисляет amount на счёт, создавая его при необходимости.
func (s *Storage) Deposit(ctx context.Context, address string, amount uint64) error {
	const op = "storage.Deposit"

	query := `INSERT INTO accounts (address, balance) VALUES ($1, $2)
			  ON CONFLICT (address) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance`
	if _, err := s.querier().ExecContext(ctx, query, address, amount); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Balance возвращает остаток счёта; несуществующий счёт читается как пустой.
func (s *Storage) Balance(ctx context.Context, address string) (uint64, error) {
	const op = "storage.Balance"

	query := `SELECT balance FROM accounts WHERE address = $1`
	var balance uint64
	err := s.querier().QueryRowContext(ctx, query, address).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return balance, nil
}
