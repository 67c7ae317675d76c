package repository

import (
	"context"
	"fmt"

	"github.com/Memetic-Block/membership-nfts/internal/models"
)

// EnsureGenesisState записывает стартовое состояние реестра, если его ещё нет.
// Повторные запуски ничего не меняют: параметры после генезиса мутируются
// только административными операциями.
func (s *Storage) EnsureGenesisState(ctx context.Context, st models.LedgerState) error {
	const op = "storage.EnsureGenesisState"

	query := `INSERT INTO ledger_state (id, token_name, token_symbol, minting_paused,
			      fee_receiver, subscription_period, current_height, next_token_id)
			  VALUES (1, $1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (id) DO NOTHING`
	_, err := s.querier().ExecContext(ctx, query,
		st.TokenName, st.TokenSymbol, st.MintingPaused, st.FeeReceiver,
		st.SubscriptionPeriod, st.CurrentHeight, st.NextTokenID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// State возвращает глобальные параметры реестра.
func (s *Storage) State(ctx context.Context) (*models.LedgerState, error) {
	const op = "storage.State"

	query := `SELECT token_name, token_symbol, minting_paused, fee_receiver,
			      subscription_period, current_height, next_token_id
			  FROM ledger_state WHERE id = 1`
	var st models.LedgerState
	if err := s.querier().QueryRowContext(ctx, query).Scan(
		&st.TokenName, &st.TokenSymbol, &st.MintingPaused, &st.FeeReceiver,
		&st.SubscriptionPeriod, &st.CurrentHeight, &st.NextTokenID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &st, nil
}

// SetPaused переключает флаг паузы минтинга.
func (s *Storage) SetPaused(ctx context.Context, paused bool) error {
	const op = "storage.SetPaused"

	query := `UPDATE ledger_state SET minting_paused = $1 WHERE id = 1`
	if _, err := s.querier().ExecContext(ctx, query, paused); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetFeeReceiver меняет получателя комиссий.
func (s *Storage) SetFeeReceiver(ctx context.Context, address string) error {
	const op = "storage.SetFeeReceiver"

	query := `UPDATE ledger_state SET fee_receiver = $1 WHERE id = 1`
	if _, err := s.querier().ExecContext(ctx, query, address); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetSubscriptionPeriod меняет период подписки.
func (s *Storage) SetSubscriptionPeriod(ctx context.Context, period uint64) error {
	const op = "storage.SetSubscriptionPeriod"

	query := `UPDATE ledger_state SET subscription_period = $1 WHERE id = 1`
	if _, err := s.querier().ExecContext(ctx, query, period); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AdvanceHeight увеличивает высоту реестра на by и возвращает новое значение.
func (s *Storage) AdvanceHeight(ctx context.Context, by uint64) (uint64, error) {
	const op = "storage.AdvanceHeight"

	query := `UPDATE ledger_state SET current_height = current_height + $1
			  WHERE id = 1
			  RETURNING current_height`
	var height uint64
	if err := s.querier().QueryRowContext(ctx, query, by).Scan(&height); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return height, nil
}

// AllocateTokenID возвращает следующий свободный ID токена. Счётчик живёт
// в строке ledger_state, а не в последовательности: откат транзакции
// возвращает и счётчик, поэтому неудачный mint не оставляет дыр в нумерации.
func (s *Storage) AllocateTokenID(ctx context.Context) (int64, error) {
	const op = "storage.AllocateTokenID"

	query := `UPDATE ledger_state SET next_token_id = next_token_id + 1
			  WHERE id = 1
			  RETURNING next_token_id - 1`
	var id int64
	if err := s.querier().QueryRowContext(ctx, query).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
