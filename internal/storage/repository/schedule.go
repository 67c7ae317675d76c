package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Memetic-Block/membership-nfts/internal/models"
)

// ScheduleFee возвращает комиссию уровня. Уровень, который никогда
// не задавался, читается как 0 — "выключен".
func (s *Storage) ScheduleFee(ctx context.Context, tier uint64) (uint64, error) {
	const op = "storage.ScheduleFee"

	query := `SELECT fee FROM tier_fees WHERE tier = $1`
	var fee uint64
	err := s.querier().QueryRowContext(ctx, query, tier).Scan(&fee)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return fee, nil
}

// SetTierFee записывает комиссию уровня, перезаписывая прежнее значение.
// Проверка инвариантов лестницы выполняется на уровне сервиса.
func (s *Storage) SetTierFee(ctx context.Context, tier, fee uint64) error {
	const op = "storage.SetTierFee"

	query := `INSERT INTO tier_fees (tier, fee) VALUES ($1, $2)
			  ON CONFLICT (tier) DO UPDATE SET fee = EXCLUDED.fee`
	if _, err := s.querier().ExecContext(ctx, query, tier, fee); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListTierFees возвращает всю тарифную лестницу по возрастанию уровня.
func (s *Storage) ListTierFees(ctx context.Context) ([]models.TierFee, error) {
	const op = "storage.ListTierFees"

	query := `SELECT tier, fee FROM tier_fees ORDER BY tier`
	rows, err := s.querier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var fees []models.TierFee
	for rows.Next() {
		var tf models.TierFee
		if err := rows.Scan(&tf.Tier, &tf.Fee); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		fees = append(fees, tf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return fees, nil
}
