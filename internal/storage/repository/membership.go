package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Memetic-Block/membership-nfts/internal/ledger"
	"github.com/Memetic-Block/membership-nfts/internal/models"
)

// AssignOwner записывает владельца токена. Для нового токена создаёт запись,
// для существующего — перезаписывает владельца.
func (s *Storage) AssignOwner(ctx context.Context, tokenID int64, owner string) error {
	const op = "storage.AssignOwner"

	query := `INSERT INTO tokens (id, owner) VALUES ($1, $2)
			  ON CONFLICT (id) DO UPDATE SET owner = EXCLUDED.owner`
	if _, err := s.querier().ExecContext(ctx, query, tokenID, owner); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// OwnerOf возвращает владельца токена.
func (s *Storage) OwnerOf(ctx context.Context, tokenID int64) (string, error) {
	const op = "storage.OwnerOf"

	query := `SELECT owner FROM tokens WHERE id = $1`
	var owner string
	err := s.querier().QueryRowContext(ctx, query, tokenID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", op, ledger.ErrTokenNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return owner, nil
}

// ChargeSubscription безусловно записывает уровень и высоту истечения токена.
// Прежняя запись перезаписывается целиком: остаток неиспользованного времени
// не переносится.
func (s *Storage) ChargeSubscription(ctx context.Context, tokenID int64, tier, expirationHeight uint64) error {
	const op = "storage.ChargeSubscription"

	query := `INSERT INTO subscriptions (token_id, tier, expiration_height)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (token_id) DO UPDATE
			  SET tier = EXCLUDED.tier, expiration_height = EXCLUDED.expiration_height`
	if _, err := s.querier().ExecContext(ctx, query, tokenID, tier, expirationHeight); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Subscription возвращает запись абонемента токена вместе с владельцем.
func (s *Storage) Subscription(ctx context.Context, tokenID int64) (*models.Membership, error) {
	const op = "storage.Subscription"

	query := `SELECT t.id, t.owner, sub.tier, sub.expiration_height
			  FROM tokens t
			  JOIN subscriptions sub ON sub.token_id = t.id
			  WHERE t.id = $1`
	var m models.Membership
	err := s.querier().QueryRowContext(ctx, query, tokenID).Scan(
		&m.TokenID, &m.Owner, &m.Tier, &m.ExpirationHeight)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ledger.ErrTokenNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}
