package repository

import (
	"context"
	"fmt"

	"github.com/Memetic-Block/membership-nfts/internal/models"
)

// RegisterUser сохраняет нового участника в базу данных.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) error {
	const op = "storage.RegisterUser"

	query := `INSERT INTO users (address, username, password_hash, role)
			  VALUES ($1, $2, $3, $4)`
	if _, err := s.querier().ExecContext(ctx, query,
		user.Address, user.Username, user.PasswordHash, user.Role); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// EnsureUser сохраняет участника, если имя ещё не занято. Используется
// при старте для учётной записи деплоера с административной ролью.
func (s *Storage) EnsureUser(ctx context.Context, user models.User) error {
	const op = "storage.EnsureUser"

	query := `INSERT INTO users (address, username, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (username) DO NOTHING`
	if _, err := s.querier().ExecContext(ctx, query,
		user.Address, user.Username, user.PasswordHash, user.Role); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByUsername возвращает участника по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"

	query := `SELECT address, username, password_hash, role
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.querier().QueryRowContext(ctx, query, username)
	if err := row.Scan(&u.Address, &u.Username, &u.PasswordHash, &u.Role); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
