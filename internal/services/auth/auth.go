// Package services содержит логику бизнес-уровня для работы с участниками и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Memetic-Block/membership-nfts/internal/lib/jwt"
	"github.com/Memetic-Block/membership-nfts/internal/lib/password"
	"github.com/Memetic-Block/membership-nfts/internal/models"
)

// UserRepository описывает контракт для работы с участниками в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового участника.
	RegisterUser(ctx context.Context, user models.User) error

	// GetUserByUsername возвращает участника по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и выдачу JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового участника с хэшированием пароля и дефолтной ролью "user".
// Административная роль назначается только учётной записи деплоера при старте.
// Возвращает адрес счёта нового участника.
func (s *AuthService) Register(ctx context.Context, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Address:      uuid.NewString(),
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	if err := s.users.RegisterUser(ctx, user); err != nil {
		return "", err
	}
	return user.Address, nil
}

// Login проверяет пароль участника и генерирует JWT с адресом и ролью.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", errors.New("invalid credentials")
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.Address)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает идентичность вызывающего.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.Caller, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.Caller{
		Address: claims.Address,
		Role:    claims.Role,
	}, nil
}
