package membershipledger

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/Memetic-Block/membership-nfts/internal/cache"
	"github.com/Memetic-Block/membership-nfts/internal/config"
	"github.com/Memetic-Block/membership-nfts/internal/events"
	"github.com/Memetic-Block/membership-nfts/internal/lib/jwt"
	"github.com/Memetic-Block/membership-nfts/internal/lib/password"
	"github.com/Memetic-Block/membership-nfts/internal/migrations"
	"github.com/Memetic-Block/membership-nfts/internal/models"
	authservice "github.com/Memetic-Block/membership-nfts/internal/services/auth"
	membershipservice "github.com/Memetic-Block/membership-nfts/internal/services/membership"
	"github.com/Memetic-Block/membership-nfts/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = bootstrap(ctx, db, cfg); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	publisher, err := events.New(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	membershipService := membershipservice.NewMembershipService(db, cacheRedis, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, membershipService, authService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// bootstrap выполняет генезис реестра: стартовое состояние с паузой минтинга,
// комиссия первого уровня и учётная запись деплоера с административной ролью.
// Повторные запуски ничего не перезаписывают.
func bootstrap(ctx context.Context, db *repository.Storage, cfg *config.Config) error {
	if err := db.EnsureGenesisState(ctx, models.LedgerState{
		TokenName:          cfg.TokenName,
		TokenSymbol:        cfg.TokenSymbol,
		MintingPaused:      true,
		FeeReceiver:        cfg.FeeReceiver,
		SubscriptionPeriod: cfg.SubscriptionPeriod,
		CurrentHeight:      0,
		NextTokenID:        1,
	}); err != nil {
		return err
	}

	state, err := db.State(ctx)
	if err != nil {
		return err
	}
	if fee, err := db.ScheduleFee(ctx, 1); err != nil {
		return err
	} else if fee == 0 && state.NextTokenID == 1 {
		if err := db.SetTierFee(ctx, 1, cfg.InitialTierOneFee); err != nil {
			return err
		}
	}

	hash, err := password.GetHash(cfg.DeployerPassword)
	if err != nil {
		return err
	}
	return db.EnsureUser(ctx, models.User{
		Address:      uuid.NewString(),
		Username:     cfg.DeployerUsername,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return a.server.Shutdown(timeoutCtx)
	}
}
