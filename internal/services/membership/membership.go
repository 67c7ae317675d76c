// Package services содержит бизнес-логику реестра абонементов: выпуск и
// продление токенов, расчёт оплаты, управление тарифной лестницей, паузой
// минтинга и глобальными параметрами.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Memetic-Block/membership-nfts/internal/ledger"
	"github.com/Memetic-Block/membership-nfts/internal/lib/sl"
	"github.com/Memetic-Block/membership-nfts/internal/metrics"
	"github.com/Memetic-Block/membership-nfts/internal/models"
)

// escrowAddress — служебный счёт реестра: сюда поступает сумма, переданная
// вместе с вызовом, отсюда уходят удержание и возврат.
const escrowAddress = "ledger:escrow"

// Repository определяет методы для работы с состоянием реестра в хранилище.
type Repository interface {
	// Begin открывает атомарное представление для мутирующего вызова.
	Begin(ctx context.Context) (ledger.Tx, error)
	// State возвращает глобальные параметры реестра.
	State(ctx context.Context) (*models.LedgerState, error)
	// ScheduleFee возвращает комиссию уровня (0 — уровень не задан).
	ScheduleFee(ctx context.Context, tier uint64) (uint64, error)
	// ListTierFees возвращает тарифную лестницу.
	ListTierFees(ctx context.Context) ([]models.TierFee, error)
	// Subscription возвращает запись абонемента токена.
	Subscription(ctx context.Context, tokenID int64) (*models.Membership, error)
	// Balance возвращает остаток счёта.
	Balance(ctx context.Context, address string) (uint64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// EventPublisher отправляет уведомления о смене состояния минтинга.
type EventPublisher interface {
	PublishPauseChanged(event models.PauseEvent) error
}

// MembershipService реализует операции реестра. Мутирующие вызовы
// сериализуются мьютексом: вызов исполняется целиком до следующего,
// повторный вход во время расчёта оплаты невозможен.
type MembershipService struct {
	repo   Repository
	cache  Cache
	events EventPublisher
	log    *slog.Logger

	mu sync.Mutex
}

// NewMembershipService создает новый экземпляр MembershipService.
func NewMembershipService(repo Repository, cache Cache, events EventPublisher, log *slog.Logger) *MembershipService {
	return &MembershipService{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
	}
}

// Mint выпускает новый токен с подпиской уровня req.Tier.
//
// Непривилегированный вызов блокируется паузой минтинга и оплачивает
// комиссию уровня; привилегированный проходит без оплаты и без учёта паузы.
// Выдача ID, запись владения, запись подписки и оба перевода средств
// выполняются в одной транзакции: любой сбой откатывает всё, включая счётчик
// токенов.
func (s *MembershipService) Mint(ctx context.Context, caller models.Caller, req models.MintRequest) (*models.ChargeResult, error) {
	const op = "services.membership.Mint"
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.mint(ctx, caller, req)
	if err != nil {
		metrics.MintsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.MintsTotal.WithLabelValues("success").Inc()
	metrics.FeesCollected.Add(float64(result.FeeCollected))
	metrics.RefundsPaid.Add(float64(result.Refund))

	s.log.Info("minted membership token",
		slog.Int64("token_id", result.TokenID),
		slog.Uint64("tier", result.Tier),
		slog.Uint64("expiration_height", result.ExpirationHeight))

	s.cacheMembership(result, req.To, caller)
	return result, nil
}

func (s *MembershipService) mint(ctx context.Context, caller models.Caller, req models.MintRequest) (*models.ChargeResult, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	state, err := tx.State(ctx)
	if err != nil {
		return nil, err
	}

	privileged := caller.IsPrivileged()
	if !privileged && state.MintingPaused {
		return nil, ledger.ErrMintingPaused
	}

	fee, err := tx.ScheduleFee(ctx, req.Tier)
	if err != nil {
		return nil, err
	}
	settlement, err := ledger.Settle(!privileged, fee, 1, req.ValueSent)
	if err != nil {
		return nil, err
	}

	tokenID, err := tx.AllocateTokenID(ctx)
	if err != nil {
		return nil, err
	}

	to := req.To
	if to == "" {
		to = caller.Address
	}

	// Сначала записи состояния, затем движения средств.
	expiration := ledger.ChargeHorizon(state.CurrentHeight, state.SubscriptionPeriod)
	if err := tx.AssignOwner(ctx, tokenID, to); err != nil {
		return nil, err
	}
	if err := tx.ChargeSubscription(ctx, tokenID, req.Tier, expiration); err != nil {
		return nil, err
	}

	if err := s.settleTransfers(ctx, tx, caller.Address, state.FeeReceiver, req.ValueSent, settlement); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.ChargeResult{
		TokenID:          tokenID,
		Tier:             req.Tier,
		ExpirationHeight: expiration,
		FeeCollected:     settlement.Due,
		Refund:           settlement.Refund,
	}, nil
}

// Recharge продлевает подписку существующего токена на req.Multiplier
// периодов, устанавливая уровень req.Tier.
//
// Пауза минтинга на продление не действует. Новый уровень намеренно не
// сравнивается с текущим: токен можно перевести на любой уровень, комиссия
// которого оплачена, в том числе ниже текущего. Привилегированный вызов
// не оплачивает комиссию и потому может записать и выключенный уровень.
func (s *MembershipService) Recharge(ctx context.Context, caller models.Caller, tokenID int64, req models.RechargeRequest) (*models.ChargeResult, error) {
	const op = "services.membership.Recharge"
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.recharge(ctx, caller, tokenID, req)
	if err != nil {
		metrics.RechargesTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.RechargesTotal.WithLabelValues("success").Inc()
	metrics.FeesCollected.Add(float64(result.FeeCollected))
	metrics.RefundsPaid.Add(float64(result.Refund))

	s.log.Info("recharged membership token",
		slog.Int64("token_id", result.TokenID),
		slog.Uint64("tier", result.Tier),
		slog.Uint64("expiration_height", result.ExpirationHeight))

	cacheKey := membershipCacheKey(tokenID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate membership cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

func (s *MembershipService) recharge(ctx context.Context, caller models.Caller, tokenID int64, req models.RechargeRequest) (*models.ChargeResult, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Subscription(ctx, tokenID); err != nil {
		return nil, err
	}

	state, err := tx.State(ctx)
	if err != nil {
		return nil, err
	}

	privileged := caller.IsPrivileged()
	fee, err := tx.ScheduleFee(ctx, req.Tier)
	if err != nil {
		return nil, err
	}
	settlement, err := ledger.Settle(!privileged, fee, req.Multiplier, req.ValueSent)
	if err != nil {
		return nil, err
	}

	expiration := ledger.ChargeHorizon(state.CurrentHeight, state.SubscriptionPeriod*req.Multiplier)
	if err := tx.ChargeSubscription(ctx, tokenID, req.Tier, expiration); err != nil {
		return nil, err
	}

	if err := s.settleTransfers(ctx, tx, caller.Address, state.FeeReceiver, req.ValueSent, settlement); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.ChargeResult{
		TokenID:          tokenID,
		Tier:             req.Tier,
		ExpirationHeight: expiration,
		FeeCollected:     settlement.Due,
		Refund:           settlement.Refund,
	}, nil
}

// settleTransfers проводит движения средств одного вызова: вся переданная
// сумма поступает на служебный счёт, оттуда удержание уходит получателю
// комиссий, излишек возвращается вызывающему. Не больше двух исходящих
// переводов за вызов; при нулевых суммах движений нет.
func (s *MembershipService) settleTransfers(ctx context.Context, tx ledger.Tx, caller, receiver string, valueSent uint64, settlement ledger.Settlement) error {
	if valueSent > 0 {
		if err := tx.Transfer(ctx, caller, escrowAddress, valueSent); err != nil {
			return err
		}
	}
	if settlement.Due > 0 {
		if err := tx.Transfer(ctx, escrowAddress, receiver, settlement.Due); err != nil {
			return err
		}
	}
	if settlement.Refund > 0 {
		if err := tx.Transfer(ctx, escrowAddress, caller, settlement.Refund); err != nil {
			return err
		}
	}
	return nil
}

// SetTierFee записывает комиссию уровня с проверкой инвариантов лестницы:
// уровень 0 зарезервирован, комиссия строго растёт, пропуски запрещены.
func (s *MembershipService) SetTierFee(ctx context.Context, caller models.Caller, tier, fee uint64) error {
	const op = "services.membership.SetTierFee"
	s.mu.Lock()
	defer s.mu.Unlock()

	if !caller.IsPrivileged() {
		return fmt.Errorf("%s: %w", op, ledger.ErrUnauthorized)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	var prevFee uint64
	if tier > 0 {
		prevFee, err = tx.ScheduleFee(ctx, tier-1)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := ledger.ValidateTierFee(tier, fee, prevFee); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.SetTierFee(ctx, tier, fee); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("tier fee updated", slog.Uint64("tier", tier), slog.Uint64("fee", fee))
	return nil
}

// SetFeeReceiver меняет получателя комиссий.
func (s *MembershipService) SetFeeReceiver(ctx context.Context, caller models.Caller, address string) error {
	const op = "services.membership.SetFeeReceiver"
	return s.adminUpdate(ctx, caller, op, func(tx ledger.Tx) error {
		return tx.SetFeeReceiver(ctx, address)
	})
}

// SetSubscriptionPeriod меняет период подписки в единицах высоты.
func (s *MembershipService) SetSubscriptionPeriod(ctx context.Context, caller models.Caller, period uint64) error {
	const op = "services.membership.SetSubscriptionPeriod"
	return s.adminUpdate(ctx, caller, op, func(tx ledger.Tx) error {
		return tx.SetSubscriptionPeriod(ctx, period)
	})
}

// Pause закрывает минтинг для непривилегированных вызовов и публикует
// уведомление с идентичностью администратора.
func (s *MembershipService) Pause(ctx context.Context, caller models.Caller) error {
	const op = "services.membership.Pause"
	return s.setPaused(ctx, caller, op, true)
}

// Unpause открывает минтинг и публикует уведомление.
func (s *MembershipService) Unpause(ctx context.Context, caller models.Caller) error {
	const op = "services.membership.Unpause"
	return s.setPaused(ctx, caller, op, false)
}

func (s *MembershipService) setPaused(ctx context.Context, caller models.Caller, op string, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !caller.IsPrivileged() {
		return fmt.Errorf("%s: %w", op, ledger.ErrUnauthorized)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	state, err := tx.State(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.SetPaused(ctx, paused); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	event := models.PauseEvent{
		EventID: uuid.NewString(),
		Paused:  paused,
		Actor:   caller.Address,
		Height:  state.CurrentHeight,
	}
	if err := s.events.PublishPauseChanged(event); err != nil {
		s.log.Warn("failed to publish pause event", sl.Err(err))
	}

	s.log.Info("minting pause state changed",
		slog.Bool("paused", paused), slog.String("actor", caller.Address))
	return nil
}

// AdvanceHeight — тик хост-окружения: сдвигает высоту реестра на by.
func (s *MembershipService) AdvanceHeight(ctx context.Context, caller models.Caller, by uint64) (uint64, error) {
	const op = "services.membership.AdvanceHeight"
	s.mu.Lock()
	defer s.mu.Unlock()

	if !caller.IsPrivileged() {
		return 0, fmt.Errorf("%s: %w", op, ledger.ErrUnauthorized)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	height, err := tx.AdvanceHeight(ctx, by)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return height, nil
}

// Deposit зачисляет учётную валюту на счёт (административный кран).
func (s *MembershipService) Deposit(ctx context.Context, caller models.Caller, address string, amount uint64) error {
	const op = "services.membership.Deposit"
	return s.adminUpdate(ctx, caller, op, func(tx ledger.Tx) error {
		return tx.Deposit(ctx, address, amount)
	})
}

func (s *MembershipService) adminUpdate(ctx context.Context, caller models.Caller, op string, fn func(tx ledger.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !caller.IsPrivileged() {
		return fmt.Errorf("%s: %w", op, ledger.ErrUnauthorized)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Membership возвращает запись абонемента токена, используя кеш или хранилище.
func (s *MembershipService) Membership(ctx context.Context, tokenID int64) (*models.Membership, error) {
	var result *models.Membership
	cacheKey := membershipCacheKey(tokenID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.Subscription(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return result, nil
}

// Schedule возвращает тарифную лестницу.
func (s *MembershipService) Schedule(ctx context.Context) ([]models.TierFee, error) {
	return s.repo.ListTierFees(ctx)
}

// TierFee возвращает комиссию одного уровня (0 — уровень не задан).
func (s *MembershipService) TierFee(ctx context.Context, tier uint64) (uint64, error) {
	return s.repo.ScheduleFee(ctx, tier)
}

// State возвращает глобальные параметры реестра.
func (s *MembershipService) State(ctx context.Context) (*models.LedgerState, error) {
	return s.repo.State(ctx)
}

// Balance возвращает остаток счёта.
func (s *MembershipService) Balance(ctx context.Context, address string) (uint64, error) {
	return s.repo.Balance(ctx, address)
}

func (s *MembershipService) cacheMembership(result *models.ChargeResult, to string, caller models.Caller) {
	owner := to
	if owner == "" {
		owner = caller.Address
	}
	entry := models.Membership{
		TokenID:          result.TokenID,
		Owner:            owner,
		Tier:             result.Tier,
		ExpirationHeight: result.ExpirationHeight,
	}
	cacheKey := membershipCacheKey(result.TokenID)
	if err := s.cache.Set(cacheKey, entry, time.Hour); err != nil {
		s.log.Warn("failed to cache membership", slog.String("key", cacheKey), sl.Err(err))
	}
}

func membershipCacheKey(tokenID int64) string {
	return fmt.Sprintf("membership:%d", tokenID)
}
