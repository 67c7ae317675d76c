package ledger

import (
	"context"

	"github.com/Memetic-Block/membership-nfts/internal/models"
)

// TokenIssuer выдаёт последовательные идентификаторы токенов и ведёт
// учёт владения. Стандартная бухгалтерия, вынесенная за пределы правил реестра.
type TokenIssuer interface {
	// AllocateTokenID возвращает следующий свободный ID (нумерация с 1).
	AllocateTokenID(ctx context.Context) (int64, error)
	// AssignOwner записывает владельца токена.
	AssignOwner(ctx context.Context, tokenID int64, owner string) error
	// OwnerOf возвращает владельца токена или ErrTokenNotFound.
	OwnerOf(ctx context.Context, tokenID int64) (string, error)
}

// Bank ведёт счета во внутренней учётной валюте.
type Bank interface {
	// Transfer переводит amount со счёта from на счёт to.
	// Возвращает ErrTransferFailure, если счёт заморожен или средств не хватает.
	Transfer(ctx context.Context, from, to string, amount uint64) error
	// Deposit зачисляет amount на счёт, создавая его при необходимости.
	Deposit(ctx context.Context, address string, amount uint64) error
	// Balance возвращает остаток счёта (0 для несуществующего).
	Balance(ctx context.Context, address string) (uint64, error)
}

// Store — представление состояния реестра в рамках одного вызова.
type Store interface {
	TokenIssuer
	Bank

	// State возвращает глобальные параметры реестра.
	State(ctx context.Context) (*models.LedgerState, error)
	// SetPaused переключает флаг паузы минтинга.
	SetPaused(ctx context.Context, paused bool) error
	// SetFeeReceiver меняет получателя комиссий.
	SetFeeReceiver(ctx context.Context, address string) error
	// SetSubscriptionPeriod меняет период подписки в единицах высоты.
	SetSubscriptionPeriod(ctx context.Context, period uint64) error
	// AdvanceHeight увеличивает высоту реестра на by и возвращает новое значение.
	AdvanceHeight(ctx context.Context, by uint64) (uint64, error)

	// ScheduleFee возвращает комиссию уровня; 0 для уровня, который не задавался.
	ScheduleFee(ctx context.Context, tier uint64) (uint64, error)
	// SetTierFee записывает комиссию уровня, перезаписывая прежнее значение.
	SetTierFee(ctx context.Context, tier, fee uint64) error
	// ListTierFees возвращает всю тарифную лестницу по возрастанию уровня.
	ListTierFees(ctx context.Context) ([]models.TierFee, error)

	// ChargeSubscription безусловно записывает уровень и высоту истечения токена.
	ChargeSubscription(ctx context.Context, tokenID int64, tier, expirationHeight uint64) error
	// Subscription возвращает запись абонемента токена или ErrTokenNotFound.
	Subscription(ctx context.Context, tokenID int64) (*models.Membership, error)
}

// Tx — атомарное представление: все операции Store до Commit либо
// фиксируются целиком, либо целиком откатываются.
type Tx interface {
	Store

	Commit() error
	Rollback() error
}
