// Package models содержит структуры данных уровня домена и DTO для HTTP-запросов.
package models

// RoleAdmin и RoleUser — роли участников. Держатель RoleAdmin проходит
// проверку привилегий и освобождается от оплаты и от паузы минтинга.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Caller описывает идентичность вызывающего, извлечённую из JWT.
type Caller struct {
	Address string
	Role    string
}

// IsPrivileged возвращает true, если вызывающий держит административную роль.
func (c Caller) IsPrivileged() bool {
	return c.Role == RoleAdmin
}

// User описывает зарегистрированного участника.
type User struct {
	Address      string
	Username     string
	PasswordHash string
	Role         string
}

// Membership — запись абонемента по токену: текущий уровень и высота,
// на которой подписка истекает. Tier == 0 означает отсутствие активной подписки.
type Membership struct {
	TokenID          int64  `json:"token_id"`
	Owner            string `json:"owner"`
	Tier             uint64 `json:"tier"`
	ExpirationHeight uint64 `json:"expiration_height"`
}

// TierFee — одна ступень тарифной лестницы.
type TierFee struct {
	Tier uint64 `json:"tier"`
	Fee  uint64 `json:"fee"`
}

// LedgerState — глобальные одиночные параметры реестра.
type LedgerState struct {
	TokenName          string `json:"token_name"`
	TokenSymbol        string `json:"token_symbol"`
	MintingPaused      bool   `json:"minting_paused"`
	FeeReceiver        string `json:"fee_receiver"`
	SubscriptionPeriod uint64 `json:"subscription_period"`
	CurrentHeight      uint64 `json:"current_height"`
	NextTokenID        int64  `json:"next_token_id"`
}

// MintRequest — запрос на выпуск нового токена.
// To может быть пустым: тогда владельцем становится сам вызывающий.
type MintRequest struct {
	Tier      uint64 `json:"tier" validate:"required,min=1"`
	To        string `json:"to,omitempty"`
	ValueSent uint64 `json:"value_sent"`
}

// RechargeRequest — запрос на продление подписки существующего токена.
// Multiplier задаёт число оплачиваемых периодов.
type RechargeRequest struct {
	Tier       uint64 `json:"tier" validate:"required,min=1"`
	Multiplier uint64 `json:"multiplier" validate:"required,min=1,max=1200"`
	ValueSent  uint64 `json:"value_sent"`
}

// ChargeResult — итог успешного минта или продления.
type ChargeResult struct {
	TokenID          int64  `json:"token_id"`
	Tier             uint64 `json:"tier"`
	ExpirationHeight uint64 `json:"expiration_height"`
	FeeCollected     uint64 `json:"fee_collected"`
	Refund           uint64 `json:"refund"`
}

// SetTierFeeRequest — запрос администратора на установку комиссии уровня.
type SetTierFeeRequest struct {
	Fee uint64 `json:"fee" validate:"min=0"`
}

// SetReceiverRequest — запрос администратора на смену получателя комиссий.
type SetReceiverRequest struct {
	Address string `json:"address" validate:"required"`
}

// SetPeriodRequest — запрос администратора на смену периода подписки.
type SetPeriodRequest struct {
	Period uint64 `json:"period" validate:"required,min=1"`
}

// AdvanceHeightRequest — тик высоты реестра со стороны хост-окружения.
type AdvanceHeightRequest struct {
	By uint64 `json:"by" validate:"required,min=1"`
}

// DepositRequest — зачисление средств на счёт (административный кран).
type DepositRequest struct {
	Address string `json:"address" validate:"required"`
	Amount  uint64 `json:"amount" validate:"required,min=1"`
}

// RegisterRequest — данные регистрации нового участника.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest — данные входа.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PauseEvent — уведомление о смене состояния минтинга,
// публикуется в брокер при каждом pause/unpause.
type PauseEvent struct {
	EventID string `json:"event_id"`
	Paused  bool   `json:"paused"`
	Actor   string `json:"actor"`
	Height  uint64 `json:"height"`
}
