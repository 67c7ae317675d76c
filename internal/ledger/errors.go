// Package ledger реализует чистые правила реестра абонементов:
// тарифную лестницу уровней, расчёт оплаты с возвратом излишка
// и вычисление новой высоты истечения подписки.
package ledger

import "errors"

// Терминальные ошибки операций реестра. Любая из них полностью
// откатывает вызов — частичных эффектов не остаётся.
var (
	// ErrUnauthorized — вызывающий не держит административную роль.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMintingPaused — минтинг закрыт для непривилегированных вызовов.
	ErrMintingPaused = errors.New("minting is paused")
	// ErrInvalidTier — уровень 0 зарезервирован и не может иметь комиссию.
	ErrInvalidTier = errors.New("invalid tier")
	// ErrFeeNotIncreasing — комиссия уровня не превышает комиссию предыдущего.
	ErrFeeNotIncreasing = errors.New("tier fee must exceed previous tier fee")
	// ErrTierGap — предыдущий уровень ещё не включён (комиссия 0).
	ErrTierGap = errors.New("previous tier is not enabled")
	// ErrTierDisabled — расчётная комиссия равна нулю, уровень выключен.
	ErrTierDisabled = errors.New("tier is disabled")
	// ErrInsufficientFee — переданной суммы не хватает на комиссию.
	ErrInsufficientFee = errors.New("insufficient fee")
	// ErrTransferFailure — перевод средств отклонён (счёт заморожен или пуст).
	ErrTransferFailure = errors.New("value transfer failed")
	// ErrTokenNotFound — токен с данным ID не выпускался.
	ErrTokenNotFound = errors.New("token not found")
)
