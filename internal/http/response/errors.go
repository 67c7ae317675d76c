package response

import (
	"errors"
	"net/http"

	"github.com/Memetic-Block/membership-nfts/internal/ledger"
)

// ErrorStatus переводит терминальную ошибку реестра в HTTP-статус.
// Неопознанные ошибки считаются внутренними.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrMintingPaused):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInvalidTier),
		errors.Is(err, ledger.ErrFeeNotIncreasing),
		errors.Is(err, ledger.ErrTierGap):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrTierDisabled):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInsufficientFee):
		return http.StatusPaymentRequired
	case errors.Is(err, ledger.ErrTransferFailure):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrTokenNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage возвращает каноничный текст терминальной ошибки реестра,
// не раскрывая внутренние детали неопознанных ошибок.
func ErrorMessage(err error) string {
	for _, known := range []error{
		ledger.ErrUnauthorized,
		ledger.ErrMintingPaused,
		ledger.ErrInvalidTier,
		ledger.ErrFeeNotIncreasing,
		ledger.ErrTierGap,
		ledger.ErrTierDisabled,
		ledger.ErrInsufficientFee,
		ledger.ErrTransferFailure,
		ledger.ErrTokenNotFound,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "internal error"
}
