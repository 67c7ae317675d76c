package ledger

import (
	"fmt"
	"math"
)

// Settlement — расчёт одной оплаты: сколько удержать в пользу получателя
// комиссий и сколько вернуть вызывающему.
type Settlement struct {
	Due    uint64 // сумма к удержанию
	Refund uint64 // возврат вызывающему
}

// Settle вычисляет оплату за операцию с уровнем, комиссия которого равна fee,
// и множителем периодов multiplier.
//
// Для привилегированного вызова (feeRequired == false) вся переданная сумма
// возвращается вызывающему, удержание нулевое. Иначе удерживается ровно
// fee*multiplier, излишек возвращается; нулевая расчётная сумма означает
// выключенный уровень.
func Settle(feeRequired bool, fee, multiplier, valueSent uint64) (Settlement, error) {
	if !feeRequired {
		return Settlement{Due: 0, Refund: valueSent}, nil
	}
	if multiplier != 0 && fee > math.MaxUint64/multiplier {
		return Settlement{}, fmt.Errorf("fee overflow: %w", ErrInsufficientFee)
	}
	due := fee * multiplier
	if due == 0 {
		return Settlement{}, ErrTierDisabled
	}
	if valueSent < due {
		return Settlement{}, ErrInsufficientFee
	}
	return Settlement{Due: due, Refund: valueSent - due}, nil
}
