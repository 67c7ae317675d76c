package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name        string
		feeRequired bool
		fee         uint64
		multiplier  uint64
		valueSent   uint64
		want        Settlement
		wantErr     error
	}{
		{
			name:        "точная сумма без сдачи",
			feeRequired: true,
			fee:         100,
			multiplier:  1,
			valueSent:   100,
			want:        Settlement{Due: 100, Refund: 0},
		},
		{
			name:        "излишек возвращается полностью",
			feeRequired: true,
			fee:         100,
			multiplier:  1,
			valueSent:   137,
			want:        Settlement{Due: 100, Refund: 37},
		},
		{
			name:        "множитель масштабирует удержание",
			feeRequired: true,
			fee:         100,
			multiplier:  12,
			valueSent:   1200,
			want:        Settlement{Due: 1200, Refund: 0},
		},
		{
			name:        "недостаточная сумма",
			feeRequired: true,
			fee:         100,
			multiplier:  1,
			valueSent:   99,
			wantErr:     ErrInsufficientFee,
		},
		{
			name:        "на один меньше при множителе",
			feeRequired: true,
			fee:         100,
			multiplier:  3,
			valueSent:   299,
			wantErr:     ErrInsufficientFee,
		},
		{
			name:        "нулевая комиссия — уровень выключен",
			feeRequired: true,
			fee:         0,
			multiplier:  5,
			valueSent:   1000,
			wantErr:     ErrTierDisabled,
		},
		{
			name:        "переполнение произведения",
			feeRequired: true,
			fee:         math.MaxUint64 / 2,
			multiplier:  3,
			valueSent:   math.MaxUint64,
			wantErr:     ErrInsufficientFee,
		},
		{
			name:        "привилегированный вызов: всё назад",
			feeRequired: false,
			fee:         100,
			multiplier:  1,
			valueSent:   500,
			want:        Settlement{Due: 0, Refund: 500},
		},
		{
			name:        "привилегированный вызов без суммы",
			feeRequired: false,
			fee:         100,
			multiplier:  1,
			valueSent:   0,
			want:        Settlement{Due: 0, Refund: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Settle(tt.feeRequired, tt.fee, tt.multiplier, tt.valueSent)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
