package recharge

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Memetic-Block/membership-nfts/internal/http/middlewarectx"
	"github.com/Memetic-Block/membership-nfts/internal/ledger"
	"github.com/Memetic-Block/membership-nfts/internal/models"
)

// MockService реализует интерфейс recharge.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Recharge(ctx context.Context, caller models.Caller, tokenID int64, req models.RechargeRequest) (*models.ChargeResult, error) {
	args := m.Called(ctx, caller, tokenID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.ChargeResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRechargeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	userCaller := models.Caller{Address: "addr-user", Role: models.RoleUser}

	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное продление",
			id:   "4",
			body: `{"tier": 2, "multiplier": 3, "value_sent": 600}`,
			setupMock: func(m *MockService) {
				result := &models.ChargeResult{
					TokenID:          4,
					Tier:             2,
					ExpirationHeight: 350,
					FeeCollected:     600,
					Refund:           0,
				}
				m.On("Recharge", mock.Anything, userCaller, int64(4),
					models.RechargeRequest{Tier: 2, Multiplier: 3, ValueSent: 600}).Return(result, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"expiration_height":350`,
		},
		{
			name:           "некорректный id в URL",
			id:             "abc",
			body:           `{"tier": 1, "multiplier": 1, "value_sent": 100}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `failed to decode id from url`,
		},
		{
			name:           "множитель выше потолка",
			id:             "4",
			body:           `{"tier": 1, "multiplier": 1201, "value_sent": 100}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Multiplier is above the allowed maximum`,
		},
		{
			name: "токен не найден",
			id:   "99",
			body: `{"tier": 1, "multiplier": 1, "value_sent": 100}`,
			setupMock: func(m *MockService) {
				m.On("Recharge", mock.Anything, userCaller, int64(99), mock.Anything).
					Return(nil, fmt.Errorf("services.membership.Recharge: %w", ledger.ErrTokenNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `token not found`,
		},
		{
			name: "недостаточная оплата",
			id:   "4",
			body: `{"tier": 2, "multiplier": 3, "value_sent": 599}`,
			setupMock: func(m *MockService) {
				m.On("Recharge", mock.Anything, userCaller, int64(4), mock.Anything).
					Return(nil, fmt.Errorf("services.membership.Recharge: %w", ledger.ErrInsufficientFee))
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedBody:   `insufficient fee`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/memberships/"+tt.id+"/recharge", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.CallerKey, userCaller)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
