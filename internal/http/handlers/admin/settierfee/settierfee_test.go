package settierfee

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

// MockService реализует интерфейс settierfee.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SetTierFee(ctx context.Context, caller models.Caller, tier, fee uint64) error {
	return m.Called(ctx, caller, tier, fee).Error(0)
}

func TestSetTierFeeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	adminCaller := models.Caller{Address: "addr-admin", Role: models.RoleAdmin}
	userCaller := models.Caller{Address: "addr-user", Role: models.RoleUser}

	tests := []struct {
		name           string
		tier           string
		body           string
		caller         models.Caller
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "установка комиссии уровня",
			tier:   "2",
			body:   `{"fee": 250}`,
			caller: adminCaller,
			setupMock: func(m *MockService) {
				m.On("SetTierFee", mock.Anything, adminCaller, uint64(2), uint64(250)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "некорректный уровень в URL",
			tier:           "xyz",
			body:           `{"fee": 250}`,
			caller:         adminCaller,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `failed to decode tier from url`,
		},
		{
			name:   "невозрастающая комиссия",
			tier:   "2",
			body:   `{"fee": 100}`,
			caller: adminCaller,
			setupMock: func(m *MockService) {
				m.On("SetTierFee", mock.Anything, adminCaller, uint64(2), uint64(100)).
					Return(fmt.Errorf("services.membership.SetTierFee: %w", ledger.ErrFeeNotIncreasing))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `tier fee must exceed previous tier fee`,
		},
		{
			name:   "пропуск уровня",
			tier:   "5",
			body:   `{"fee": 900}`,
			caller: adminCaller,
			setupMock: func(m *MockService) {
				m.On("SetTierFee", mock.Anything, adminCaller, uint64(5), uint64(900)).
					Return(fmt.Errorf("services.membership.SetTierFee: %w", ledger.ErrTierGap))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `previous tier is not enabled`,
		},
		{
			name:   "недостаточно прав",
			tier:   "1",
			body:   `{"fee": 100}`,
			caller: userCaller,
			setupMock: func(m *MockService) {
				m.On("SetTierFee", mock.Anything, userCaller, uint64(1), uint64(100)).
					Return(fmt.Errorf("services.membership.SetTierFee: %w", ledger.ErrUnauthorized))
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `unauthorized`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/admin/schedule/"+tt.tier, strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("tier", tt.tier)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.CallerKey, tt.caller)
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
