package create

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-system/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-system/internal/lib/errs"
	"github.com/magabrotheeeer/subscription-system/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, email string, req models.DummyPaymentMethod) (*models.PaymentMethod, error) {
	args := m.Called(ctx, email, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := models.DummyPaymentMethod{
		Type:       "card",
		CardNumber: "4111111111111111",
		ExpiryDate: "12/27",
		CVV:        123,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		email          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное добавление",
			requestBody: validBody,
			email:       "user@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user@example.com", mock.AnythingOfType("models.DummyPaymentMethod")).
					Return(&models.PaymentMethod{ID: 3, Type: "card", CardNumber: "4111111111111111", IsActive: true, UserID: 1}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":3`,
		},
		{
			name: "номер карты с буквами",
			requestBody: models.DummyPaymentMethod{
				Type:       "card",
				CardNumber: "4111-1111",
				ExpiryDate: "12/27",
				CVV:        123,
			},
			email:          "user@example.com",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field CardNumber can contain only numbers",
		},
		{
			name:        "дубликат номера карты",
			requestBody: validBody,
			email:       "user@example.com",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user@example.com", mock.AnythingOfType("models.DummyPaymentMethod")).
					Return(nil, errs.Conflict("Способ оплаты с таким номером карты уже существует"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "Способ оплаты с таким номером карты уже существует",
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    validBody,
			email:          "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/payment_method/new", bytes.NewReader(body))
			ctx := context.WithValue(req.Context(), middlewarectx.User, tt.email)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
