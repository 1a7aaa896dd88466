package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/vasiliy-maslov/toolstore/internal/checkout"
	"github.com/vasiliy-maslov/toolstore/internal/order"
)

type mockCheckoutService struct {
	submitFunc func(ctx context.Context, sessionID string, userID uuid.UUID, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error)
}

func (m *mockCheckoutService) Submit(ctx context.Context, sessionID string, userID uuid.UUID, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error) {
	return m.submitFunc(ctx, sessionID, userID, address, paymentMethod)
}

const validCheckoutBody = `{
	"user_id": "123e4567-e89b-42d3-a456-426614174000",
	"shipping_address": {
		"full_name": "Ravi Kumar",
		"address_line1": "14 Industrial Estate",
		"city": "Pune",
		"state": "Maharashtra",
		"pincode": "411001",
		"phone": "9876543210"
	},
	"payment_method": "cod"
}`

func TestCheckoutHandler_Checkout(t *testing.T) {
	tests := []struct {
		name           string
		session        string
		body           string
		submit         func(ctx context.Context, sessionID string, userID uuid.UUID, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error)
		expectedStatus int
	}{
		{
			name:    "success",
			session: "sess-1",
			body:    validCheckoutBody,
			submit: func(ctx context.Context, sessionID string, userID uuid.UUID, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error) {
				assert.Equal(t, "Ravi Kumar", address.FullName)
				assert.Equal(t, order.PaymentCashOnDelivery, paymentMethod)
				return &order.Order{Status: order.StatusPending}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_session_header",
			session:        "",
			body:           validCheckoutBody,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "missing_address_fields",
			session: "sess-1",
			body: `{
				"user_id": "123e4567-e89b-42d3-a456-426614174000",
				"shipping_address": {"full_name": "Ravi Kumar"},
				"payment_method": "cod"
			}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "unknown_payment_method",
			session: "sess-1",
			body: `{
				"user_id": "123e4567-e89b-42d3-a456-426614174000",
				"shipping_address": {
					"full_name": "Ravi Kumar",
					"address_line1": "14 Industrial Estate",
					"city": "Pune",
					"state": "Maharashtra",
					"pincode": "411001",
					"phone": "9876543210"
				},
				"payment_method": "card"
			}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "empty_cart",
			session: "sess-1",
			body:    validCheckoutBody,
			submit: func(ctx context.Context, sessionID string, userID uuid.UUID, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error) {
				return nil, checkout.ErrEmptyCart
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "persistence_failure",
			session: "sess-1",
			body:    validCheckoutBody,
			submit: func(ctx context.Context, sessionID string, userID uuid.UUID, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error) {
				return nil, assert.AnError
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCheckoutService{submitFunc: tt.submit}
			r := chi.NewRouter()
			NewCheckoutHandler(svc).RegisterRoutes(r)

			req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBufferString(tt.body))
			if tt.session != "" {
				req.Header.Set(sessionHeader, tt.session)
			}
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
