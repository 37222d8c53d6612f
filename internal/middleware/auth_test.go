package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avolkov/marketpay/internal/auth"
	"github.com/avolkov/marketpay/internal/errs"
	"github.com/avolkov/marketpay/internal/model"
)

type mockStorage struct {
	GetStaffFunc func(ctx context.Context, id int) (model.Staff, error)
}

func (m *mockStorage) GetStaffByID(ctx context.Context, id int) (model.Staff, error) {
	return m.GetStaffFunc(ctx, id)
}

func TestAuthMiddleware(t *testing.T) {
	tm := auth.NewTokenManager("test-secret")
	validToken, _ := tm.GenerateToken(1)

	tests := []struct {
		name           string
		authHeader     string
		storage        Storage
		expectedStatus int
	}{
		{
			name:           "no header",
			authHeader:     "",
			storage:        &mockStorage{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalidtoken",
			storage:        &mockStorage{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "staff not found",
			authHeader: "Bearer " + validToken,
			storage: &mockStorage{
				GetStaffFunc: func(ctx context.Context, id int) (model.Staff, error) {
					return model.Staff{}, errs.ErrStaffNotFound
				},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "storage error",
			authHeader: "Bearer " + validToken,
			storage: &mockStorage{
				GetStaffFunc: func(ctx context.Context, id int) (model.Staff, error) {
					return model.Staff{}, errors.New("some db error")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:       "ok",
			authHeader: "Bearer " + validToken,
			storage: &mockStorage{
				GetStaffFunc: func(ctx context.Context, id int) (model.Staff, error) {
					return model.Staff{ID: 1, Login: "test"}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			var gotStaff model.Staff
			handler := AuthMiddleware(tt.storage, tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotStaff, _ = r.Context().Value(StaffContextKey).(model.Staff)
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
			if tt.expectedStatus == http.StatusOK && gotStaff.ID != 1 {
				t.Errorf("staff not placed in context: %+v", gotStaff)
			}
		})
	}
}
