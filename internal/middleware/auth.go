package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/avolkov/marketpay/internal/auth"
	"github.com/avolkov/marketpay/internal/errs"
	"github.com/avolkov/marketpay/internal/model"
)

type Storage interface {
	GetStaffByID(ctx context.Context, id int) (model.Staff, error)
}

type contextKey string

const StaffContextKey contextKey = "staff"

func AuthMiddleware(store Storage, tm *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			staffID, err := tm.ParseToken(tokenStr)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			staff, err := store.GetStaffByID(r.Context(), staffID)
			if err != nil {
				if errors.Is(err, errs.ErrStaffNotFound) {
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), StaffContextKey, staff)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
