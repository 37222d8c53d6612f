package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avolkov/marketpay/internal/config"
	"github.com/avolkov/marketpay/internal/deps"
	"github.com/avolkov/marketpay/internal/errs"
	"github.com/avolkov/marketpay/internal/middleware"
	"github.com/avolkov/marketpay/internal/model"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

type Storage interface {
	CreateStaff(ctx context.Context, login, passwordHash string) error
	GetStaffByLogin(ctx context.Context, login string) (model.Staff, string, error)
	GetStaffByID(ctx context.Context, id int) (model.Staff, error)

	ListOutstandingOrders(ctx context.Context, merchantID int64) ([]model.OutstandingOrder, error)
	ListPayments(ctx context.Context, merchantID int64) ([]model.PaymentView, error)

	Ping(ctx context.Context) error
}

// Reconciler is the common entry point of both reconciliation strategies:
// the per-order waterfall (manual entries) and the bulk month path (gateway).
type Reconciler interface {
	ManualPayment(ctx context.Context, merchantID int64, req model.ManualPaymentRequest, createdBy string) (model.WaterfallResult, error)
	ProcessGatewayNotification(ctx context.Context, payload map[string]any) (model.BulkResult, error)
}

type Server struct {
	storage    Storage
	reconciler Reconciler
	config     *config.Config
	deps       *deps.Deps
}

func NewServer(storage Storage, reconciler Reconciler, config *config.Config, deps *deps.Deps) *Server {
	return &Server{
		storage:    storage,
		reconciler: reconciler,
		config:     config,
		deps:       deps,
	}
}

func (srv *Server) buildRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.LogMiddleware(srv.config.Logger))
	router.Use(middleware.DecompressMiddleware)
	router.Use(middleware.CompressMiddleware(srv.config.Logger))

	router.Post("/api/staff/register", srv.RegisterHandler)
	router.Post("/api/staff/login", srv.LoginHandler)

	// шлюз авторизуется подписью уведомления, не токеном
	router.Post("/api/webhooks/gateway", srv.GatewayWebhookHandler)

	router.Get("/ping", srv.PingHandler)

	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(srv.storage, srv.deps.TokenManager))

		r.Post("/api/merchants/{merchantID}/payments", srv.ManualPaymentHandler)
		r.Get("/api/merchants/{merchantID}/payments", srv.GetPaymentsHandler)
		r.Get("/api/merchants/{merchantID}/outstanding", srv.GetOutstandingHandler)
	})

	return router
}

func (srv *Server) Run(ctx context.Context) error {
	router := srv.buildRouter()

	server := &http.Server{
		Addr:    srv.config.RunAddress,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.config.Logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials

	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if creds.Login == "" || creds.Password == "" {
		http.Error(w, "login and password required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "hash error", http.StatusInternalServerError)
		return
	}

	err = s.storage.CreateStaff(r.Context(), creds.Login, string(hash))
	if err != nil {
		if errors.Is(err, errs.ErrLoginAlreadyExists) {
			http.Error(w, "login taken", http.StatusConflict)
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	staff, _, err := s.storage.GetStaffByLogin(r.Context(), creds.Login)
	if err != nil {
		http.Error(w, "failed to fetch staff user", http.StatusInternalServerError)
		return
	}

	token, err := s.deps.TokenManager.GenerateToken(staff.ID)
	if err != nil {
		http.Error(w, "token error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials

	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if creds.Login == "" || creds.Password == "" {
		http.Error(w, "login and password required", http.StatusBadRequest)
		return
	}

	staff, hash, err := s.storage.GetStaffByLogin(r.Context(), creds.Login)
	if err != nil {
		if errors.Is(err, errs.ErrStaffNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := s.deps.TokenManager.GenerateToken(staff.ID)
	if err != nil {
		http.Error(w, "token error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) ManualPaymentHandler(w http.ResponseWriter, r *http.Request) {
	staff, ok := r.Context().Value(middleware.StaffContextKey).(model.Staff)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	merchantID, err := strconv.ParseInt(chi.URLParam(r, "merchantID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid merchant id", http.StatusBadRequest)
		return
	}

	var req model.ManualPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	result, err := s.reconciler.ManualPayment(r.Context(), merchantID, req, staff.Login)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNonPositiveAmount):
			http.Error(w, "amount must be positive", http.StatusUnprocessableEntity)
		case errors.Is(err, errs.ErrMerchantNotFound):
			http.Error(w, "merchant not found", http.StatusNotFound)
		default:
			http.Error(w, "payment failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

// GatewayWebhookHandler accepts form or JSON notifications. Malformed input
// is always a 4xx: the gateway disables merchants on repeated 5xx responses.
func (s *Server) GatewayWebhookHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeWebhookBody(r)
	if err != nil {
		http.Error(w, "unreadable payload", http.StatusBadRequest)
		return
	}

	result, err := s.reconciler.ProcessGatewayNotification(r.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrGatewayNotSuccessful),
			errors.Is(err, errs.ErrBadGatewayPayload):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, errs.ErrMerchantNotFound):
			http.Error(w, "unknown merchant", http.StatusBadRequest)
		default:
			http.Error(w, "reconciliation failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

func decodeWebhookBody(r *http.Request) (map[string]any, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "json") {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return nil, err
		}
		return payload, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	payload := make(map[string]any, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}
	return payload, nil
}

func (s *Server) GetOutstandingHandler(w http.ResponseWriter, r *http.Request) {
	merchantID, err := strconv.ParseInt(chi.URLParam(r, "merchantID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid merchant id", http.StatusBadRequest)
		return
	}

	orders, err := s.storage.ListOutstandingOrders(r.Context(), merchantID)
	if err != nil {
		http.Error(w, "failed to get outstanding orders", http.StatusInternalServerError)
		return
	}

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

func (s *Server) GetPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	merchantID, err := strconv.ParseInt(chi.URLParam(r, "merchantID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid merchant id", http.StatusBadRequest)
		return
	}

	payments, err := s.storage.ListPayments(r.Context(), merchantID)
	if err != nil {
		http.Error(w, "failed to get payments", http.StatusInternalServerError)
		return
	}

	if len(payments) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payments); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

func (s *Server) PingHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.Ping(r.Context()); err != nil {
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
