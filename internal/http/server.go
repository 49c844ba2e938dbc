package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"keur/internal/cache"
	"keur/internal/currency"
	applog "keur/internal/log"
	"keur/internal/report"
	"keur/internal/services"
	"keur/internal/store"
)

// JobPublisher hands report jobs to the broker. A nil publisher disables
// async exports but leaves the rest of the API working.
type JobPublisher interface {
	PublishExportRequest(ctx context.Context, year, month int) error
}

type Server struct {
	http.Server

	bookings   *services.BookingService
	expenses   *services.ExpenseService
	properties *services.PropertyService
	store      store.Store
	publisher  JobPublisher

	rateLimiter  *rateLimiter
	summaryCache *cache.LRUCache[report.Summary]
	cacheManager *cache.Manager

	// The exchange rate can change at runtime through the settings
	// endpoint, so converter access goes through convMu.
	convMu    sync.RWMutex
	converter currency.Converter

	shutdownOnce sync.Once
}

// NewServer wires routes and caches, returning a ready-to-run server.
func NewServer(addr string, st store.Store, conv currency.Converter, publisher JobPublisher) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		bookings:     services.NewBookingService(st, nil),
		expenses:     services.NewExpenseService(st, nil),
		properties:   services.NewPropertyService(st),
		store:        st,
		publisher:    publisher,
		rateLimiter:  newRateLimiter(),
		summaryCache: cache.NewLRUCache[report.Summary](100, 5*time.Minute),
		cacheManager: cache.NewManager(),
		converter:    conv,
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/bookings", s.wrap(s.handleCreateBooking))
	mux.HandleFunc("GET /api/bookings", s.wrap(s.handleListBookings))
	mux.HandleFunc("PATCH /api/bookings/{id}/status", s.wrap(s.handleUpdateBookingStatus))
	mux.HandleFunc("DELETE /api/bookings/{id}", s.wrap(s.handleDeleteBooking))

	mux.HandleFunc("POST /api/expenses", s.wrap(s.handleCreateExpense))
	mux.HandleFunc("GET /api/expenses", s.wrap(s.handleListExpenses))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.wrap(s.handleDeleteExpense))

	mux.HandleFunc("POST /api/properties", s.wrap(s.handleCreateProperty))
	mux.HandleFunc("GET /api/properties", s.wrap(s.handleListProperties))
	mux.HandleFunc("GET /api/properties/{id}", s.wrap(s.handleGetProperty))
	mux.HandleFunc("PATCH /api/properties/{id}/status", s.wrap(s.handleUpdatePropertyStatus))

	mux.HandleFunc("GET /api/dashboard/summary", s.wrap(s.handleDashboardSummary))
	mux.HandleFunc("GET /api/dashboard/monthly", s.wrap(s.handleDashboardMonthly))
	mux.HandleFunc("GET /api/dashboard/cashflow", s.wrap(s.handleDashboardCashflow))

	mux.HandleFunc("GET /api/settings/currency", s.wrap(s.handleGetCurrency))
	mux.HandleFunc("PUT /api/settings/currency", s.wrap(s.handleUpdateCurrency))

	mux.HandleFunc("GET /api/exports/expenses.csv", s.wrap(s.handleExportExpensesCSV))
	mux.HandleFunc("GET /api/exports/bookings.csv", s.wrap(s.handleExportBookingsCSV))
	mux.HandleFunc("POST /api/exports/monthly", s.wrap(s.handleRequestMonthlyExport))

	return s
}

// SetRefreshPublisher routes booking and expense writes through the broker
// so the worker refreshes the hosted summary.
func (s *Server) SetRefreshPublisher(p services.RefreshPublisher) {
	s.bookings = services.NewBookingService(s.store, p)
	s.expenses = services.NewExpenseService(s.store, p)
}

// Shutdown stops cleanup goroutines before draining the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// wrap adds request IDs, security headers, rate limiting on writes, and
// request logging.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP)

		if isWrite(r.Method) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

type requestIDKey struct{}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter captures the status code for request logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// conv returns the current converter snapshot.
func (s *Server) conv() currency.Converter {
	s.convMu.RLock()
	defer s.convMu.RUnlock()
	return s.converter
}

func (s *Server) setConv(c currency.Converter) {
	s.convMu.Lock()
	s.converter = c
	s.convMu.Unlock()
	// Cached aggregates carry formatted amounts in the old rate.
	s.summaryCache.Purge()
}

func (s *Server) invalidateSummaries() {
	s.summaryCache.Purge()
}
