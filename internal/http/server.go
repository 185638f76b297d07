// Package http exposes the tracker as a JSON API. Every data route is
// scoped to the authenticated user's account key; nothing is shared
// across users.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"expensevis/internal/middleware/trace"
	"expensevis/internal/service"
)

type Server struct {
	http.Server

	auth      *service.AuthService
	expenses  *service.ExpenseService
	reports   *service.ReportService
	reminders *service.ReminderService

	rateLimiter  *rateLimiter
	tracer       *trace.Middleware
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, auth *service.AuthService, expenses *service.ExpenseService, reports *service.ReportService, reminders *service.ReminderService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		auth:        auth,
		expenses:    expenses,
		reports:     reports,
		reminders:   reminders,
		rateLimiter: newRateLimiter(),
		tracer:      trace.NewMiddleware(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.HandleFunc("GET /metricz", s.handleMetrics)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/expenses", s.requireAuth(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.requireAuth(s.handleCreateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.requireAuth(s.handleDeleteExpense))
	mux.HandleFunc("POST /api/expenses/import", s.requireAuth(s.handleImport))
	mux.HandleFunc("GET /api/expenses/export", s.requireAuth(s.handleExport))

	mux.HandleFunc("GET /api/reports/summary", s.requireAuth(s.handleReportSummary))
	mux.HandleFunc("GET /api/reports/charts", s.requireAuth(s.handleReportCharts))

	mux.HandleFunc("GET /api/budget", s.requireAuth(s.handleGetBudget))
	mux.HandleFunc("PUT /api/budget", s.requireAuth(s.handleSetBudget))

	mux.HandleFunc("GET /api/reminders", s.requireAuth(s.handleListReminders))
	mux.HandleFunc("POST /api/reminders", s.requireAuth(s.handleCreateReminder))
	mux.HandleFunc("DELETE /api/reminders/{id}", s.requireAuth(s.handleDeleteReminder))
	mux.HandleFunc("POST /api/reminders/{id}/send", s.requireAuth(s.handleSendReminder))

	mux.HandleFunc("GET /api/advice", s.handleAdvice)

	s.Server = http.Server{
		Addr:         addr,
		Handler:      s.withRateLimit(s.tracer.Middleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Shutdown stops the rate limiter cleanup goroutine before draining the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	m := s.tracer.GetMetrics()
	writeJSON(w, http.StatusOK, map[string]int64{
		"totalRequests":      m.TotalRequests,
		"lastResponseTimeMs": m.LastResponseTime,
	})
}
