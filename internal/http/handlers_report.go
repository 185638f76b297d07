package http

import (
	"net/http"

	"expensevis/internal/core"
	"expensevis/internal/report"
	"expensevis/internal/service"
)

func (s *Server) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.Summarize(r.Context(), requestAccount(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleReportCharts(w http.ResponseWriter, r *http.Request) {
	var target core.Currency
	if raw := r.URL.Query().Get("currency"); raw != "" {
		cur, err := core.ParseCurrency(raw)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		target = cur
	}

	policy := report.PassThroughUnknown
	if r.URL.Query().Get("policy") == "reject" {
		policy = report.RejectUnknown
	}

	bundle, err := s.reports.Charts(r.Context(), requestAccount(r), target, policy)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.FinancialAdvice())
}
