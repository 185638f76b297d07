package http

import (
	"net/http"

	"expensevis/internal/core"
)

type sendReminderRequest struct {
	PaymentLink string `json:"paymentLink"`
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	list, err := s.reminders.ListReminders(r.Context(), requestAccount(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var rem core.PaymentReminder
	if err := decodeJSON(r, &rem); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	rem.ID = ""

	id, err := s.reminders.AddReminder(r.Context(), requestAccount(r), rem)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := s.reminders.DeleteReminder(r.Context(), requestAccount(r), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSendReminder queues the dispatch; 202 means the broker accepted
// it, not that the mail went out.
func (s *Server) handleSendReminder(w http.ResponseWriter, r *http.Request) {
	var req sendReminderRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	err := s.reminders.SendReminder(r.Context(), requestAccount(r), requestUsername(r), r.PathValue("id"), req.PaymentLink)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
