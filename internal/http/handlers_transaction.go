package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finanzas/internal/log"
)

// handleCreateTransaction adds a transaction from the dashboard form.
// Incomplete or invalid submissions leave the collection untouched.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	defer redirect(w, r, ViewDashboard)

	form, err := parseForm(r)
	if err != nil {
		return
	}
	logger := log.FromContext(r.Context())
	in, err := ParseTransactionForm(form)
	if err != nil {
		logger.DebugContext(r.Context(), "Ignoring incomplete transaction form", log.FieldError, err)
		return
	}
	if _, err := s.ledger.AddTransaction(r.Context(), in); err != nil {
		logger.WarnContext(r.Context(), "Transaction rejected", log.FieldError, err)
	}
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	s.ledger.DeleteTransaction(r.Context(), chi.URLParam(r, "id"))
	redirect(w, r, ViewDashboard)
}
