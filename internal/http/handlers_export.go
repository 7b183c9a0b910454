package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"finanzas/internal/export"
	"finanzas/internal/log"
)

// handleExport downloads every transaction as CSV. With nothing to export
// the dashboard is shown with a notice instead.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentExport)
	txs := s.ledger.Transactions()

	data, err := export.CSV(txs)
	if errors.Is(err, export.ErrNoTransactions) {
		logger.InfoContext(r.Context(), "Export requested with no transactions")
		target := ViewDashboard.Path() + "?" + url.Values{noticeParam: {noticeExportEmpty}}.Encode()
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "Export failed", log.FieldError, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	logger.InfoContext(r.Context(), "Transactions exported",
		log.FieldOperation, log.OpExport, log.FieldCount, len(txs), log.FieldBytes, len(data))
}
