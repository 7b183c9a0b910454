package http

import (
	"net/http"

	"finanzas/internal/core"
	"finanzas/internal/log"
)

// Notice codes passed to the dashboard through the query string.
const (
	noticeParam       = "notice"
	noticeExportEmpty = "export-empty"
)

var notices = map[string]string{
	noticeExportEmpty: "No hay transacciones para exportar",
}

type dashboardData struct {
	View         View
	Summary      core.Summary
	Expenses     core.Money
	Budget       core.Money
	Remaining    core.Money
	Transactions []core.Transaction
	Categories   []string
	Users        []string
	Today        string
	Notice       string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	summary := s.ledger.Summary()
	budget := s.ledger.Budget()
	data := dashboardData{
		View:         ViewDashboard,
		Summary:      summary,
		Expenses:     summary.TotalExpenses(),
		Budget:       budget,
		Remaining:    summary.Remaining(budget),
		Transactions: s.ledger.Transactions(),
		Categories:   s.ledger.Categories(),
		Users:        s.ledger.Users(),
		Today:        core.Today().String(),
		Notice:       notices[r.URL.Query().Get(noticeParam)],
	}
	s.render(w, r, "dashboard.html", data)
}

// handleSetBudget replaces the budget. Unparseable or negative input is
// ignored and the dashboard is shown unchanged.
func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	defer redirect(w, r, ViewDashboard)

	form, err := parseForm(r)
	if err != nil {
		return
	}
	amount, err := core.ParseAmount(formValue(form, fieldAmount))
	if err != nil {
		log.FromContext(r.Context()).DebugContext(r.Context(), "Ignoring invalid budget", log.FieldError, err)
		return
	}
	s.ledger.SetBudget(r.Context(), amount)
}
