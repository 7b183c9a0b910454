package http

import (
	"net/http"
	"strings"

	"finanzas/internal/core"
)

// formatAmount renders money for display (e.g. "$1234.50", "-$12.00").
func formatAmount(m core.Money) string {
	if m.Cents < 0 {
		return "-$" + core.Money{Cents: -m.Cents}.Fixed()
	}
	return "$" + m.Fixed()
}

// sanitizeInput removes control characters, then trims whitespace.
func sanitizeInput(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// redirect sends the browser back to a view after a form post.
func redirect(w http.ResponseWriter, r *http.Request, v View) {
	http.Redirect(w, r, v.Path(), http.StatusSeeOther)
}
