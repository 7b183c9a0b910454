package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"finanzas/internal/core"
	"finanzas/internal/services"
)

// Form field names shared with the templates.
const (
	fieldKind        = "type"
	fieldDescription = "description"
	fieldAmount      = "amount"
	fieldCategory    = "category"
	fieldDate        = "date"
	fieldUser        = "user"
	fieldName        = "name"
)

var errMissingField = errors.New("missing required field")

// formValue returns the sanitized value of a form field.
func formValue(form url.Values, key string) string {
	return sanitizeInput(form.Get(key))
}

// parseForm parses the request body, reporting failures to the caller.
func parseForm(r *http.Request) (url.Values, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	return r.PostForm, nil
}

// ParseTransactionForm converts the dashboard form into a new transaction.
// Description, amount, date and user are required; the category is only
// kept for expenses.
func ParseTransactionForm(form url.Values) (services.NewTransaction, error) {
	in := services.NewTransaction{
		Description: formValue(form, fieldDescription),
		User:        formValue(form, fieldUser),
	}
	amount := formValue(form, fieldAmount)
	date := formValue(form, fieldDate)
	if in.Description == "" || amount == "" || date == "" || in.User == "" {
		return services.NewTransaction{}, errMissingField
	}

	kind, err := core.ParseKind(formValue(form, fieldKind))
	if err != nil {
		return services.NewTransaction{}, err
	}
	in.Kind = kind

	if in.Amount, err = core.ParseAmount(amount); err != nil {
		return services.NewTransaction{}, err
	}
	if in.Date, err = core.ParseDate(date); err != nil {
		return services.NewTransaction{}, err
	}
	if kind.IsExpense() {
		in.Category = formValue(form, fieldCategory)
	}
	return in, nil
}
