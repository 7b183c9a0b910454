package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income          Kind = "income"
	FixedExpense    Kind = "fixed"
	VariableExpense Kind = "variable"
)

const dateLayout = "2006-01-02"

type (
	// Kind classifies a transaction.
	Kind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		Amount      Money  `json:"amount"`
		Kind        Kind   `json:"type"`
		Category    string `json:"category,omitempty"` // empty for income
		Date        Date   `json:"date"`
		User        string `json:"user"`
	}
)

var (
	ErrInvalidKind      = errors.New("invalid transaction type")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyUser        = errors.New("empty user")
)

// ParseKind accepts the stored value of a kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.TrimSpace(s))
	if !k.Valid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

func (k Kind) Valid() bool {
	switch k {
	case Income, FixedExpense, VariableExpense:
		return true
	}
	return false
}

// IsExpense reports whether transactions of this kind carry a category.
func (k Kind) IsExpense() bool {
	return k == FixedExpense || k == VariableExpense
}

// Label returns the display name shown in the UI.
func (k Kind) Label() string {
	switch k {
	case Income:
		return "Ingreso"
	case FixedExpense:
		return "Gasto fijo"
	case VariableExpense:
		return "Gasto variable"
	default:
		return string(k)
	}
}

// Kinds lists the kinds in form order.
func Kinds() []Kind {
	return []Kind{Income, FixedExpense, VariableExpense}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	// Older payloads may carry a full timestamp.
	if len(s) > len(dateLayout) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return ErrInvalidDate
		}
		*d = NewDate(t.Year(), int(t.Month()), t.Day())
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.User) == "" {
		return ErrEmptyUser
	}
	return nil
}
