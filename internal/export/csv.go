// Package export renders transactions as comma-separated text.
//
// A field is wrapped in double quotes, with inner quotes doubled, only when
// it contains a comma. Quotes or newlines alone are written as-is.
package export

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"finanzas/internal/core"
)

const (
	// Filename is the name offered to the browser for the download.
	Filename = "transacciones.csv"
	// ContentType of the rendered file.
	ContentType = "text/csv; charset=utf-8"
	Header      = "ID,Descripción,Monto,Tipo,Categoría,Fecha,Usuario"
)

// ErrNoTransactions is returned when there is nothing to export.
var ErrNoTransactions = errors.New("no transactions to export")

// CSV renders the header plus one row per transaction, in collection order.
func CSV(txs []core.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, txs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams the same output as CSV to w.
func Write(w io.Writer, txs []core.Transaction) error {
	if len(txs) == 0 {
		return ErrNoTransactions
	}
	lines := make([]string, 0, len(txs)+1)
	lines = append(lines, Header)
	for _, t := range txs {
		lines = append(lines, Row(t))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// Row renders a single transaction line without a trailing newline.
func Row(t core.Transaction) string {
	fields := []string{
		t.ID,
		t.Description,
		t.Amount.String(),
		string(t.Kind),
		t.Category,
		t.Date.String(),
		t.User,
	}
	for i, f := range fields {
		fields[i] = quote(f)
	}
	return strings.Join(fields, ",")
}

func quote(field string) string {
	if !strings.Contains(field, ",") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
