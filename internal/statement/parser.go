// Package statement parses uploaded bank statement CSVs into transactions.
//
// Expected columns (header names are trimmed before lookup): Date in
// "02 Jan 2006" form, Details free text, Amount numeric with optional
// thousands separators, and a Debit/Credit flow label. Structural problems
// reject the upload wholesale; an amount cell that fails numeric coercion
// only marks that row's amount invalid.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"finboard/internal/core"
)

const dateLayout = core.DateLayout

var requiredColumns = []string{"Date", "Details", "Amount", "Debit/Credit"}

// ParseError describes why an upload was rejected. Row is 1-based over data
// rows and zero for header-level problems.
type ParseError struct {
	Row    int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("statement header: %v", e.Err)
	}
	if e.Column != "" {
		return fmt.Sprintf("statement row %d, column %s: %v", e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("statement row %d: %v", e.Row, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a whole statement. Any structural failure returns a nil slice
// and a *ParseError: a rejected upload never shows a partial table.
func Parse(r io.Reader) ([]core.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: fmt.Errorf("empty file")}
	}
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	var txs []core.Transaction
	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, &ParseError{Row: row, Err: err}
		}

		tx, perr := parseRow(record, cols, row)
		if perr != nil {
			return nil, perr
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// mapColumns resolves required column names to indices. Header cells may
// carry surrounding whitespace from sloppy exports.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, want := range requiredColumns {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("missing column %q", want)
		}
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int, row int) (core.Transaction, *ParseError) {
	field := func(name string) (string, bool) {
		idx := cols[name]
		if idx >= len(record) {
			return "", false
		}
		return record[idx], true
	}

	rawDate, ok := field("Date")
	if !ok {
		return core.Transaction{}, &ParseError{Row: row, Column: "Date", Err: fmt.Errorf("short row")}
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(rawDate))
	if err != nil {
		return core.Transaction{}, &ParseError{Row: row, Column: "Date", Err: err}
	}

	rawFlow, ok := field("Debit/Credit")
	if !ok {
		return core.Transaction{}, &ParseError{Row: row, Column: "Debit/Credit", Err: fmt.Errorf("short row")}
	}
	flow, err := core.ParseFlow(rawFlow)
	if err != nil {
		return core.Transaction{}, &ParseError{Row: row, Column: "Debit/Credit", Err: fmt.Errorf("%w: %q", err, rawFlow)}
	}

	details, _ := field("Details")
	rawAmount, _ := field("Amount")

	return core.Transaction{
		Date:     core.Date{Time: date},
		Details:  strings.TrimSpace(details),
		Amount:   core.ParseAmount(rawAmount),
		Flow:     flow,
		Category: core.Uncategorized,
	}, nil
}
