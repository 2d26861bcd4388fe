// Package export writes ledger records to delimited tabular files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"spendlog/internal/core"
)

// Header is the column order of every exported file.
var Header = []string{"id", "category", "amount", "date", "note"}

// Write renders records as CSV with a header row. Quoting follows RFC 4180,
// so notes containing commas or newlines survive a round trip.
func Write(w io.Writer, expenses []core.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Category,
			e.Amount.String(),
			e.Date.String(),
			e.Note,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Read parses a file previously produced by Write.
func Read(r io.Reader) ([]core.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, name := range Header {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected csv header %q, want %q", header[i], name)
		}
	}

	var out []core.Expense
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse id %q: %w", row[0], err)
		}
		amount, err := core.ParseAmount(row[2])
		if err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", row[2], err)
		}
		date, err := core.ParseDate(row[3])
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", row[3], err)
		}

		out = append(out, core.Expense{
			ID:       id,
			Category: row[1],
			Amount:   amount,
			Date:     date,
			Note:     row[4],
		})
	}
	return out, nil
}
