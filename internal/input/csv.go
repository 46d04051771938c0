// Package input reads the payee sheet into models.InputRecord values.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sheikh-saqib/bulk-payouts/internal/errs"
	"github.com/sheikh-saqib/bulk-payouts/internal/models"
)

// Column headers expected in the sheet.
const (
	ColumnEmail    = "e-mail"
	ColumnPayout   = "payout"
	ColumnPONumber = "PO-number"
)

// Columns lists the required headers in the order they are documented.
var Columns = []string{ColumnEmail, ColumnPayout, ColumnPONumber}

const utf8BOM = "\ufeff"

// ReadFile opens path and reads it with Read.
func ReadFile(path string) ([]models.InputRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errs.InputParseError{Err: fmt.Errorf("open %s: %w", path, err)}
	}
	defer f.Close()

	return Read(f)
}

// Read parses a comma separated sheet with a header row. Columns may appear in
// any order and extra columns are ignored. Amounts are left as text; row order
// is kept.
func Read(r io.Reader) ([]models.InputRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &errs.InputParseError{Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, &errs.InputParseError{Err: err}
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []models.InputRecord
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &errs.InputParseError{Row: row, Err: err}
		}
		if blank(fields) {
			row--
			continue
		}

		get := func(col string) (string, error) {
			i := idx[col]
			if i >= len(fields) {
				return "", &errs.InputParseError{Row: row, Field: col, Err: errors.New("value missing")}
			}
			return strings.TrimSpace(fields[i]), nil
		}

		rec := models.InputRecord{Row: row}
		if rec.Recipient, err = get(ColumnEmail); err != nil {
			return nil, err
		}
		if rec.Amount, err = get(ColumnPayout); err != nil {
			return nil, err
		}
		if rec.Reference, err = get(ColumnPONumber); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(Columns))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		for _, col := range Columns {
			if strings.EqualFold(h, col) {
				if _, dup := idx[col]; !dup {
					idx[col] = i
				}
			}
		}
	}

	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			return nil, &errs.InputParseError{Field: col, Err: errors.New("column not found in header")}
		}
	}
	return idx, nil
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
