package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is a field-named row as returned by every read path. Keys are the
// result column names, values are already in API output form.
type Record map[string]any

// Columns rendered as numbers. Matched by exact name; both the storage
// names and their API-facing select aliases are listed.
var amountColumns = map[string]struct{}{
	"amount":     {},
	"payment":    {},
	"remaining":  {},
	"revenue":    {},
	"expense":    {},
	"balance":    {},
	"total":      {},
	"credit_in":  {},
	"credit_out": {},
	"creditIn":   {},
	"creditOut":  {},
}

// Layouts a stored date value may come back in. Dates are written as
// YYYY-MM-DD text; the driver layouts cover rows written as time values.
var storedDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339,
}

const displayDateLayout = "02/01/2006"

// mapRows converts a result set into field-named records, applying the
// per-field formatting rules uniformly: date columns render DD/MM/YYYY,
// amount columns render as integral or 2-decimal numbers, everything else
// passes through.
func mapRows(rows *sql.Rows) ([]Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var records []Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		rec := make(Record, len(cols))
		for i, col := range cols {
			rec[col] = formatField(col, vals[i])
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}

func formatField(column string, v any) any {
	if isDateColumn(column) {
		return formatDateValue(v)
	}
	if _, ok := amountColumns[column]; ok {
		return formatNumberValue(v)
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func isDateColumn(name string) bool {
	return strings.Contains(strings.ToLower(name), "date")
}

// formatDateValue renders a date as DD/MM/YYYY. Text in a known stored
// layout is reformatted, other text passes through unchanged, and anything
// else is stringified as a fallback. Never returns an error.
func formatDateValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return t.Format(displayDateLayout)
	case string:
		for _, layout := range storedDateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.Format(displayDateLayout)
			}
		}
		return t
	case []byte:
		return formatDateValue(string(t))
	default:
		return fmt.Sprint(t)
	}
}

// formatNumberValue renders an amount: integral when the value has no
// fractional part, otherwise rounded to 2 decimal places. Nil and
// non-numeric values map to integer 0 without raising.
func formatNumberValue(v any) any {
	var d decimal.Decimal
	switch n := v.(type) {
	case nil:
		return int64(0)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		d = decimal.NewFromFloat(n)
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return int64(0)
		}
		d = parsed
	case []byte:
		return formatNumberValue(string(n))
	default:
		return int64(0)
	}
	return renderDecimal(d)
}

func renderDecimal(d decimal.Decimal) any {
	d = d.Round(2)
	if d.IsInteger() {
		return d.IntPart()
	}
	f, _ := d.Float64()
	return f
}

// recordDecimal reads an already-formatted amount back as a decimal for
// derived-field arithmetic.
func recordDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case int64:
		return decimal.NewFromInt(n)
	case float64:
		return decimal.NewFromFloat(n)
	default:
		return decimal.Zero
	}
}
