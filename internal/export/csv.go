// Package export serializes the transaction list to CSV for download.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"
)

// header is the fixed column order of every export.
const header = "Date,Type,Category,Description,Amount"

// CSV encodes the list in its current order, without resorting. The
// description is wrapped in double quotes unconditionally; the other
// fields are emitted unquoted and unescaped. Embedded commas or quotes in
// category values, or quotes inside descriptions, therefore corrupt the
// row. This is a known limitation of the original format, kept as
// documented behavior rather than silently fixed.
func CSV(list []core.Transaction) []byte {
	var buf bytes.Buffer
	buf.WriteString(header)
	buf.WriteByte('\n')
	for _, t := range list {
		buf.WriteString(t.Date.String())
		buf.WriteByte(',')
		buf.WriteString(string(t.Type))
		buf.WriteByte(',')
		buf.WriteString(t.Category)
		buf.WriteByte(',')
		buf.WriteByte('"')
		buf.WriteString(t.Description)
		buf.WriteByte('"')
		buf.WriteByte(',')
		buf.WriteString(t.Amount.DecimalString())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Filename returns the download name for an export taken at t:
// financial-data-YYYY-MM-DD.csv.
func Filename(t time.Time) string {
	return "financial-data-" + t.Format("2006-01-02") + ".csv"
}

// WriteFile encodes the list and writes it under dir with the dated
// filename, returning the full path.
func WriteFile(dir string, now time.Time, list []core.Transaction) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, CSV(list), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
