// Package csvio implements the CSV bulk import/export pipeline for assets
// and access grants. Import runs in two passes: every row is parsed and
// validated first, then the valid rows are upserted by natural key inside a
// single transaction. Parse errors therefore always precede import errors in
// a report.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// Report is the outcome of one bulk import.
type Report struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

const dateLayout = "2006-01-02"

// records reads a CSV stream into header-indexed rows. Data rows are numbered
// from 2 to account for the header line.
type record struct {
	num    int
	fields map[string]string
}

func (r record) get(col string) string { return strings.TrimSpace(r.fields[col]) }

// readRecords checks the header against the required column set, then reads
// the remaining rows. A header failure aborts the whole upload with one
// error and no rows.
func readRecords(src io.Reader, required []string) ([]record, []string) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, []string{fmt.Sprintf("error parsing CSV file: %v", err)}
	}
	cols := make(map[int]string, len(header))
	have := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		cols[i] = name
		have[name] = true
	}
	var missing []string
	for _, col := range required {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, []string{fmt.Sprintf("invalid CSV header: missing required columns: %s", strings.Join(missing, ", "))}
	}

	var records []record
	var errs []string
	for num := 2; ; num++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", num, err))
			continue
		}
		fields := make(map[string]string, len(row))
		for i, v := range row {
			if name, ok := cols[i]; ok {
				fields[name] = v
			}
		}
		records = append(records, record{num: num, fields: fields})
	}
	return records, errs
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatInt(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *f)
}
