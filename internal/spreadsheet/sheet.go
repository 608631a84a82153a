// Package spreadsheet reads and writes the workshop's xlsx workbooks: order import,
// staff-facing exports and full backups.
package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
)

type column struct {
	header string
	width  float64
}

// workbook wraps an excelize file being written sheet by sheet.
type workbook struct {
	f     *excelize.File
	bold  int
	first bool
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &workbook{f: f, bold: bold, first: true}, nil
}

// addTable writes a header row followed by rows into a new sheet.
func (w *workbook) addTable(sheet string, cols []column, rows [][]any) error {
	if w.first {
		if err := w.f.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
		w.first = false
	} else if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if c.width > 0 {
			if err := w.f.SetColWidth(sheet, name, name, c.width); err != nil {
				return err
			}
		}
	}
	if err := w.f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if len(cols) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		if err := w.f.SetCellStyle(sheet, "A1", last, w.bold); err != nil {
			return err
		}
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := w.f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func (w *workbook) bytes() ([]byte, error) {
	defer w.f.Close()
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// record is one data row keyed by its trimmed header text.
type record map[string]string

// first returns the first non-empty value among aliases.
func (r record) first(aliases ...string) string {
	for _, a := range aliases {
		if v := strings.TrimSpace(r[a]); v != "" {
			return v
		}
	}
	return ""
}

func openWorkbook(r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &domainErrors.ImportFormatError{Err: err}
	}
	return f, nil
}

func openBytes(content []byte) (*excelize.File, error) {
	return openWorkbook(bytes.NewReader(content))
}

func hasSheet(f *excelize.File, name string) bool {
	for _, s := range f.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}

// readTable returns raw cell values of sheet, using the first row as headers.
func readTable(f *excelize.File, sheet string) ([]record, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &domainErrors.ImportFormatError{Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	out := make([]record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(record, len(headers))
		empty := true
		for i, v := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			rec[headers[i]] = v
			if strings.TrimSpace(v) != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, rec)
		}
	}
	return out, nil
}

// parseDate accepts a spreadsheet serial number, D/M/YYYY text or an ISO timestamp.
// Dates without a time of day are placed at midnight in loc.
func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), true
	}
	if parts := strings.Split(raw, "/"); len(parts) == 3 {
		d, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		y, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errD != nil || errM != nil || errY != nil || m < 1 || m > 12 || d < 1 || d > 31 {
			return time.Time{}, false
		}
		return time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc), true
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(time.DateOnly, raw, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// formatDate renders t as d/m/yyyy on the workshop calendar.
func formatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(loc)
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}
