// Package export writes timesheet listings to XLSX workbooks, reads
// timesheets back from them and runs scheduled exports.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/zulandar/drydock/internal/models"
	"github.com/zulandar/drydock/internal/store"
	"github.com/zulandar/drydock/internal/timesheet"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Timesheets"

// ContentType is the MIME type of an XLSX workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Header is the first row written by WriteXLSX.
var Header = []string{
	"Timesheet ID", "Staff ID", "Staff", "Work Order ID", "Task", "Description",
	"Project", "Vessel", "Client", "Date", "Hours",
}

// ImportHeader lists the columns ReadXLSX requires, in any order.
var ImportHeader = []string{"Staff ID", "Work Order ID", "Date", "Hours"}

// WriteXLSX writes rows as a single-sheet workbook followed by a total
// hours row.
func WriteXLSX(w io.Writer, rows []timesheet.Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("export: sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	dayFmt := "yyyy-mm-dd"
	day, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dayFmt})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	var total float64
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			r.TimesheetID, r.StaffID, r.StaffName, r.WorkOrderID, r.TaskNumber,
			r.Description, r.ProjectName, r.VesselName, r.ClientName, r.Date.Time, r.Hours,
		}
		if r.Date.IsZero() {
			values[9] = ""
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
		total += r.Hours
	}

	last := len(rows) + 1
	if len(rows) > 0 {
		if err := f.SetCellStyle(SheetName, "J2", fmt.Sprintf("J%d", last), day); err != nil {
			return fmt.Errorf("export: date style: %w", err)
		}
	}

	totalRow := last + 1
	totals := []interface{}{"Total", nil, nil, nil, nil, nil, nil, nil, nil, nil, total}
	if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", totalRow), &totals); err != nil {
		return fmt.Errorf("export: total: %w", err)
	}
	for _, r := range []int{1, totalRow} {
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", r), fmt.Sprintf("K%d", r), bold); err != nil {
			return fmt.Errorf("export: header style: %w", err)
		}
	}

	_ = f.SetColWidth(SheetName, "C", "C", 24)
	_ = f.SetColWidth(SheetName, "F", "I", 28)
	_ = f.SetColWidth(SheetName, "J", "J", 12)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

// ReadXLSX reads timesheets from the first worksheet. The first row must
// name the ImportHeader columns; other columns are ignored, so a workbook
// written by WriteXLSX can be read back. Blank rows and the total row are
// skipped. Every malformed
// row is reported as a *store.ValidationError naming its sheet row.
func ReadXLSX(r io.Reader) ([]models.Timesheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, store.Invalid("file", fmt.Sprintf("is not an xlsx workbook: %v", err))
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, store.Invalid("file", "has no worksheet")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("export: read %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, store.Invalid("file", "worksheet is empty")
	}

	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	sheets := make([]models.Timesheet, 0, len(rows)-1)
	var errs []error
	for i, row := range rows[1:] {
		line := i + 2
		if blank(row) || isTotal(row) {
			continue
		}
		ts, err := parseRow(row, cols)
		if err != nil {
			errs = append(errs, &store.ValidationError{Field: fmt.Sprintf("row %d", line), Reason: err.Error()})
			continue
		}
		sheets = append(sheets, ts)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return sheets, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[normalizeHeader(h)] = i
	}
	cols := make(map[string]int, len(ImportHeader))
	var missing []string
	for _, want := range ImportHeader {
		i, ok := idx[normalizeHeader(want)]
		if !ok {
			missing = append(missing, want)
			continue
		}
		cols[want] = i
	}
	if len(missing) > 0 {
		return nil, store.Invalid("header", "is missing "+strings.Join(missing, ", "))
	}
	return cols, nil
}

func cellValue(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isTotal(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "total")
}

func parseRow(row []string, cols map[string]int) (models.Timesheet, error) {
	var ts models.Timesheet

	staff, err := parseUint(cellValue(row, cols["Staff ID"]))
	if err != nil {
		return ts, fmt.Errorf("staff id: %w", err)
	}
	workOrder, err := parseUint(cellValue(row, cols["Work Order ID"]))
	if err != nil {
		return ts, fmt.Errorf("work order id: %w", err)
	}
	day, err := parseDay(cellValue(row, cols["Date"]))
	if err != nil {
		return ts, err
	}
	raw := cellValue(row, cols["Hours"])
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ts, fmt.Errorf("hours %q is not a number", raw)
	}

	ts.StaffID = staff
	ts.WorkOrderID = workOrder
	ts.Date = day
	ts.Hours = hours
	return ts, nil
}

func parseUint(s string) (uint, error) {
	if s == "" {
		return 0, errors.New("is required")
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%q is not a positive integer", s)
	}
	return uint(n), nil
}

// parseDay accepts YYYY-MM-DD text or an Excel date serial.
func parseDay(s string) (models.Date, error) {
	if s == "" {
		return models.Date{}, errors.New("date is required")
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return models.Date{}, fmt.Errorf("date serial %q: %w", s, err)
		}
		return models.NewDate(t), nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, err
	}
	return d, nil
}
