package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
	"github.com/zulandar/drydock/internal/models"
	"github.com/zulandar/drydock/internal/store"
	"github.com/zulandar/drydock/internal/timesheet"
)

func day(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func sampleRows(t *testing.T) []timesheet.Row {
	return []timesheet.Row{
		{
			TimesheetID: 1, StaffID: 1, StaffName: "J. Doe", WorkOrderID: 1, TaskNumber: 7,
			Description: "Hull", ProjectName: "Refit", VesselName: "Explorer", ClientName: "Acme",
			Date: day(t, "2024-03-20"), Hours: 8,
		},
		{
			TimesheetID: 3, StaffID: 2, StaffName: "A. Smith", WorkOrderID: 2, TaskNumber: 3,
			Description: "Deck", ProjectName: "Drydocking", VesselName: "Aurora", ClientName: "Borealis",
			Date: day(t, "2024-03-31"), Hours: 6.5,
		},
	}
}

func readRows(t *testing.T, data []byte) (string, [][]string) {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	return sheet, rows
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleRows(t)); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	sheet, rows := readRows(t, buf.Bytes())
	if sheet != SheetName {
		t.Errorf("sheet = %q, want %q", sheet, SheetName)
	}
	want := [][]string{
		Header,
		{"1", "1", "J. Doe", "1", "7", "Hull", "Refit", "Explorer", "Acme", "2024-03-20", "8"},
		{"3", "2", "A. Smith", "2", "3", "Deck", "Drydocking", "Aurora", "Borealis", "2024-03-31", "6.5"},
		{"Total", "", "", "", "", "", "", "", "", "", "14.5"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, nil); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	_, rows := readRows(t, buf.Bytes())
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header and total", len(rows))
	}
	if rows[1][0] != "Total" || rows[1][len(rows[1])-1] != "0" {
		t.Errorf("total row = %v", rows[1])
	}
}

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestReadXLSX(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Hours", "date", "Work Order ID", "Staff  ID", "Notes"},
		{8, "2024-03-20", 1, 1, "first"},
		{nil, nil, nil, nil, nil},
		{"6.25", 45372, "2", "3"},
	})

	got, err := ReadXLSX(buf)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	want := []models.Timesheet{
		{StaffID: 1, WorkOrderID: 1, Date: day(t, "2024-03-20"), Hours: 8},
		{StaffID: 3, WorkOrderID: 2, Date: day(t, "2024-03-21"), Hours: 6.25},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadXLSX mismatch (-want +got):\n%s", diff)
	}
}

func TestReadXLSX_ReportsBadRows(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Staff ID", "Work Order ID", "Date", "Hours"},
		{1, 1, "2024-03-20", 8},
		{"abc", 1, "2024-03-20", 8},
		{1, 1, "20/03/2024", 8},
		{1, 1, "2024-03-20", "lots"},
	})

	_, err := ReadXLSX(buf)
	if err == nil {
		t.Fatal("expected error")
	}
	var ve *store.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *store.ValidationError", err)
	}
	for _, want := range []string{"row 3 staff id", "row 4 date", "row 5 hours"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
	if strings.Contains(err.Error(), "row 2") {
		t.Errorf("error reports valid row 2: %v", err)
	}
}

func TestReadXLSX_MissingColumns(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Staff ID", "Date"},
		{1, "2024-03-20"},
	})
	_, err := ReadXLSX(buf)
	if !store.IsValidation(err) {
		t.Fatalf("error = %v, want validation error", err)
	}
	if !strings.Contains(err.Error(), "Work Order ID, Hours") {
		t.Errorf("error = %q, want to name missing columns", err.Error())
	}
}

func TestReadXLSX_NotAWorkbook(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("staff,hours\n1,8\n"))
	if !store.IsValidation(err) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-03-20", want: "2024-03-20"},
		{in: "45371", want: "2024-03-20"},
		{in: "2024-03-20T09:00:00Z", want: "2024-03-20"},
		{in: "", wantErr: true},
		{in: "March 20", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDay(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseDay(%q) = %s, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDay(%q): %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("parseDay(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadXLSX_ReadsExportedWorkbook(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleRows(t)); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	got, err := ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	want := []models.Timesheet{
		{StaffID: 1, WorkOrderID: 1, Date: day(t, "2024-03-20"), Hours: 8},
		{StaffID: 2, WorkOrderID: 2, Date: day(t, "2024-03-31"), Hours: 6.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadXLSX mismatch (-want +got):\n%s", diff)
	}
}
