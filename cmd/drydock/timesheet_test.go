package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestTimesheetCmd_Help(t *testing.T) {
	out, err := run(t, "", "timesheet", "--help")
	if err != nil {
		t.Fatalf("timesheet --help failed: %v", err)
	}
	for _, sub := range []string{"list", "export", "import"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q, got: %s", sub, out)
		}
	}

	out, err = run(t, "", "timesheet", "list", "--help")
	if err != nil {
		t.Fatalf("timesheet list --help failed: %v", err)
	}
	for _, flag := range []string{"--staff", "--project", "--work-order", "--from", "--to", "--sort", "--order"} {
		if !strings.Contains(out, flag) {
			t.Errorf("expected list help to mention %q, got: %s", flag, out)
		}
	}
}

func TestTimesheetList(t *testing.T) {
	cfg := initSeeded(t)

	out, err := run(t, "", "timesheet", "list", "-c", cfg, "--sort", "date", "--order", "desc")
	if err != nil {
		t.Fatalf("timesheet list: %v", err)
	}
	for _, want := range []string{"ID", "STAFF", "CLIENT", "J. Doe", "Explorer", "Acme", "2 timesheets, 15.5 hours"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "2024-03-21") > strings.Index(out, "2024-03-20") {
		t.Errorf("rows not sorted by date desc:\n%s", out)
	}

	out, err = run(t, "", "ts", "list", "-c", cfg, "--from", "2024-03-21")
	if err != nil {
		t.Fatalf("timesheet list --from: %v", err)
	}
	if !strings.Contains(out, "1 timesheets, 7.5 hours") {
		t.Errorf("filtered output:\n%s", out)
	}
}

func TestTimesheetList_RejectsBadFlags(t *testing.T) {
	cfg := writeSQLiteConfig(t, "")
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"--staff", "abc"}, want: "staffId must be a positive integer"},
		{args: []string{"--from", "yesterday"}, want: "startDate"},
		{args: []string{"--sort", "salary"}, want: "sortField"},
		{args: []string{"--sort", "date", "--order", "up"}, want: "sortOrder"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			args := append([]string{"timesheet", "list", "-c", cfg}, tt.args...)
			_, err := run(t, "", args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want to contain %q", err, tt.want)
			}
		})
	}
}

func TestTimesheetExportImport(t *testing.T) {
	cfg := initSeeded(t)
	book := filepath.Join(t.TempDir(), "march.xlsx")

	out, err := run(t, "", "timesheet", "export", "-c", cfg, "-o", book, "--staff", "1")
	if err != nil {
		t.Fatalf("timesheet export: %v", err)
	}
	if !strings.Contains(out, "Wrote 2 timesheets") {
		t.Errorf("export output = %q", out)
	}

	out, err = run(t, "", "timesheet", "import", "-c", cfg, book)
	if err != nil {
		t.Fatalf("timesheet import: %v", err)
	}
	if !strings.Contains(out, "Imported 2 timesheets") {
		t.Errorf("import output = %q", out)
	}

	out, err = run(t, "", "timesheet", "list", "-c", cfg)
	if err != nil {
		t.Fatalf("timesheet list: %v", err)
	}
	if !strings.Contains(out, "4 timesheets, 31 hours") {
		t.Errorf("list after import:\n%s", out)
	}
}

func TestTimesheetImport_MissingFile(t *testing.T) {
	cfg := writeSQLiteConfig(t, "")
	_, err := run(t, "", "timesheet", "import", "-c", cfg, "/nonexistent/book.xlsx")
	if err == nil || !strings.Contains(err.Error(), "open /nonexistent/book.xlsx") {
		t.Errorf("error = %v, want open failure", err)
	}
}

func TestTimesheetExport_Job(t *testing.T) {
	dir := t.TempDir()
	cfg := writeSQLiteConfig(t, "exports:\n  - name: weekly\n    schedule: \"0 6 * * 1\"\n    dir: "+dir+"\n")
	if _, err := run(t, "", "db", "init", "-c", cfg); err != nil {
		t.Fatalf("db init: %v", err)
	}

	out, err := run(t, "", "timesheet", "export", "-c", cfg, "--job", "weekly")
	if err != nil {
		t.Fatalf("export --job: %v", err)
	}
	if !strings.Contains(out, "Export weekly written to "+filepath.Join(dir, "weekly-")) {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, "", "timesheet", "export", "-c", cfg, "--job", "monthly"); err == nil {
		t.Error("expected error for unknown job")
	}
}
