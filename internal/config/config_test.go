package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
database:
  driver: mysql
  host: 10.0.0.5
  port: 3307
  user: timesheets
  password: s3cret
  name: drydock_prod
  log_sql: true

server:
  port: 8081
  cors_origins: ["https://ops.example.com"]

log:
  level: debug
  format: console

exports:
  - name: weekly
    schedule: "0 6 * * 1"
    dir: /var/reports
    range_days: 7
  - name: refit-monthly
    schedule: "0 7 1 * *"
    range_days: 31
    project_id: 4
`

const minimalYAML = `
database:
  name: drydock
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Driver != DriverMySQL {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, DriverMySQL)
	}
	if cfg.Database.Host != "10.0.0.5" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "10.0.0.5")
	}
	if cfg.Database.Port != 3307 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 3307)
	}
	if cfg.Database.User != "timesheets" {
		t.Errorf("Database.User = %q, want %q", cfg.Database.User, "timesheets")
	}
	if cfg.Database.Password != "s3cret" {
		t.Errorf("Database.Password = %q, want %q", cfg.Database.Password, "s3cret")
	}
	if cfg.Database.Name != "drydock_prod" {
		t.Errorf("Database.Name = %q, want %q", cfg.Database.Name, "drydock_prod")
	}
	if !cfg.Database.LogSQL {
		t.Error("Database.LogSQL = false, want true")
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8081)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://ops.example.com" {
		t.Errorf("Server.CORSOrigins = %v, want [https://ops.example.com]", cfg.Server.CORSOrigins)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v, want debug/console", cfg.Log)
	}
	if len(cfg.Exports) != 2 {
		t.Fatalf("len(Exports) = %d, want 2", len(cfg.Exports))
	}

	weekly := cfg.Exports[0]
	if weekly.Name != "weekly" || weekly.Schedule != "0 6 * * 1" {
		t.Errorf("Exports[0] = %+v", weekly)
	}
	if weekly.Dir != "/var/reports" {
		t.Errorf("Exports[0].Dir = %q, want %q", weekly.Dir, "/var/reports")
	}

	monthly := cfg.Exports[1]
	if monthly.Dir != "reports" {
		t.Errorf("Exports[1].Dir = %q, want %q (default)", monthly.Dir, "reports")
	}
	if monthly.RangeDays != 31 {
		t.Errorf("Exports[1].RangeDays = %d, want 31", monthly.RangeDays)
	}
	if monthly.ProjectID != 4 {
		t.Errorf("Exports[1].ProjectID = %d, want 4", monthly.ProjectID)
	}
}

func TestParse_MinimalConfig_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Driver != DriverMySQL {
		t.Errorf("Database.Driver = %q, want %q (default)", cfg.Database.Driver, DriverMySQL)
	}
	if cfg.Database.Host != "127.0.0.1" {
		t.Errorf("Database.Host = %q, want %q (default)", cfg.Database.Host, "127.0.0.1")
	}
	if cfg.Database.Port != 3306 {
		t.Errorf("Database.Port = %d, want %d (default)", cfg.Database.Port, 3306)
	}
	if cfg.Database.User != "root" {
		t.Errorf("Database.User = %q, want %q (default)", cfg.Database.User, "root")
	}
	if cfg.Database.Path != "drydock.db" {
		t.Errorf("Database.Path = %q, want %q (default)", cfg.Database.Path, "drydock.db")
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want %d (default)", cfg.Server.Port, 5000)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("Server.CORSOrigins = %v, want [*] (default)", cfg.Server.CORSOrigins)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q (default)", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q (default)", cfg.Log.Format, "json")
	}
	if len(cfg.Exports) != 0 {
		t.Errorf("len(Exports) = %d, want 0", len(cfg.Exports))
	}
}

func TestParse_SQLiteDriver_NoNameRequired(t *testing.T) {
	yaml := `
database:
  driver: SQLite
  path: /tmp/drydock.db
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Database.Driver = %q, want %q (lowercased)", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Database.Path != "/tmp/drydock.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/drydock.db")
	}
}

func TestParse_ExportDefaults(t *testing.T) {
	yaml := `
database:
  driver: sqlite
exports:
  - name: daily
    schedule: "30 18 * * *"
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := cfg.Exports[0]
	if e.Dir != "reports" {
		t.Errorf("Dir = %q, want %q", e.Dir, "reports")
	}
	if e.RangeDays != 7 {
		t.Errorf("RangeDays = %d, want 7", e.RangeDays)
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "mysql without name",
			yaml: "database:\n  driver: mysql\n",
			want: "database.name is required for the mysql driver",
		},
		{
			name: "unsupported driver",
			yaml: "database:\n  driver: mssql\n",
			want: `database.driver "mssql" is not supported`,
		},
		{
			name: "bad port",
			yaml: "database:\n  driver: sqlite\nserver:\n  port: 70000\n",
			want: "server.port 70000 is out of range",
		},
		{
			name: "bad log level",
			yaml: "database:\n  driver: sqlite\nlog:\n  level: loud\n",
			want: `log.level "loud"`,
		},
		{
			name: "bad log format",
			yaml: "database:\n  driver: sqlite\nlog:\n  format: xml\n",
			want: `log.format "xml"`,
		},
		{
			name: "export missing name",
			yaml: "database:\n  driver: sqlite\nexports:\n  - schedule: \"0 6 * * 1\"\n",
			want: "exports[0].name is required",
		},
		{
			name: "export missing schedule",
			yaml: "database:\n  driver: sqlite\nexports:\n  - name: weekly\n",
			want: "exports[0].schedule is required",
		},
		{
			name: "export bad schedule",
			yaml: "database:\n  driver: sqlite\nexports:\n  - name: weekly\n    schedule: \"every monday\"\n",
			want: `exports[0].schedule "every monday"`,
		},
		{
			name: "export duplicate name",
			yaml: "database:\n  driver: sqlite\nexports:\n  - name: weekly\n    schedule: \"0 6 * * 1\"\n  - name: weekly\n    schedule: \"0 7 * * 1\"\n",
			want: `exports[1].name "weekly" is duplicated`,
		},
		{
			name: "export negative range",
			yaml: "database:\n  driver: sqlite\nexports:\n  - name: weekly\n    schedule: \"0 6 * * 1\"\n    range_days: -3\n",
			want: "exports[0].range_days must be positive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestParse_MultipleValidationErrors(t *testing.T) {
	yaml := `
database:
  driver: mysql
log:
  level: loud
exports:
  - schedule: "0 6 * * 1"
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{
		"database.name is required",
		`log.level "loud"`,
		"exports[0].name is required",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %q: %s", want, msg)
		}
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte(":::invalid"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "config: parse:") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config: parse:")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drydock.yaml")
	if err := os.WriteFile(path, []byte(fullYAML), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Name != "drydock_prod" {
		t.Errorf("Database.Name = %q, want %q", cfg.Database.Name, "drydock_prod")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/drydock.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "config: read") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config: read")
	}
}
