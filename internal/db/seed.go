package db

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zulandar/drydock/internal/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixture is a set of rows to load into an empty or existing database.
// Rows carry explicit ids so that references between them resolve.
type Fixture struct {
	Clients     []models.Client
	Vessels     []models.Vessel
	Projects    []models.Project
	WorkOrders  []models.WorkOrder
	Disciplines []models.Discipline
	Staff       []models.Staff
	Timesheets  []models.Timesheet
}

// Count returns the total number of rows in the fixture.
func (f *Fixture) Count() int {
	return len(f.Clients) + len(f.Vessels) + len(f.Projects) + len(f.WorkOrders) +
		len(f.Disciplines) + len(f.Staff) + len(f.Timesheets)
}

// LoadFixture reads a YAML fixture file. Keys are the table names
// (clients, vessels, projects, work_orders, disciplines, staff, timesheets)
// and rows use the same field names as the JSON API.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("db: read fixture %s: %w", path, err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes YAML fixture bytes.
func ParseFixture(data []byte) (*Fixture, error) {
	var raw map[string][]map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("db: parse fixture: %w", err)
	}

	var f Fixture
	targets := map[string]interface{}{
		"clients":     &f.Clients,
		"vessels":     &f.Vessels,
		"projects":    &f.Projects,
		"work_orders": &f.WorkOrders,
		"disciplines": &f.Disciplines,
		"staff":       &f.Staff,
		"timesheets":  &f.Timesheets,
	}
	for key, rows := range raw {
		target, ok := targets[key]
		if !ok {
			return nil, fmt.Errorf("db: parse fixture: unknown table %q", key)
		}
		// Round-trip through JSON so fixtures share the API field names.
		encoded, err := marshalJSON(rows)
		if err != nil {
			return nil, fmt.Errorf("db: parse fixture %s: %w", key, err)
		}
		if err := json.Unmarshal([]byte(encoded), target); err != nil {
			return nil, fmt.Errorf("db: parse fixture %s: %w", key, err)
		}
	}
	return &f, nil
}

// Seed upserts every fixture row in one transaction, parents first.
func Seed(db *gorm.DB, f *Fixture) error {
	return db.Transaction(func(tx *gorm.DB) error {
		batches := []struct {
			name string
			rows interface{}
			n    int
		}{
			{"clients", &f.Clients, len(f.Clients)},
			{"vessels", &f.Vessels, len(f.Vessels)},
			{"projects", &f.Projects, len(f.Projects)},
			{"work_orders", &f.WorkOrders, len(f.WorkOrders)},
			{"disciplines", &f.Disciplines, len(f.Disciplines)},
			{"staff", &f.Staff, len(f.Staff)},
			{"timesheets", &f.Timesheets, len(f.Timesheets)},
		}
		for _, b := range batches {
			if b.n == 0 {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(b.rows).Error; err != nil {
				return fmt.Errorf("db: seed %s: %w", b.name, err)
			}
		}
		return nil
	})
}

// marshalJSON marshals a value to a JSON string, returning empty string for nil.
func marshalJSON(v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
