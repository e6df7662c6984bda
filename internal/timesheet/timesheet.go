// Package timesheet implements the timesheet listing: a filtered, sorted
// join from each timesheet to its staff member and through the work order,
// project and vessel to the client. It also owns timesheet writes.
package timesheet

import (
	"context"
	"fmt"
	"math"

	"github.com/zulandar/drydock/internal/models"
	"github.com/zulandar/drydock/internal/store"
	"gorm.io/gorm"
)

// MaxHours is the most hours a single timesheet may book.
const MaxHours = 24

// Row is one timesheet with the names along its join chain.
type Row struct {
	TimesheetID uint        `json:"timesheetId"`
	StaffID     uint        `json:"staffId"`
	StaffName   string      `json:"staffName"`
	WorkOrderID uint        `json:"workOrderId"`
	TaskNumber  int         `json:"taskNumber"`
	Description string      `json:"description"`
	ProjectName string      `json:"projectName"`
	VesselName  string      `json:"vesselName"`
	ClientName  string      `json:"clientName"`
	Date        models.Date `json:"date"`
	Hours       float64     `json:"hours"`
}

// Service reads and writes timesheets.
type Service struct {
	db    *gorm.DB
	table *store.Table[models.Timesheet, *models.Timesheet]
}

// New returns a Service bound to db.
func New(db *gorm.DB) *Service {
	return &Service{db: db, table: newTable(db)}
}

func newTable(db *gorm.DB) *store.Table[models.Timesheet, *models.Timesheet] {
	return store.NewTable(db, store.TableOpts[models.Timesheet, *models.Timesheet]{
		Noun:  "timesheet",
		Check: check,
	})
}

// List returns the timesheets matching f, ordered by s.
func (s *Service) List(ctx context.Context, f Filter, srt Sort) ([]Row, error) {
	q, err := buildList(s.db.WithContext(ctx), f, srt)
	if err != nil {
		return nil, fmt.Errorf("timesheet: list: %w", err)
	}
	rows := make([]Row, 0)
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("timesheet: list: %w", err)
	}
	return rows, nil
}

// Get returns the listing row for one timesheet. A timesheet whose join
// chain is broken is reported as not found.
func (s *Service) Get(ctx context.Context, id uint) (*Row, error) {
	var rows []Row
	err := baseQuery(s.db.WithContext(ctx)).
		Where("t.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("timesheet: get %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("timesheet %d: %w", id, store.ErrNotFound)
	}
	return &rows[0], nil
}

// Create inserts ts and returns it with its generated id.
func (s *Service) Create(ctx context.Context, ts *models.Timesheet) (*models.Timesheet, error) {
	return s.table.Create(ctx, ts)
}

// Update replaces the timesheet with the given id.
func (s *Service) Update(ctx context.Context, id uint, ts *models.Timesheet) (*models.Timesheet, error) {
	return s.table.Update(ctx, id, ts)
}

// Delete removes the timesheet with the given id.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.table.Delete(ctx, id)
}

// Options returns {id, "<id> - <date>"} pairs sorted by name.
func (s *Service) Options(ctx context.Context) ([]store.Option, error) {
	var sheets []models.Timesheet
	if err := s.db.WithContext(ctx).Select("id", "date").Order("id ASC").Find(&sheets).Error; err != nil {
		return nil, fmt.Errorf("timesheet: options: %w", err)
	}
	opts := make([]store.Option, 0, len(sheets))
	for _, ts := range sheets {
		opts = append(opts, store.Option{ID: ts.ID, Name: fmt.Sprintf("%d - %s", ts.ID, ts.Date)})
	}
	store.SortOptions(opts)
	return opts, nil
}

// Import inserts sheets in one transaction. Any invalid entry rolls back
// the whole batch; the error names the 1-based entry.
func (s *Service) Import(ctx context.Context, sheets []models.Timesheet) (int, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		table := newTable(tx)
		for i := range sheets {
			if _, err := table.Create(ctx, &sheets[i]); err != nil {
				return fmt.Errorf("entry %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("timesheet: import: %w", err)
	}
	return len(sheets), nil
}

// check validates a timesheet before it is written. Hours are rounded to
// the column's two decimal places.
func check(tx *gorm.DB, ts *models.Timesheet) error {
	if err := store.RequireRow(tx, &models.Staff{}, "staffId", ts.StaffID); err != nil {
		return err
	}
	if err := store.RequireRow(tx, &models.WorkOrder{}, "workOrderId", ts.WorkOrderID); err != nil {
		return err
	}
	if ts.Date.IsZero() {
		return store.Invalid("date", "is required")
	}
	ts.Date = models.NewDate(ts.Date.Time)
	ts.Hours = math.Round(ts.Hours*100) / 100
	if ts.Hours <= 0 || ts.Hours > MaxHours {
		return store.Invalid("hours", fmt.Sprintf("%g is outside (0, %d]", ts.Hours, MaxHours))
	}
	return nil
}
