package timesheet

import (
	"fmt"
	"strings"

	"github.com/zulandar/drydock/internal/models"
	"github.com/zulandar/drydock/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter restricts a listing. Nil fields do not restrict.
type Filter struct {
	StaffID     *uint
	ProjectID   *uint
	WorkOrderID *uint
	StartDate   *models.Date // inclusive
	EndDate     *models.Date // inclusive
}

// Validate checks the filter is internally consistent.
func (f Filter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(f.EndDate.Time) {
		return store.Invalid("startDate", fmt.Sprintf("%s is after endDate %s", f.StartDate, f.EndDate))
	}
	return nil
}

// Sort is a single ORDER BY directive. Field is a row field name such as
// "staffName"; Order is ASC or DESC.
type Sort struct {
	Field string
	Order string
}

// sortColumns maps normalized row field names to columns. Column names
// cannot be bound as parameters, so only these ever reach the query text.
var sortColumns = map[string]string{
	"timesheetid": "t.id",
	"id":          "t.id",
	"staffid":     "t.staff_id",
	"staffname":   "s.name",
	"workorderid": "t.work_order_id",
	"tasknumber":  "w.task_number",
	"description": "w.description",
	"projectname": "p.name",
	"vesselname":  "v.name",
	"clientname":  "c.name",
	"date":        "t.date",
	"hours":       "t.hours",
}

// SortFields lists the accepted sort field names.
var SortFields = []string{
	"timesheetId", "staffId", "staffName", "workOrderId", "taskNumber",
	"description", "projectName", "vesselName", "clientName", "date", "hours",
}

func normalizeField(field string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(field), "_", ""))
}

// columns resolves the sort into ORDER BY columns. The timesheet id is
// always last so results are deterministic.
func (s Sort) columns() ([]clause.OrderByColumn, error) {
	tiebreak := clause.OrderByColumn{Column: clause.Column{Name: "t.id"}}
	field := strings.TrimSpace(s.Field)
	if field == "" {
		return []clause.OrderByColumn{tiebreak}, nil
	}

	column, ok := sortColumns[normalizeField(field)]
	if !ok {
		return nil, store.Invalid("sortField", fmt.Sprintf("%q is not one of %s", field, strings.Join(SortFields, ", ")))
	}

	var desc bool
	switch strings.ToUpper(strings.TrimSpace(s.Order)) {
	case "", "ASC", "ASCEND", "ASCENDING":
	case "DESC", "DESCEND", "DESCENDING":
		desc = true
	default:
		return nil, store.Invalid("sortOrder", fmt.Sprintf("%q is not ASC or DESC", s.Order))
	}

	order := []clause.OrderByColumn{{Column: clause.Column{Name: column}, Desc: desc}}
	if column != "t.id" {
		order = append(order, tiebreak)
	}
	return order, nil
}

const rowColumns = "t.id AS timesheet_id, " +
	"t.staff_id AS staff_id, " +
	"COALESCE(s.name, '') AS staff_name, " +
	"t.work_order_id AS work_order_id, " +
	"COALESCE(w.task_number, 0) AS task_number, " +
	"COALESCE(w.description, '') AS description, " +
	"COALESCE(p.name, '') AS project_name, " +
	"COALESCE(v.name, '') AS vessel_name, " +
	"COALESCE(c.name, '') AS client_name, " +
	"t.date, t.hours"

// baseQuery joins a timesheet to its staff member and up the work order
// chain to the client. Inner joins drop timesheets whose chain is broken.
func baseQuery(tx *gorm.DB) *gorm.DB {
	return tx.Table("timesheets AS t").
		Select(rowColumns).
		Joins("JOIN staff AS s ON s.id = t.staff_id").
		Joins("JOIN work_orders AS w ON w.id = t.work_order_id").
		Joins("JOIN projects AS p ON p.id = w.project_id").
		Joins("JOIN vessels AS v ON v.id = p.vessel_id").
		Joins("JOIN clients AS c ON c.id = v.client_id")
}

// buildList appends one bound predicate per set filter field, then the
// ORDER BY from the allow-list.
func buildList(tx *gorm.DB, f Filter, s Sort) (*gorm.DB, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	order, err := s.columns()
	if err != nil {
		return nil, err
	}

	q := baseQuery(tx)
	if f.StaffID != nil {
		q = q.Where("t.staff_id = ?", *f.StaffID)
	}
	if f.ProjectID != nil {
		q = q.Where("w.project_id = ?", *f.ProjectID)
	}
	if f.WorkOrderID != nil {
		q = q.Where("t.work_order_id = ?", *f.WorkOrderID)
	}
	if f.StartDate != nil {
		q = q.Where("t.date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("t.date <= ?", *f.EndDate)
	}
	for _, o := range order {
		q = q.Order(o)
	}
	return q, nil
}
