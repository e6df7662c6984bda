package timesheet

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/zulandar/drydock/internal/models"
	"github.com/zulandar/drydock/internal/store"
)

// ParseQuery reads the listing filter and sort from URL query parameters:
// staffId, projectId, workOrderId, startDate, endDate, sortField and
// sortOrder. Empty parameters are ignored.
func ParseQuery(q url.Values) (Filter, Sort, error) {
	var (
		f   Filter
		err error
	)
	if f.StaffID, err = parseID(q, "staffId"); err != nil {
		return Filter{}, Sort{}, err
	}
	if f.ProjectID, err = parseID(q, "projectId"); err != nil {
		return Filter{}, Sort{}, err
	}
	if f.WorkOrderID, err = parseID(q, "workOrderId"); err != nil {
		return Filter{}, Sort{}, err
	}
	if f.StartDate, err = parseDate(q, "startDate"); err != nil {
		return Filter{}, Sort{}, err
	}
	if f.EndDate, err = parseDate(q, "endDate"); err != nil {
		return Filter{}, Sort{}, err
	}
	if err := f.Validate(); err != nil {
		return Filter{}, Sort{}, err
	}

	s := Sort{Field: q.Get("sortField"), Order: q.Get("sortOrder")}
	if _, err := s.columns(); err != nil {
		return Filter{}, Sort{}, err
	}
	return f, s, nil
}

// ParseID parses a positive integer identifier.
func ParseID(field, raw string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, store.Invalid(field, "must be a positive integer, got "+strconv.Quote(raw))
	}
	return uint(n), nil
}

func parseID(q url.Values, name string) (*uint, error) {
	raw := q.Get(name)
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := ParseID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDate(q url.Values, name string) (*models.Date, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, store.Invalid(name, err.Error())
	}
	return &d, nil
}
