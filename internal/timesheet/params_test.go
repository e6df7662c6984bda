package timesheet

import (
	"errors"
	"net/url"
	"testing"

	"github.com/zulandar/drydock/internal/store"
)

func TestParseQuery(t *testing.T) {
	q := url.Values{
		"staffId":     {"3"},
		"projectId":   {"12"},
		"workOrderId": {""},
		"startDate":   {"2024-03-01"},
		"endDate":     {"2024-03-31T12:00:00Z"},
		"sortField":   {"vesselName"},
		"sortOrder":   {"desc"},
	}
	f, s, err := ParseQuery(q)
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	if f.StaffID == nil || *f.StaffID != 3 {
		t.Errorf("StaffID = %v, want 3", f.StaffID)
	}
	if f.ProjectID == nil || *f.ProjectID != 12 {
		t.Errorf("ProjectID = %v, want 12", f.ProjectID)
	}
	if f.WorkOrderID != nil {
		t.Errorf("WorkOrderID = %v, want nil", *f.WorkOrderID)
	}
	if f.StartDate == nil || f.StartDate.String() != "2024-03-01" {
		t.Errorf("StartDate = %v, want 2024-03-01", f.StartDate)
	}
	if f.EndDate == nil || f.EndDate.String() != "2024-03-31" {
		t.Errorf("EndDate = %v, want 2024-03-31", f.EndDate)
	}
	if s.Field != "vesselName" || s.Order != "desc" {
		t.Errorf("Sort = %+v, want vesselName/desc", s)
	}
}

func TestParseQuery_Empty(t *testing.T) {
	f, s, err := ParseQuery(url.Values{})
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	if f != (Filter{}) {
		t.Errorf("Filter = %+v, want zero", f)
	}
	if s != (Sort{}) {
		t.Errorf("Sort = %+v, want zero", s)
	}
}

func TestParseQuery_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{name: "non-numeric staff", query: "staffId=abc", field: "staffId"},
		{name: "zero project", query: "projectId=0", field: "projectId"},
		{name: "negative work order", query: "workOrderId=-4", field: "workOrderId"},
		{name: "bad start date", query: "startDate=03/01/2024", field: "startDate"},
		{name: "bad end date", query: "endDate=tomorrow", field: "endDate"},
		{name: "reversed range", query: "startDate=2024-03-02&endDate=2024-03-01", field: "startDate"},
		{name: "unknown sort field", query: "sortField=rate", field: "sortField"},
		{name: "sql in sort field", query: "sortField=t.id%3BDELETE+FROM+timesheets", field: "sortField"},
		{name: "unknown sort order", query: "sortField=date&sortOrder=random", field: "sortOrder"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			_, _, err = ParseQuery(q)
			var ve *store.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want *store.ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: " 42 ", want: 42},
		{raw: "0", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseID("id", tt.raw)
			if tt.wantErr {
				if !store.IsValidation(err) {
					t.Errorf("ParseID(%q) error = %v, want validation error", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseID(%q): %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseID(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSortColumns_AllAdvertisedFieldsResolve(t *testing.T) {
	for _, field := range SortFields {
		if _, err := (Sort{Field: field}).columns(); err != nil {
			t.Errorf("Sort{%q}.columns(): %v", field, err)
		}
	}
}
