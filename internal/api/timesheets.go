package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/drydock/internal/export"
	"github.com/zulandar/drydock/internal/models"
	"github.com/zulandar/drydock/internal/store"
	"github.com/zulandar/drydock/internal/timesheet"
)

// scope narrows a listing filter from path parameters.
type scope func(c *gin.Context, f *timesheet.Filter) bool

func scopeStaff(c *gin.Context, f *timesheet.Filter) bool {
	id, ok := pathID(c, "staffId")
	f.StaffID = &id
	return ok
}

func scopeWorkOrder(c *gin.Context, f *timesheet.Filter) bool {
	id, ok := pathID(c, "workOrderId")
	f.WorkOrderID = &id
	return ok
}

// listParams parses the listing query and applies the optional path scope.
func listParams(c *gin.Context, sc scope) (timesheet.Filter, timesheet.Sort, bool) {
	f, s, err := timesheet.ParseQuery(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return f, s, false
	}
	if sc != nil && !sc(c, &f) {
		return f, s, false
	}
	return f, s, true
}

func handleTimesheetList(svc *timesheet.Service, sc scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, s, ok := listParams(c, sc)
		if !ok {
			return
		}
		rows, err := svc.List(c.Request.Context(), f, s)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func handleTimesheetGet(svc *timesheet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		row, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

func handleTimesheetCreate(svc *timesheet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ts models.Timesheet
		if !bindBody(c, &ts) {
			return
		}
		created, err := svc.Create(c.Request.Context(), &ts)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func handleTimesheetUpdate(svc *timesheet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var ts models.Timesheet
		if !bindBody(c, &ts) {
			return
		}
		updated, err := svc.Update(c.Request.Context(), id, &ts)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func handleTimesheetDelete(svc *timesheet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleTimesheetOptions(svc *timesheet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, err := svc.Options(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, opts)
	}
}

// handleTimesheetExport returns the filtered listing as an XLSX download.
func handleTimesheetExport(svc *timesheet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, s, ok := listParams(c, nil)
		if !ok {
			return
		}
		rows, err := svc.List(c.Request.Context(), f, s)
		if err != nil {
			respondError(c, err)
			return
		}
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, rows); err != nil {
			respondError(c, err)
			return
		}
		name := fmt.Sprintf("timesheets-%s.xlsx", models.NewDate(time.Now()))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Data(http.StatusOK, export.ContentType, buf.Bytes())
	}
}

// handleTimesheetImport inserts the timesheets of an uploaded workbook
// (multipart field "file") in one transaction.
func handleTimesheetImport(svc *timesheet.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			respondError(c, store.Invalid("file", "is required: "+err.Error()))
			return
		}
		file, err := fh.Open()
		if err != nil {
			respondError(c, fmt.Errorf("api: open upload: %w", err))
			return
		}
		defer file.Close()

		sheets, err := export.ReadXLSX(file)
		if err != nil {
			respondError(c, err)
			return
		}
		n, err := svc.Import(c.Request.Context(), sheets)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"imported": n})
	}
}
