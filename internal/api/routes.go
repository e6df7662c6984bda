package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/drydock/internal/store"
	"github.com/zulandar/drydock/internal/timesheet"
	"gorm.io/gorm"
)

// registerRoutes sets up every API route on the gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB) {
	s := store.New(db)
	sheets := timesheet.New(db)

	api := router.Group("/api")
	api.GET("/health", handleHealth(db))

	mountTable(api.Group("/clients"), s.Clients)
	mountTable(api.Group("/vessels"), s.Vessels,
		relation{path: "client", column: "client_id", param: "clientId"})
	mountTable(api.Group("/projects"), s.Projects,
		relation{path: "vessel", column: "vessel_id", param: "vesselId"})
	mountTable(api.Group("/workorders"), s.WorkOrders,
		relation{path: "project", column: "project_id", param: "projectId"})
	mountTable(api.Group("/disciplines"), s.Disciplines)
	mountTable(api.Group("/staff"), s.Staff,
		relation{path: "discipline", column: "discipline_id", param: "disciplineId"})

	ts := api.Group("/timesheets")
	ts.GET("", handleTimesheetList(sheets, nil))
	ts.POST("", handleTimesheetCreate(sheets))
	ts.GET("/dropdown/list", handleTimesheetOptions(sheets))
	ts.GET("/export", handleTimesheetExport(sheets))
	ts.POST("/import", handleTimesheetImport(sheets))
	ts.GET("/staff/:staffId", handleTimesheetList(sheets, scopeStaff))
	ts.GET("/workorder/:workOrderId", handleTimesheetList(sheets, scopeWorkOrder))
	ts.GET("/:id", handleTimesheetGet(sheets))
	ts.PUT("/:id", handleTimesheetUpdate(sheets))
	ts.DELETE("/:id", handleTimesheetDelete(sheets))
}

func handleHealth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, errorBody{Message: "Database unavailable", Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
