package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/drydock/internal/models"
	"github.com/zulandar/drydock/internal/store"
	"github.com/zulandar/drydock/internal/timesheet"
)

// record constrains the pointer type of a stored model.
type record[T any] interface {
	*T
	models.Record
}

// pathID reads a positive integer path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := timesheet.ParseID(name, c.Param(name))
	if err != nil {
		respondError(c, err)
		return 0, false
	}
	return id, true
}

// bindBody decodes the JSON request body into dst. Numeric fields sent as
// strings are coerced by the models; a value that is not numeric names its
// field in the 400.
func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var fe *models.FieldError
		if errors.As(err, &fe) {
			respondError(c, store.Invalid(fe.Field, fe.Reason))
		} else {
			respondError(c, store.Invalid("body", "is not valid JSON: "+err.Error()))
		}
		return false
	}
	return true
}

func handleList[T any, P record[T]](t *store.Table[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := t.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func handleListBy[T any, P record[T]](t *store.Table[T, P], column, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, param)
		if !ok {
			return
		}
		rows, err := t.ListBy(c.Request.Context(), column, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func handleGet[T any, P record[T]](t *store.Table[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		row, err := t.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

func handleCreate[T any, P record[T]](t *store.Table[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec := P(new(T))
		if !bindBody(c, rec) {
			return
		}
		created, err := t.Create(c.Request.Context(), rec)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func handleUpdate[T any, P record[T]](t *store.Table[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		rec := P(new(T))
		if !bindBody(c, rec) {
			return
		}
		updated, err := t.Update(c.Request.Context(), id, rec)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func handleDelete[T any, P record[T]](t *store.Table[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := t.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleOptions[T any, P record[T]](t *store.Table[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, err := t.Options(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, opts)
	}
}

// relation is a relationship-scoped read such as /vessels/client/:clientId.
type relation struct {
	path   string // e.g. "client"
	column string // e.g. "client_id"
	param  string // e.g. "clientId"
}

// mountTable registers the CRUD, dropdown and relationship routes for one
// entity under g.
func mountTable[T any, P record[T]](g *gin.RouterGroup, t *store.Table[T, P], relations ...relation) {
	g.GET("", handleList(t))
	g.POST("", handleCreate(t))
	g.GET("/dropdown/list", handleOptions(t))
	for _, r := range relations {
		g.GET("/"+r.path+"/:"+r.param, handleListBy(t, r.column, r.param))
	}
	g.GET("/:id", handleGet(t))
	g.PUT("/:id", handleUpdate(t))
	g.DELETE("/:id", handleDelete(t))
}
