package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/drydock/internal/store"
)

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	var ve *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &ve):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the {message, error} body for err and records it
// for the request logger.
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	var msg string
	switch status {
	case http.StatusNotFound:
		msg = "Resource not found"
	case http.StatusBadRequest:
		msg = "Invalid request"
	default:
		msg = "Internal server error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorBody{Message: msg, Error: err.Error()})
}
