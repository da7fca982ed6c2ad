package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eventnet/backend/internal/model"
	apperrors "eventnet/backend/pkg/errors"
)

var internalError = gin.H{"error": "Internal Server Error"}

// respondError maps gateway and model errors onto status codes. Anything
// unrecognised is logged and hidden behind a generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		dup     *apperrors.DuplicateKeyError
		invalid *apperrors.InvalidFieldError
		typed   *apperrors.TypeConstraintError
		full    *apperrors.GroupFullError
	)

	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{"error": dup.Message})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Message})
	case errors.As(err, &typed):
		c.JSON(http.StatusBadRequest, gin.H{"error": typed.Message})
	case errors.As(err, &full):
		c.JSON(http.StatusConflict, gin.H{"error": full.Message})
	default:
		h.log.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, internalError)
	}
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

// parseID reads an integer key and writes a 400 when it is malformed
func parseID(c *gin.Context, raw, name string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func paramID(c *gin.Context, name string) (int64, bool) {
	return parseID(c, c.Param(name), name)
}

// bindRecord decodes a JSON object body keeping numbers exact
func bindRecord(c *gin.Context) (model.Record, bool) {
	if c.Request.Body == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body required"})
		return nil, false
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()

	var fields model.Record
	if err := dec.Decode(&fields); err != nil {
		msg := err.Error()
		if errors.Is(err, io.EOF) {
			msg = "request body required"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return nil, false
	}
	if fields == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be an object"})
		return nil, false
	}
	return fields, true
}

// orEmpty keeps list responses as [] rather than null
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
