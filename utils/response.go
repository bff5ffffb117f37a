package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"notebook/apperror"

	"github.com/gin-gonic/gin"
)

// Every body carries "success"; payload keys are merged at the top level so
// clients read data.note, data.notes, data.token and so on.
func respond(c *gin.Context, status int, success bool, message string, payload gin.H) {
	body := gin.H{"success": success}
	if message != "" {
		body["message"] = message
	}
	for key, value := range payload {
		body[key] = value
	}
	c.JSON(status, body)
}

// Success responses
func Success(c *gin.Context, message string, payload gin.H) {
	respond(c, http.StatusOK, true, message, payload)
}

func Created(c *gin.Context, message string, payload gin.H) {
	respond(c, http.StatusCreated, true, message, payload)
}

// Fail writes the response for err and aborts the chain. The status and the
// client-visible message both come from apperror; causes are only logged.
func Fail(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := kind.HTTPStatus()
	TrackError(kind.String())

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"kind", kind.String(),
			"error", err,
		)
	}

	respond(c, status, false, apperror.PublicMessage(err), nil)
	c.Abort()
}

// Error responses
func Unauthorized(c *gin.Context, message string) {
	Fail(c, apperror.New(apperror.KindUnauthorized, message))
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, apperror.Validation(message))
}

func NotFound(c *gin.Context, message string) {
	Fail(c, apperror.NotFound(message))
}

func InternalError(c *gin.Context, message string) {
	Fail(c, apperror.Wrap(apperror.KindInternal, message, errors.New(message)))
}

func RequestTooLarge(c *gin.Context) {
	TrackError("request_too_large")
	respond(c, http.StatusRequestEntityTooLarge, false, "Request body too large", nil)
	c.Abort()
}
