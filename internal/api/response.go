package api

import (
	"errors"
	"net/http"

	"github.com/duitku/duitku/internal/common"
	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope with the given status.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Code: code, Message: message})
}

// BadRequest writes a 400 envelope.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound writes a 404 envelope.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError writes a 500 envelope.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// fail maps an operation error to the right envelope. UserError
// messages go through verbatim; everything else degrades to a generic
// message so internals stay out of responses.
func fail(c *gin.Context, err error) {
	var userErr *common.UserError
	switch {
	case errors.Is(err, common.ErrNotFound):
		NotFound(c, err.Error())
	case errors.As(err, &userErr):
		Error(c, http.StatusBadGateway, userErr.UserMessage)
	case errors.Is(err, common.ErrEmptyTurn):
		BadRequest(c, "message or media is required")
	case errors.Is(err, common.ErrUpstream):
		Error(c, http.StatusBadGateway, "assistant is unavailable, try again later")
	default:
		InternalError(c, "internal error")
	}
}
