package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Meta    any        `json:"meta,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, envelope{Success: true, Data: data})
}

// Page writes a list response with its pagination meta next to the data.
func Page(c *gin.Context, data any, meta any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data, Meta: meta})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, envelope{Error: &ErrorBody{Code: code, Message: message}})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, envelope{Error: &ErrorBody{Code: code, Message: message, Details: details}})
}

// Abort writes an error and stops the handler chain. Used by middleware.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	c.AbortWithStatusJSON(statusCode, envelope{Error: &ErrorBody{Code: code, Message: message}})
}

// Internal attaches err to the context for the request logger and answers
// with a generic 500.
func Internal(c *gin.Context, err error) {
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
}
