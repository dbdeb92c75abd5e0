// Package response builds the uniform envelope returned by every API
// endpoint: {httpCode, message, data, timestamp}.
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TimestampLayout renders a human-readable local time. Clients should not
// parse it.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Response is the envelope shared by success and failure replies.
type Response[T any] struct {
	HTTPCode  int    `json:"httpCode"`
	Message   string `json:"message"`
	Data      T      `json:"data"`
	Timestamp string `json:"timestamp"`
}

// messages overrides the standard status text for the codes the API uses.
var messages = map[int]string{
	http.StatusOK:                  "Query successful",
	http.StatusCreated:             "Record created",
	http.StatusBadRequest:          "Bad request: the request was invalid",
	http.StatusNotFound:            "Record not found",
	http.StatusTooManyRequests:     "Rate limit exceeded",
	http.StatusInternalServerError: "Internal server error",
	http.StatusNotImplemented:      "Document store error",
}

// Message returns the envelope message for a status code.
func Message(code int) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return http.StatusText(code)
}

var now = time.Now

// New builds an envelope for code and data, stamped with the current time.
func New[T any](code int, data T) Response[T] {
	return Response[T]{
		HTTPCode:  code,
		Message:   Message(code),
		Data:      data,
		Timestamp: now().Format(TimestampLayout),
	}
}

// JSON writes an envelope with the given status.
func JSON[T any](c *gin.Context, code int, data T) {
	c.JSON(code, New(code, data))
}

// Abort writes an envelope and stops the handler chain.
func Abort[T any](c *gin.Context, code int, data T) {
	c.AbortWithStatusJSON(code, New(code, data))
}
