package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the API error type carried from services up to handlers. Status is
// the HTTP status the handler should reply with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	// ErrIntegrity reports a task delete whose transaction cascade did not
	// complete, leaving dangling references behind.
	ErrIntegrity = New("integrity error: task cascade delete incomplete", http.StatusInternalServerError)
	// ErrUpstreamUnavailable reports a failed call to storage, S3 or mail.
	// Callers may retry; services never retry on their own.
	ErrUpstreamUnavailable = New("upstream service unavailable", http.StatusServiceUnavailable)
	InActiveUserError      = New("user inactive", http.StatusUnauthorized)
)

// GetUniqueContraintError maps a postgres unique-violation into a 400 the
// client can act on.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "23505") {
		switch {
		case strings.Contains(msg, "email"):
			return New("email already exists", http.StatusBadRequest)
		case strings.Contains(msg, "telephone"):
			return New("phone number already exists", http.StatusBadRequest)
		default:
			return New("record already exists", http.StatusBadRequest)
		}
	}
	return ErrInternalServerError
}

// ErrorHandler is plugged into the gin rate limiter.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error": "too many requests, try again in " + time.Until(info.ResetTime).String(),
	})
}
