package response

import (
	"net/http"
	"time"

	apiError "github.com/Gupta-Developer/earnbyapps/errors"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Message   string      `json:"message"`
	Status    int         `json:"status"`
	Data      interface{} `json:"data,omitempty"`
	Errors    string      `json:"errors,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// JSON writes the standard response envelope.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
	}
	c.JSON(status, Response{
		Message:   message,
		Status:    status,
		Data:      data,
		Errors:    errMessage,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// HandleErrors replies according to the error's type: API errors carry their
// own status, anything else is a 500.
func HandleErrors(c *gin.Context, err error) {
	switch e := err.(type) {
	case *apiError.Error:
		JSON(c, e.Message, e.Status, nil, e)
	default:
		JSON(c, "internal server error", http.StatusInternalServerError, nil, err)
	}
}
