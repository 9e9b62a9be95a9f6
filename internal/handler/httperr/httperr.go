package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the uniform error body. Status travels with the response so
// deferred middleware can write it without re-deriving the code.
type Response struct {
	Status int     `json:"-"`
	Error  Message `json:"error"`
	Detail any     `json:"detail,omitempty"`
}

type Message struct {
	Text string `json:"message"`
}

func NewResponse(status int, msg string) Response {
	return Response{
		Status: status,
		Error:  Message{Text: msg},
	}
}

// Abort records the cause on the gin error stack and writes the response.
// The wrapped error is what the logging middleware sees.
func Abort(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		panic("httperr.Abort: err cannot be nil")
	}

	resp := NewResponse(status, msg)

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
