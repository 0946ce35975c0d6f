package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huynhanx03/go-mq/pkg/common/apperr"
)

const (
	CodeSuccess        = 2000
	CodeParamInvalid   = 4000
	CodeInternalServer = 5000
)

// Response is the envelope for every endpoint.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// SuccessResponse writes a 200 with data.
func SuccessResponse(c *gin.Context, code int, data any) {
	c.JSON(http.StatusOK, Response{Code: code, Data: data})
}

// ErrorResponse writes err and aborts the chain. An *apperr.AppError
// decides its own code and status.
func ErrorResponse(c *gin.Context, code int, err error) {
	status := http.StatusInternalServerError
	if code == CodeParamInvalid {
		status = http.StatusBadRequest
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		if appErr.HTTPStatus != 0 {
			status = appErr.HTTPStatus
		}
	}

	c.AbortWithStatusJSON(status, Response{Code: code, Message: err.Error()})
}
