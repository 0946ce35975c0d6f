package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/huynhanx03/go-mq/pkg/common/http/request"
	"github.com/huynhanx03/go-mq/pkg/common/http/response"
)

// HandlerFunc is the signature of a queue diagnostics endpoint: T holds the
// bound path parameters, R is written as the response data.
type HandlerFunc[T any, R any] func(context.Context, *T) (R, error)

// Wrap adapts h to gin. Invalid path parameters answer 400; an error from h
// answers with the status its *apperr.AppError carries, or 500.
func Wrap[T any, R any](h HandlerFunc[T, R]) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := request.ParseRequest[T](c)
		if err != nil {
			response.ErrorResponse(c, response.CodeParamInvalid, err)
			return
		}

		res, err := h(c.Request.Context(), req)
		if err != nil {
			response.ErrorResponse(c, response.CodeInternalServer, err)
			return
		}

		response.SuccessResponse(c, response.CodeSuccess, res)
	}
}
