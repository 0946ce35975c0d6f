package request

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseRequest binds the path parameters of c into T and validates the
// result against its `validate` tags.
func ParseRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindUri(&req); err != nil {
		return nil, errors.Wrap(err, "bind path")
	}

	if err := validate.Struct(&req); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			// T is not a struct; there is nothing to validate.
			return &req, nil
		}
		return nil, errors.Wrap(err, "validate request")
	}

	return &req, nil
}
