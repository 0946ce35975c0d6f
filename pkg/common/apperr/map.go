package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/huynhanx03/go-mq/pkg/mq"
)

// Queue error codes
const (
	CodeQueueClosed = 4100 + iota
	CodeQueueFull
	CodeQueueEmpty
	CodeQueueClosedAndEmpty
	CodeQueueTimeout
	CodeQueueNilMessage
	CodeQueueNotFound
	CodeQueueDuplicate
	CodeInternal = 5000
)

// Generic Action Messages
const (
	MsgLookupFailed = "failed to find queue"
	MsgCloseFailed  = "failed to close queue"
)

// MapError wraps an error with a standardized message"
func MapError(serviceName string, err error, code int, msg string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}

	formattedMsg := fmt.Sprintf("%s %s", serviceName, msg)
	return Wrap(err, code, formattedMsg, httpStatus)
}

// queueErrors lists mq sentinels with their code and HTTP status.
var queueErrors = []struct {
	err    error
	code   int
	status int
}{
	{mq.ErrQueueClosedAndEmpty, CodeQueueClosedAndEmpty, http.StatusGone},
	{mq.ErrQueueClosed, CodeQueueClosed, http.StatusConflict},
	{mq.ErrQueueFull, CodeQueueFull, http.StatusServiceUnavailable},
	{mq.ErrQueueEmpty, CodeQueueEmpty, http.StatusNoContent},
	{mq.ErrTimeout, CodeQueueTimeout, http.StatusRequestTimeout},
	{mq.ErrNilMessage, CodeQueueNilMessage, http.StatusBadRequest},
	{mq.ErrQueueNotFound, CodeQueueNotFound, http.StatusNotFound},
	{mq.ErrDuplicateQueue, CodeQueueDuplicate, http.StatusConflict},
}

// FromQueueError maps an mq error to an AppError prefixed with serviceName.
// Unknown errors map to CodeInternal.
func FromQueueError(serviceName string, err error, msg string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, qe := range queueErrors {
		if errors.Is(err, qe.err) {
			return MapError(serviceName, err, qe.code, msg, qe.status)
		}
	}
	return MapError(serviceName, err, CodeInternal, msg, http.StatusInternalServerError)
}
