package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-mq/pkg/common/apperr"
	"github.com/huynhanx03/go-mq/pkg/logger"
	"github.com/huynhanx03/go-mq/pkg/mq"
)

const serviceName = "mq"

// ListRequest selects every registered queue.
type ListRequest struct{}

// QueueRequest selects one queue by its path name.
type QueueRequest struct {
	Name string `uri:"name" validate:"required,max=128"`
}

// QueueHandler exposes read-only diagnostics and an administrative close
// for the queues in a registry.
type QueueHandler struct {
	reg *mq.Registry
	log *zap.Logger
}

// NewQueueHandler creates a handler over reg. A nil logger disables logging.
func NewQueueHandler(reg *mq.Registry, log *zap.Logger) *QueueHandler {
	return &QueueHandler{reg: reg, log: logger.OrNop(log).Named("mq.http")}
}

// Register mounts the routes on r:
//
//	GET  /queues              stats for every queue
//	GET  /queues/:name        stats for one queue
//	POST /queues/:name/close  close one queue
func (h *QueueHandler) Register(r gin.IRouter) {
	g := r.Group("/queues")
	g.GET("", Wrap(h.List))
	g.GET("/:name", Wrap(h.Get))
	g.POST("/:name/close", Wrap(h.Close))
}

// List returns the stats of every registered queue, sorted by name.
func (h *QueueHandler) List(_ context.Context, _ *ListRequest) ([]mq.Stats, error) {
	return h.reg.Stats(), nil
}

// Get returns the stats of one queue.
func (h *QueueHandler) Get(_ context.Context, req *QueueRequest) (mq.Stats, error) {
	q, ok := h.reg.Get(req.Name)
	if !ok {
		return mq.Stats{}, apperr.FromQueueError(serviceName, mq.ErrQueueNotFound, apperr.MsgLookupFailed)
	}
	return q.Stats(), nil
}

// Close closes one queue and returns its stats after closing. Pending
// messages stay receivable.
func (h *QueueHandler) Close(_ context.Context, req *QueueRequest) (mq.Stats, error) {
	q, ok := h.reg.Get(req.Name)
	if !ok {
		return mq.Stats{}, apperr.FromQueueError(serviceName, mq.ErrQueueNotFound, apperr.MsgCloseFailed)
	}
	q.Close()

	stats := q.Stats()
	h.log.Info("queue closed via http",
		zap.String("queue", req.Name),
		zap.Stringer("state", stats.State),
		zap.Int("pending", stats.Size),
	)
	return stats, nil
}
