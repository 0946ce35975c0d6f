package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-mq/pkg/mq"
	"github.com/huynhanx03/go-mq/pkg/settings"
)

// NewRouter builds a gin engine serving the queue diagnostics of reg.
func NewRouter(cfg settings.Server, reg *mq.Registry, log *zap.Logger) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	NewQueueHandler(reg, log).Register(r)
	return r
}

// Addr returns the listen address for cfg.
func Addr(cfg settings.Server) string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
