package server

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartPprofServer starts the pprof server on a separate port.
// An empty addr disables it.
func StartPprofServer(addr string, logger *zap.Logger) {
	if addr == "" {
		return
	}

	pprofRouter := gin.New()
	pprof.Register(pprofRouter)

	go func() {
		logger.Info("Starting pprof server", zap.String("addr", addr))
		if err := pprofRouter.Run(addr); err != nil {
			logger.Error("pprof server stopped", zap.Error(err))
		}
	}()
}
