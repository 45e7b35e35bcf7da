package gateway

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fystack/kv-gateway/pkg/common/config"
	"github.com/fystack/kv-gateway/pkg/common/logger"
)

// StartHTTPServer wires the handler into a mux and starts serving in the
// background. The caller owns shutdown.
func StartHTTPServer(cfg config.ServerConfig, handler *GatewayHTTPHandler) *http.Server {
	mux := http.NewServeMux()
	handler.Register(mux)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(
			"Gateway HTTP server started",
			"addr", server.Addr,
			"health_endpoint", "/health",
			"ready_endpoint", "/ready",
			"keys_endpoint", "/keys",
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "err", err)
		}
	}()

	return server
}
