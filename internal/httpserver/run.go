package httpserver

import (
	"context"
	"fmt"
)

// Run maps the handlers and serves until the listener fails or the process
// is stopped.
func (srv HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return fmt.Errorf("failed to map handlers: %w", err)
	}

	srv.l.Infof(context.Background(), "HTTP server listening on :%d (mode=%s)", srv.port, srv.mode)
	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
