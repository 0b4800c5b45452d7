package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/turing/pkg/registry"
)

// Watch enables hot reload of machine documents. Loaders that cannot watch
// are reported and otherwise ignored.
func Watch(ctx context.Context, reg *registry.Registry, logger *slog.Logger) bool {
	if err := reg.Watch(ctx); err != nil {
		logger.Warn("hot reload disabled", "err", err)
		return false
	}
	logger.Info("watching machine documents for changes")
	return true
}
