package processor

import (
	"context"
	"os"

	"github.com/nguyentantai21042004/qa-video/internal/logger"
)

// newRunDir creates the scratch directory for one run under the temp path.
func (p *implProcessor) newRunDir() (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", err
	}
	return os.MkdirTemp(p.cfg.Paths.Temp, "run-*")
}

// cleanupRunDir removes a run directory, logs warning if fails
func cleanupRunDir(ctx context.Context, log logger.Logger, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		log.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		log.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}
