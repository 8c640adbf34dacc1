package cli

import (
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// NewHeightProgress returns a bar over total heights and a callback that advances it.
func NewHeightProgress(total uint64, logger *zap.Logger) (*progressbar.ProgressBar, func(uint64)) {
	bar := progressbar.Default(int64(min(total, 1<<62)), "scanning heights")
	return bar, func(uint64) {
		if err := bar.Add(1); err != nil {
			logger.Debug("failed to update progress bar", zap.Error(err))
		}
	}
}
