package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/tpp/define"
	"github.com/ardnew/tpp/log"
)

// logObserver returns a [define.Observer] that logs each event with logger:
// debug events at debug level and warnings at warn level.
func logObserver(ctx context.Context, logger log.Logger) define.Observer {
	return define.ObserverFunc(func(e define.Event) {
		level := log.LevelDebug
		if e.Severity() == define.SeverityWarning {
			level = log.LevelWarn
		}

		logger.Log(ctx, level, e.Message(), slog.Any("define", e))
	})
}
