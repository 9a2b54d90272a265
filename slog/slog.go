// Package slog decorates the remote services with structured logging via
// log/slog. Every call is logged with its identifiers and duration; failed
// calls are logged at error level with the error code.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/filechat"
)

// logCall logs the outcome of a remote call started at begin.
func logCall(logger *slog.Logger, msg string, begin time.Time, err error, args ...any) {
	args = append(args, "duration", time.Since(begin))
	if err != nil {
		args = append(args, "code", filechat.ErrorCode(err), "error", err)
		logger.Error(msg, args...)
		return
	}
	logger.Debug(msg, args...)
}
