package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger 输出 JSON 日志到 w（stderr），stdout 只用于结果文档。
func newLogger(w io.Writer, level, runID string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("run_id", runID).Logger()
}
