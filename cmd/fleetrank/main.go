// Package main provides the fleetrank CLI: rank a daily fleet of trains into
// Revenue / Standby / Maintenance from a JSON array of train records.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/rushteam/fleetrank/config/builders"
	"github.com/rushteam/fleetrank/core"
)

// 退出码，按错误类别区分，便于父进程判断失败原因。
const (
	exitOK              = 0
	exitFailure         = 1
	exitMalformedInput  = 2
	exitMissingFeature  = 3
	exitInvalidCategory = 4
	exitScoring         = 5
	exitModelLoad       = 6
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		code := exitCode(err)
		logger := zerolog.New(stderr).With().Timestamp().Logger()
		ev := logger.Error().Err(err).Int("exit_code", code)
		if de := core.GetDomainError(err); de != nil {
			ev = ev.Str("code", de.Code).Str("module", de.Module)
		}
		ev.Msg("fleetrank failed")
		return code
	}
	return exitOK
}

func exitCode(err error) int {
	de := core.GetDomainError(err)
	if de == nil {
		return exitFailure
	}
	switch de.Code {
	case core.ErrorCodeMalformedInput:
		return exitMalformedInput
	case core.ErrorCodeMissingFeature:
		return exitMissingFeature
	case core.ErrorCodeInvalidCategory:
		return exitInvalidCategory
	case core.ErrorCodeScoring:
		return exitScoring
	case core.ErrorCodeModelLoad:
		return exitModelLoad
	default:
		return exitFailure
	}
}
