package logger

import (
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the process-wide logger, also installed as the slog default
var Log *slog.Logger

type Options struct {
	// Dev switches to human readable text at Debug level
	Dev bool
	// SentryDSN enables error reporting when set
	SentryDSN string
	// Environment tags Sentry events (development, production)
	Environment string
}

// Init installs the default logger writing to w. The server writes to
// stdout; the CLI writes to stderr so command output stays parseable.
// The returned func flushes buffered Sentry events and must run before exit.
func Init(w io.Writer, opts Options) (flush func()) {
	handler := baseHandler(w, opts.Dev)
	flush = func() {}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              opts.SentryDSN,
			Environment:      opts.Environment,
			TracesSampleRate: 1.0,
		})
		if err != nil {
			slog.New(handler).Warn("sentry disabled", "error", err)
		} else {
			handler = slogmulti.Fanout(handler, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
			flush = func() { sentry.Flush(2 * time.Second) }
		}
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
	return flush
}

func baseHandler(w io.Writer, dev bool) slog.Handler {
	if dev {
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}
