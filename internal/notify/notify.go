package notify

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Notification is one reminder ready for delivery.
type Notification struct {
	Key   string
	Title string
	Body  string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes reminders to the structured log
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	l.logger.InfoContext(ctx, n.Title, "reminder", n.Key, "body", n.Body)
	return nil
}

// Fanout delivers to every sink concurrently. A failing sink does not stop
// the others; the first error is returned once all have finished.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n Notification) error {
	var g errgroup.Group
	for _, sink := range f {
		g.Go(func() error { return sink.Notify(ctx, n) })
	}
	return g.Wait()
}
