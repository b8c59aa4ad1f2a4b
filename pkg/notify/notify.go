// Package notify is a fire-and-forget side channel for user-facing notices.
// Guarded actions that are not yet implemented emit a notice here; nothing in
// the authentication or audit contracts depends on delivery.
package notify

import (
	"context"
	"log/slog"
)

// Notice is one user-facing notification.
type Notice struct {
	Kind    string
	Message string
}

// Notifier delivers notices best-effort. Implementations must not block the
// caller and must not return errors into the calling path.
type Notifier interface {
	Notify(ctx context.Context, notice Notice)
}

// LogNotifier writes notices to the structured log. It stands in for a real
// delivery channel (toast service, email) in development and tests.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notice Notice) {
	if n.logger == nil {
		return
	}
	n.logger.InfoContext(ctx, "notice emitted",
		"kind", notice.Kind,
		"message", notice.Message,
	)
}
