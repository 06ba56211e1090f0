// Package alert dispatches local, user-visible notifications for
// messages that arrive outside the active channel.
package alert

import (
	"strings"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"github.com/ostazi/chat-core/pkg/logger"
)

// maxBodyLength bounds the alert body text.
const maxBodyLength = 100

// Notifier delivers a local alert immediately. Delivery is best-effort:
// a missing platform permission is a silent no-op, not an error.
type Notifier interface {
	Notify(title, body string)
}

// DesktopNotifier delivers alerts through the platform notification
// facility.
type DesktopNotifier struct {
	logger *logger.Logger
}

// NewDesktopNotifier creates a notifier backed by the OS facility.
func NewDesktopNotifier(log *logger.Logger) *DesktopNotifier {
	return &DesktopNotifier{logger: log}
}

// Notify schedules an alert for immediate delivery. Failures (denied
// permission, unsupported platform) are logged and absorbed.
func (n *DesktopNotifier) Notify(title, body string) {
	if err := beeep.Notify(title, truncate(body, maxBodyLength), ""); err != nil {
		n.logger.Debug("alert delivery unavailable",
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

// NoopNotifier discards every alert. Used when the user never granted
// the notification permission.
type NoopNotifier struct{}

// Notify does nothing.
func (NoopNotifier) Notify(title, body string) {}

func truncate(s string, maxLen int) string {
	// Collapse whitespace so the alert reads as one line. The bound is
	// in runes, not bytes: bodies are routinely Arabic or Urdu.
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
