package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrDeliveryFailed 通知发送失败
var ErrDeliveryFailed = errors.New("notification delivery failed")

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type consoleNotifier struct {
}

// NewConsoleNotifier 未配置通知渠道时只打印到日志
func NewConsoleNotifier() Notifier {
	return consoleNotifier{}
}

func (c consoleNotifier) Notify(ctx context.Context, text string) error {
	slog.Info("notification", "text", text)
	return nil
}

type multiNotifier []Notifier

// Multi fans a message out to every notifier; all of them are attempted and
// the failures are joined.
func Multi(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

func (m multiNotifier) Notify(ctx context.Context, text string) error {
	var errs []error
	for i, n := range m {
		if err := n.Notify(ctx, text); err != nil {
			errs = append(errs, fmt.Errorf("notifier %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
