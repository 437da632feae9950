package interfaces

import (
	"context"

	"github.com/rallykit/rallybot/pkg/domain/model"
)

// Notifier delivers one outbound notification via the chat transport.
// A failed delivery returns an error; the caller decides how to recover.
type Notifier interface {
	Notify(ctx context.Context, note model.OutboundNotification) error
}
