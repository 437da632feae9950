package async

import (
	"context"

	"github.com/google/uuid"

	"github.com/rallykit/rallybot/pkg/utils/errutil"
	"github.com/rallykit/rallybot/pkg/utils/logging"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// It creates a background context and handles errors and panics, so a
// failing or panicking handler never takes down the worker processing
// other events.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	taskID := uuid.Must(uuid.NewV7()).String()

	// Detach from the request context but preserve the logger
	bgCtx := context.Background()
	if logger := logging.From(ctx); logger != nil {
		bgCtx = logging.With(bgCtx, logger.With("task_id", taskID))
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger := logging.From(bgCtx)
				logger.Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async handler failed")
		}
	}()
}
