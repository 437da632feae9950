package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/utils/logging"
)

const deliveryConcurrency = 4

// Deliver sends queued notifications after the originating transaction
// has committed. A failed send marks the recipient's chat as disabled
// and never interrupts the rest of the fan-out.
func (u *UseCases) Deliver(ctx context.Context, notes []model.OutboundNotification) {
	if u.notifier == nil || len(notes) == 0 {
		return
	}

	var eg errgroup.Group
	eg.SetLimit(deliveryConcurrency)
	for _, note := range notes {
		note := note
		eg.Go(func() error {
			u.deliverOne(ctx, note)
			return nil
		})
	}
	_ = eg.Wait()
}

func (u *UseCases) deliverOne(ctx context.Context, note model.OutboundNotification) {
	logger := logging.From(ctx)

	user, err := u.repo.Users().Get(ctx, note.Recipient)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		logger.Error("failed to load notification recipient",
			"recipient", note.Recipient, "error", err)
		return
	}
	if user != nil && user.DisabledChat {
		return
	}

	if err := u.notifier.Notify(ctx, note); err != nil {
		err = goerr.Wrap(ErrDelivery, err.Error(), goerr.V(RecipientKey, note.Recipient))
		logger.Warn("disabling chat after delivery failure",
			"recipient", note.Recipient,
			"error", err,
		)
		if user == nil {
			return
		}
		user.DisabledChat = true
		user.UpdatedAt = u.clock.Now()
		if uerr := u.repo.Users().Upsert(ctx, user); uerr != nil {
			logger.Error("failed to mark chat disabled",
				"recipient", note.Recipient, "error", uerr)
		}
	}
}
