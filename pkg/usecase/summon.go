package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/text/message"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
	"github.com/rallykit/rallybot/pkg/service/i18n"
)

// SummonUseCase runs summon rounds and records responses
type SummonUseCase struct {
	uc *UseCases
}

// ClearInactive purges participant rows older than the cooldown
// window. Every summon and response round starts with this sweep so
// stale responses never influence targeting.
func (s *SummonUseCase) ClearInactive(ctx context.Context, tx interfaces.Repository) (int, error) {
	cutoff := s.uc.clock.Now().Add(-s.uc.cooldown)
	n, err := tx.Participants().DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to purge stale participants")
	}
	return n, nil
}

// Summon notifies every subscriber of the named activity who has not
// yet responded within the cooldown window. The summoner is never
// targeted and gets a confirmation with the target count instead; the
// summoner does not become a participant by summoning.
func (s *SummonUseCase) Summon(ctx context.Context, tx interfaces.Repository, summoner *model.User, printer *message.Printer, name string) ([]model.OutboundNotification, error) {
	activity, err := s.uc.Registry.ResolveByName(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	if _, err := s.ClearInactive(ctx, tx); err != nil {
		return nil, err
	}

	subs, err := tx.Subscriptions().ListByActivity(ctx, activity.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list subscribers", goerr.V(ActivityKey, activity.Name))
	}
	parts, err := tx.Participants().ListByActivity(ctx, activity.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list participants", goerr.V(ActivityKey, activity.Name))
	}

	responded := make(map[types.UserID]struct{}, len(parts))
	for _, p := range parts {
		responded[p.UserID] = struct{}{}
	}

	var targetIDs []types.UserID
	for _, sub := range subs {
		if sub.UserID == summoner.ID {
			continue
		}
		if _, ok := responded[sub.UserID]; ok {
			continue
		}
		targetIDs = append(targetIDs, sub.UserID)
	}

	targets, err := tx.Users().ListByIDs(ctx, targetIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load summon targets", goerr.V(ActivityKey, activity.Name))
	}

	var notes []model.OutboundNotification
	for _, target := range targets {
		if !target.Active {
			continue
		}
		tp := s.uc.printerFor(target)
		replies := make([]model.QuickReply, 0, len(types.AllRespondModes()))
		for _, mode := range types.AllRespondModes() {
			replies = append(replies, model.QuickReply{
				Label: tp.Sprintf(buttonLabel(mode)),
				Value: mode.String() + " " + activity.Name,
			})
		}
		notes = append(notes, model.OutboundNotification{
			Recipient:    target.ID,
			Text:         tp.Sprintf(i18n.MsgSummonInvite, summoner.Login, activity.Name),
			QuickReplies: replies,
		})
	}

	if len(notes) == 0 {
		notes = append(notes, model.OutboundNotification{
			Recipient: summoner.ID,
			Text:      printer.Sprintf(i18n.MsgNoOneToSummon, activity.Name),
		})
		return notes, nil
	}

	notes = append(notes, model.OutboundNotification{
		Recipient: summoner.ID,
		Text:      printer.Sprintf(i18n.MsgSummonSent, len(notes), activity.Name),
	})
	return notes, nil
}

// Respond records a user's answer to a summon and tells the other
// accepted participants about it. The announcement goes out only when
// the answer creates a row or flips its accepted flag, so repeating
// the same answer stays silent. A pre-existing row always ends up
// accepted with a fresh timestamp, whatever the answer was.
func (s *SummonUseCase) Respond(ctx context.Context, tx interfaces.Repository, responder *model.User, name string, mode types.RespondMode) ([]model.OutboundNotification, error) {
	activity, err := s.uc.Registry.ResolveByName(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	if _, err := s.ClearInactive(ctx, tx); err != nil {
		return nil, err
	}

	now := s.uc.clock.Now()
	accepted := mode.Accepted()

	existing, err := tx.Participants().Get(ctx, responder.ID, activity.ID)
	created := errors.Is(err, interfaces.ErrNotFound)
	if err != nil && !created {
		return nil, goerr.Wrap(err, "failed to load participant",
			goerr.V(ActivityKey, activity.Name),
			goerr.V("user_id", responder.ID))
	}

	if created {
		existing = &model.Participant{
			UserID:     responder.ID,
			ActivityID: activity.ID,
			ReportedAt: now,
			Accepted:   accepted,
		}
		if err := tx.Participants().Upsert(ctx, existing); err != nil {
			return nil, goerr.Wrap(err, "failed to record response",
				goerr.V(ActivityKey, activity.Name))
		}
	}

	var notes []model.OutboundNotification
	if created || existing.Accepted != accepted {
		notes, err = s.announce(ctx, tx, responder, activity, mode)
		if err != nil {
			return nil, err
		}
	}

	if !created {
		existing.ReportedAt = now
		existing.Accepted = true
		if err := tx.Participants().Upsert(ctx, existing); err != nil {
			return nil, goerr.Wrap(err, "failed to refresh participant",
				goerr.V(ActivityKey, activity.Name))
		}
	}

	return notes, nil
}

// announce builds the response notification for every other accepted
// participant of the activity.
func (s *SummonUseCase) announce(ctx context.Context, tx interfaces.Repository, responder *model.User, activity *model.Activity, mode types.RespondMode) ([]model.OutboundNotification, error) {
	parts, err := tx.Participants().ListByActivity(ctx, activity.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list participants", goerr.V(ActivityKey, activity.Name))
	}

	var peerIDs []types.UserID
	for _, p := range parts {
		if p.UserID == responder.ID || !p.Accepted {
			continue
		}
		peerIDs = append(peerIDs, p.UserID)
	}

	peers, err := tx.Users().ListByIDs(ctx, peerIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load participants", goerr.V(ActivityKey, activity.Name))
	}

	key := i18n.MsgResponseJoin
	switch mode {
	case types.RespondLater:
		key = i18n.MsgResponseLater
	case types.RespondDecline:
		key = i18n.MsgResponseDecline
	}

	var notes []model.OutboundNotification
	for _, peer := range peers {
		if !peer.Active {
			continue
		}
		tp := s.uc.printerFor(peer)
		notes = append(notes, model.OutboundNotification{
			Recipient: peer.ID,
			Text:      tp.Sprintf(key, responder.Login, activity.Name),
		})
	}
	return notes, nil
}

func buttonLabel(mode types.RespondMode) string {
	switch mode {
	case types.RespondLater:
		return i18n.MsgButtonLater
	case types.RespondDecline:
		return i18n.MsgButtonDecline
	default:
		return i18n.MsgButtonJoin
	}
}

// printerFor renders messages in the recipient's own locale, not the
// locale of the event that triggered the fan-out.
func (u *UseCases) printerFor(user *model.User) *message.Printer {
	locale := user.Locale
	if locale == "" {
		locale = u.defaultLocale
	}
	return u.translator.Translate(locale)
}
