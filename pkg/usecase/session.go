package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/text/message"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

// Scope is the per-event working set. It lives for the duration of a
// single repository transaction: the acting user and group are
// resolved up front, and every handler mutation plus any queued
// notification commits or rolls back as one unit.
type Scope struct {
	Repo     interfaces.Repository
	Event    model.InboundEvent
	User     *model.User
	NewUser  bool
	Group    *model.Group
	NewGroup bool
	Joined   []*model.User
	Left     *model.User
	Locale   string
	Printer  *message.Printer

	notes []model.OutboundNotification
}

// Notify queues an outbound notification. Queued notifications are
// discarded when the transaction rolls back.
func (sc *Scope) Notify(recipient types.UserID, text string, replies ...model.QuickReply) {
	sc.notes = append(sc.notes, model.OutboundNotification{
		Recipient:    recipient,
		Text:         text,
		QuickReplies: replies,
	})
}

// Reply queues a notification addressed to the acting user
func (sc *Scope) Reply(text string, replies ...model.QuickReply) {
	sc.Notify(sc.User.ID, text, replies...)
}

// Append merges notifications produced by a sub-operation into the
// scope's queue.
func (sc *Scope) Append(notes []model.OutboundNotification) {
	sc.notes = append(sc.notes, notes...)
}

// WithSession resolves the event's actor and chat inside a fresh
// transaction, runs fn, and returns the queued notifications once the
// transaction commits. On error nothing is persisted and no
// notifications are returned.
func (u *UseCases) WithSession(ctx context.Context, event model.InboundEvent, fn func(ctx context.Context, sc *Scope) error) ([]model.OutboundNotification, error) {
	var notes []model.OutboundNotification

	err := u.repo.InTx(ctx, func(ctx context.Context, tx interfaces.Repository) error {
		sc, err := u.openScope(ctx, tx, event)
		if err != nil {
			return err
		}

		if err := fn(ctx, sc); err != nil {
			return err
		}

		notes = sc.notes
		return nil
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (u *UseCases) openScope(ctx context.Context, tx interfaces.Repository, event model.InboundEvent) (*Scope, error) {
	sc := &Scope{
		Repo:  tx,
		Event: event,
	}

	user, err := tx.Users().Get(ctx, event.ActorID)
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		user = model.NewUser(event.ActorID, event.ActorLogin)
		user.Locale = event.ActorLocale
		user.CreatedAt = u.clock.Now()
		user.UpdatedAt = user.CreatedAt
		if err := tx.Users().Upsert(ctx, user); err != nil {
			return nil, goerr.Wrap(err, "failed to register user", goerr.V("user_id", event.ActorID))
		}
		sc.NewUser = true

	case err != nil:
		return nil, goerr.Wrap(err, "failed to resolve user", goerr.V("user_id", event.ActorID))

	case user.DisabledChat || (event.ActorLogin != "" && user.Login != event.ActorLogin):
		// The event itself proves the chat is reachable again, and
		// logins drift as people rename themselves.
		if event.ActorLogin != "" {
			user.Login = event.ActorLogin
		}
		user.DisabledChat = false
		user.UpdatedAt = u.clock.Now()
		if err := tx.Users().Upsert(ctx, user); err != nil {
			return nil, goerr.Wrap(err, "failed to refresh user", goerr.V("user_id", user.ID))
		}
	}
	sc.User = user

	if event.ChatKind == types.ChatKindGroup && event.ChatID != "" {
		group, err := tx.Groups().Get(ctx, event.ChatID)
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			group = model.NewGroup(event.ChatID, event.ChatTitle)
			group.Locale = event.ChatLocale
			group.CreatedAt = u.clock.Now()
			group.UpdatedAt = group.CreatedAt
			if err := tx.Groups().Upsert(ctx, group); err != nil {
				return nil, goerr.Wrap(err, "failed to register group", goerr.V("chat_id", event.ChatID))
			}
			sc.NewGroup = true

		case err != nil:
			return nil, goerr.Wrap(err, "failed to resolve group", goerr.V("chat_id", event.ChatID))

		case (event.ChatTitle != "" && group.Title != event.ChatTitle) ||
			(event.ChatLocale != "" && group.Locale != event.ChatLocale):
			if event.ChatTitle != "" {
				group.Title = event.ChatTitle
			}
			if event.ChatLocale != "" {
				group.Locale = event.ChatLocale
			}
			group.UpdatedAt = u.clock.Now()
			if err := tx.Groups().Upsert(ctx, group); err != nil {
				return nil, goerr.Wrap(err, "failed to refresh group", goerr.V("chat_id", group.ID))
			}
		}
		sc.Group = group
	}

	for _, ref := range event.Joined {
		member, err := u.resolveMember(ctx, tx, ref)
		if err != nil {
			return nil, err
		}
		sc.Joined = append(sc.Joined, member)
	}
	if event.Left != nil {
		member, err := tx.Users().Get(ctx, event.Left.ID)
		if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to resolve departed member", goerr.V("user_id", event.Left.ID))
		}
		sc.Left = member
	}

	sc.Locale = u.resolveLocale(sc)
	sc.Printer = u.translator.Translate(sc.Locale)

	return sc, nil
}

func (u *UseCases) resolveMember(ctx context.Context, tx interfaces.Repository, ref model.MemberRef) (*model.User, error) {
	member, err := tx.Users().Get(ctx, ref.ID)
	if errors.Is(err, interfaces.ErrNotFound) {
		member = model.NewUser(ref.ID, ref.Login)
		member.CreatedAt = u.clock.Now()
		member.UpdatedAt = member.CreatedAt
		if err := tx.Users().Upsert(ctx, member); err != nil {
			return nil, goerr.Wrap(err, "failed to register member", goerr.V("user_id", ref.ID))
		}
		return member, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve member", goerr.V("user_id", ref.ID))
	}
	return member, nil
}

// Locale precedence: group, then user, then the event hint, then the
// configured default.
func (u *UseCases) resolveLocale(sc *Scope) string {
	if sc.Group != nil && sc.Group.Locale != "" {
		return sc.Group.Locale
	}
	if sc.User.Locale != "" {
		return sc.User.Locale
	}
	if sc.Event.ActorLocale != "" {
		return sc.Event.ActorLocale
	}
	return u.defaultLocale
}
