package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
	"github.com/rallykit/rallybot/pkg/service/i18n"
)

// Handle runs one parsed command end to end: session resolution, the
// rights gate, the command handler, and returns the notifications to
// deliver after commit.
func (u *UseCases) Handle(ctx context.Context, event model.InboundEvent, cmd types.Command, arg string) ([]model.OutboundNotification, error) {
	if !cmd.IsValid() {
		return nil, goerr.Wrap(ErrValidation, "unknown command", goerr.V(CommandKey, string(cmd)))
	}

	return u.WithSession(ctx, event, u.Guard(cmd, func(ctx context.Context, sc *Scope) error {
		return u.dispatch(ctx, sc, cmd, strings.TrimSpace(arg))
	}))
}

// HandleText resolves a bare text message. It completes the sender's
// pending multi-step command, if any; unsolicited text is ignored.
func (u *UseCases) HandleText(ctx context.Context, event model.InboundEvent, text string) ([]model.OutboundNotification, error) {
	return u.WithSession(ctx, event, func(ctx context.Context, sc *Scope) error {
		if sc.User.PendingAction != types.PendingActivityName {
			return nil
		}

		// The pending flag was only set after the rights gate passed, so
		// completing it needs no second check.
		if err := u.Account.SetPending(ctx, sc.Repo, sc.User, types.PendingNone); err != nil {
			return err
		}
		return u.createActivity(ctx, sc, text)
	})
}

// HandleMembership registers joined members and needs no reply
func (u *UseCases) HandleMembership(ctx context.Context, event model.InboundEvent) error {
	_, err := u.WithSession(ctx, event, func(ctx context.Context, sc *Scope) error {
		return nil
	})
	return err
}

func (u *UseCases) dispatch(ctx context.Context, sc *Scope, cmd types.Command, arg string) error {
	switch cmd {
	case types.CommandStart:
		sc.Reply(sc.Printer.Sprintf(i18n.MsgGreeting))
		return nil

	case types.CommandStatus:
		return u.status(ctx, sc)

	case types.CommandReady:
		if err := u.Account.SetActive(ctx, sc.Repo, sc.User, true); err != nil {
			return err
		}
		sc.Reply(sc.Printer.Sprintf(i18n.MsgReady))
		return nil

	case types.CommandDoNotDisturb:
		if err := u.Account.SetActive(ctx, sc.Repo, sc.User, false); err != nil {
			return err
		}
		sc.Reply(sc.Printer.Sprintf(i18n.MsgDoNotDisturb))
		return nil

	case types.CommandCancel:
		if sc.User.PendingAction == types.PendingNone {
			sc.Reply(sc.Printer.Sprintf(i18n.MsgNothingToCancel))
			return nil
		}
		if err := u.Account.SetPending(ctx, sc.Repo, sc.User, types.PendingNone); err != nil {
			return err
		}
		sc.Reply(sc.Printer.Sprintf(i18n.MsgCancelled))
		return nil

	case types.CommandActivityList:
		return u.listActivities(ctx, sc)

	case types.CommandActivityAdd:
		if arg == "" {
			if err := u.Account.SetPending(ctx, sc.Repo, sc.User, types.PendingActivityName); err != nil {
				return err
			}
			sc.Reply(sc.Printer.Sprintf(i18n.MsgAskActivityName))
			return nil
		}
		return u.createActivity(ctx, sc, arg)

	case types.CommandActivityRem:
		activity, err := u.Registry.Remove(ctx, sc.Repo, sc.User, arg)
		if err != nil {
			return u.reject(sc, err)
		}
		sc.Reply(sc.Printer.Sprintf(i18n.MsgActivityRemoved, activity.Name))
		return nil

	case types.CommandSubscribe:
		activity, err := u.Registry.Subscribe(ctx, sc.Repo, sc.User, arg)
		if err != nil {
			return u.reject(sc, err)
		}
		sc.Reply(sc.Printer.Sprintf(i18n.MsgSubscribed, activity.Name))
		return nil

	case types.CommandUnsubscribe:
		activity, err := u.Registry.Unsubscribe(ctx, sc.Repo, sc.User, arg)
		if err != nil {
			return u.reject(sc, err)
		}
		sc.Reply(sc.Printer.Sprintf(i18n.MsgUnsubscribed, activity.Name))
		return nil

	case types.CommandSummon:
		notes, err := u.Summon.Summon(ctx, sc.Repo, sc.User, sc.Printer, arg)
		if err != nil {
			return u.reject(sc, err)
		}
		sc.Append(notes)
		return nil

	case types.CommandJoin, types.CommandLater, types.CommandDecline:
		mode := types.RespondMode(cmd)
		notes, err := u.Summon.Respond(ctx, sc.Repo, sc.User, arg, mode)
		if err != nil {
			return u.reject(sc, err)
		}
		sc.Append(notes)
		return nil

	case types.CommandPromote:
		return u.setRightsByLogin(ctx, sc, arg, true)

	case types.CommandDemote:
		return u.setRightsByLogin(ctx, sc, arg, false)

	case types.CommandRawData:
		return u.rawData(ctx, sc)

	default:
		return goerr.Wrap(ErrValidation, "unknown command", goerr.V(CommandKey, string(cmd)))
	}
}

func (u *UseCases) createActivity(ctx context.Context, sc *Scope, name string) error {
	activity, err := u.Registry.Create(ctx, sc.Repo, sc.User, name)
	if err != nil {
		return u.reject(sc, err)
	}
	sc.Reply(sc.Printer.Sprintf(i18n.MsgActivityCreated, activity.Name))
	return nil
}

func (u *UseCases) status(ctx context.Context, sc *Scope) error {
	sc.Reply(sc.Printer.Sprintf(i18n.MsgStatus, sc.User.Login, sc.User.Active))

	subs, err := sc.Repo.Subscriptions().ListByUser(ctx, sc.User.ID)
	if err != nil {
		return goerr.Wrap(err, "failed to list subscriptions", goerr.V("user_id", sc.User.ID))
	}
	if len(subs) == 0 {
		sc.Reply(sc.Printer.Sprintf(i18n.MsgNoSubscriptions))
		return nil
	}

	names := make([]string, 0, len(subs))
	for _, sub := range subs {
		activity, err := sc.Repo.Activities().Get(ctx, sub.ActivityID)
		if err != nil {
			return goerr.Wrap(err, "failed to resolve subscription", goerr.V("activity_id", sub.ActivityID))
		}
		names = append(names, activity.Name)
	}
	sc.Reply(sc.Printer.Sprintf(i18n.MsgSubscriptions, strings.Join(names, ", ")))
	return nil
}

func (u *UseCases) listActivities(ctx context.Context, sc *Scope) error {
	activities, err := u.Registry.List(ctx, sc.Repo)
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		sc.Reply(sc.Printer.Sprintf(i18n.MsgNoActivities))
		return nil
	}

	names := make([]string, 0, len(activities))
	for _, activity := range activities {
		names = append(names, activity.Name)
	}
	sc.Reply(sc.Printer.Sprintf(i18n.MsgActivityList, strings.Join(names, ", ")))
	return nil
}

// rawData dumps the caller's stored record and per-activity counters.
// Diagnostic output, left untranslated on purpose.
func (u *UseCases) rawData(ctx context.Context, sc *Scope) error {
	var b strings.Builder
	fmt.Fprintf(&b, "user id=%s login=%s rights=%d active=%v disabled_chat=%v pending=%d\n",
		sc.User.ID, sc.User.Login, sc.User.RightsLevel, sc.User.Active, sc.User.DisabledChat, sc.User.PendingAction)

	activities, err := u.Registry.List(ctx, sc.Repo)
	if err != nil {
		return err
	}
	for _, activity := range activities {
		subs, err := sc.Repo.Subscriptions().ListByActivity(ctx, activity.ID)
		if err != nil {
			return goerr.Wrap(err, "failed to list subscriptions", goerr.V(ActivityKey, activity.Name))
		}
		parts, err := sc.Repo.Participants().ListByActivity(ctx, activity.ID)
		if err != nil {
			return goerr.Wrap(err, "failed to list participants", goerr.V(ActivityKey, activity.Name))
		}
		fmt.Fprintf(&b, "activity id=%d name=%s owner=%s subscribers=%d participants=%d\n",
			activity.ID, activity.Name, activity.OwnerID, len(subs), len(parts))
	}

	sc.Reply(strings.TrimRight(b.String(), "\n"))
	return nil
}

func (u *UseCases) setRightsByLogin(ctx context.Context, sc *Scope, login string, promote bool) error {
	login = strings.TrimPrefix(login, "@")

	var (
		target *model.User
		err    error
		key    string
	)
	if promote {
		target, err = u.Account.Promote(ctx, sc.Repo, login)
		key = i18n.MsgPromoted
	} else {
		target, err = u.Account.Demote(ctx, sc.Repo, login)
		key = i18n.MsgDemoted
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			sc.Reply(sc.Printer.Sprintf(i18n.MsgUserNotFound, login))
			return nil
		}
		return err
	}

	sc.Reply(sc.Printer.Sprintf(key, target.Login))
	return nil
}

// reject converts a user-facing failure into a rejection reply and a
// committed session; anything else propagates and rolls the session
// back.
func (u *UseCases) reject(sc *Scope, err error) error {
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) || errors.Is(err, ErrPermission) {
		sc.Reply(UserMessage(sc.Printer, err))
		return nil
	}
	return err
}
