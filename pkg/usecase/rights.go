package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
	"github.com/rallykit/rallybot/pkg/service/i18n"
)

// HasRight reports whether user may run cmd. The superuser login
// bypasses the tier check entirely.
func (u *UseCases) HasRight(user *model.User, cmd types.Command) bool {
	if u.superuserLogin != "" && user.Login == u.superuserLogin {
		return true
	}
	return user.RightsLevel >= cmd.MinRights()
}

// Authorize is HasRight as an error
func (u *UseCases) Authorize(user *model.User, cmd types.Command) error {
	if !u.HasRight(user, cmd) {
		return goerr.Wrap(ErrPermission, "command not permitted",
			goerr.V(CommandKey, string(cmd)),
			goerr.V(LoginKey, user.Login),
		)
	}
	return nil
}

// Guard wraps a session handler with a rights check. A rejected caller
// gets a localized refusal while the session still commits, so the
// caller's account record is kept up to date.
func (u *UseCases) Guard(cmd types.Command, handler func(ctx context.Context, sc *Scope) error) func(ctx context.Context, sc *Scope) error {
	return func(ctx context.Context, sc *Scope) error {
		if !u.HasRight(sc.User, cmd) {
			sc.Reply(sc.Printer.Sprintf(i18n.MsgNotEnoughRights))
			return nil
		}
		return handler(ctx, sc)
	}
}
