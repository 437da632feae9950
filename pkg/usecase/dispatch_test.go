package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/rallykit/rallybot/pkg/domain/types"
)

func TestHandleRights(t *testing.T) {
	ctx := context.Background()

	t.Run("default tier cannot summon", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)

		seedUser(t, repo, "U001", "member", types.RightsDefault)
		seedActivity(t, repo, "run-club", "U001", "U001")

		notes, err := uc.Handle(ctx, privateEvent("U001", "member"), types.CommandSummon, "run-club")
		gt.NoError(t, err).Required()
		gt.Array(t, notes).Length(1)
		gt.Value(t, notes[0].Recipient).Equal(types.UserID("U001"))
		gt.Value(t, notes[0].Text).Equal("Not enough rights")
	})

	t.Run("trusted tier can manage activities", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)

		seedUser(t, repo, "U001", "member", types.RightsTrusted)

		notes, err := uc.Handle(ctx, privateEvent("U001", "member"), types.CommandActivityAdd, "run-club")
		gt.NoError(t, err).Required()
		gt.Array(t, notes).Length(1)
		gt.Value(t, notes[0].Text).Equal("Activity *run-club* created")
	})

	t.Run("superuser login bypasses every tier", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)

		seedUser(t, repo, "U999", "root", types.RightsDefault)
		seedUser(t, repo, "U001", "member", types.RightsDefault)

		notes, err := uc.Handle(ctx, privateEvent("U999", "root"), types.CommandPromote, "member")
		gt.NoError(t, err).Required()
		gt.Value(t, notes[0].Text).Equal("User *member* promoted")

		member, err := repo.Users().Get(ctx, "U001")
		gt.NoError(t, err).Required()
		gt.Value(t, member.RightsLevel).Equal(types.RightsTrusted)
	})

	t.Run("a rejected command still registers the caller", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)

		_, err := uc.Handle(ctx, privateEvent("U001", "newcomer"), types.CommandSummon, "run-club")
		gt.NoError(t, err).Required()

		user, err := repo.Users().Get(ctx, "U001")
		gt.NoError(t, err).Required()
		gt.Value(t, user.Login).Equal("newcomer")
	})
}

func TestHandlePendingActivityName(t *testing.T) {
	ctx := context.Background()

	t.Run("activity_add without argument asks for the name", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)

		seedUser(t, repo, "U001", "member", types.RightsTrusted)

		notes, err := uc.Handle(ctx, privateEvent("U001", "member"), types.CommandActivityAdd, "")
		gt.NoError(t, err).Required()
		gt.Value(t, notes[0].Text).Equal("Send me the activity name")

		user, err := repo.Users().Get(ctx, "U001")
		gt.NoError(t, err).Required()
		gt.Value(t, user.PendingAction).Equal(types.PendingActivityName)

		// the next bare message completes the command
		notes, err = uc.HandleText(ctx, privateEvent("U001", "member"), "run-club")
		gt.NoError(t, err).Required()
		gt.Value(t, notes[0].Text).Equal("Activity *run-club* created")

		user, err = repo.Users().Get(ctx, "U001")
		gt.NoError(t, err).Required()
		gt.Value(t, user.PendingAction).Equal(types.PendingNone)

		_, err = repo.Activities().GetByName(ctx, "run-club")
		gt.NoError(t, err).Required()
	})

	t.Run("cancel clears the pending command", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)

		seedUser(t, repo, "U001", "member", types.RightsTrusted)

		_, err := uc.Handle(ctx, privateEvent("U001", "member"), types.CommandActivityAdd, "")
		gt.NoError(t, err).Required()

		notes, err := uc.Handle(ctx, privateEvent("U001", "member"), types.CommandCancel, "")
		gt.NoError(t, err).Required()
		gt.Value(t, notes[0].Text).Equal("Cancelled")

		user, err := repo.Users().Get(ctx, "U001")
		gt.NoError(t, err).Required()
		gt.Value(t, user.PendingAction).Equal(types.PendingNone)
	})

	t.Run("unsolicited text is ignored", func(t *testing.T) {
		uc, _, _, _ := newTestUC(t)

		notes, err := uc.HandleText(ctx, privateEvent("U001", "member"), "hello there")
		gt.NoError(t, err).Required()
		gt.Array(t, notes).Length(0)
	})
}

func TestHandleAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("do_not_disturb and ready toggle the active flag", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)

		notes, err := uc.Handle(ctx, privateEvent("U001", "member"), types.CommandDoNotDisturb, "")
		gt.NoError(t, err).Required()
		gt.Value(t, notes[0].Text).Equal("You will not be summoned until you are ready again")

		user, err := repo.Users().Get(ctx, "U001")
		gt.NoError(t, err).Required()
		gt.Bool(t, user.Active).False()

		notes, err = uc.Handle(ctx, privateEvent("U001", "member"), types.CommandReady, "")
		gt.NoError(t, err).Required()
		gt.Value(t, notes[0].Text).Equal("You are ready to be summoned")

		user, err = repo.Users().Get(ctx, "U001")
		gt.NoError(t, err).Required()
		gt.Bool(t, user.Active).True()
	})

	t.Run("status lists subscriptions", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)

		seedUser(t, repo, "U001", "member", types.RightsDefault)
		seedActivity(t, repo, "run-club", "U001", "U001")
		seedActivity(t, repo, "board-games", "U001", "U001")

		notes, err := uc.Handle(ctx, privateEvent("U001", "member"), types.CommandStatus, "")
		gt.NoError(t, err).Required()
		gt.Array(t, notes).Length(2)
		gt.Value(t, notes[0].Text).Equal("Login: *member*, ready: true")
		gt.Value(t, notes[1].Text).Equal("Subscribed to: run-club, board-games")
	})

	t.Run("activity_list names every activity", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)

		seedUser(t, repo, "U001", "member", types.RightsDefault)
		seedActivity(t, repo, "zorbing", "U001")
		seedActivity(t, repo, "archery", "U001")

		notes, err := uc.Handle(ctx, privateEvent("U001", "member"), types.CommandActivityList, "")
		gt.NoError(t, err).Required()
		gt.Value(t, notes[0].Text).Equal("Known activities: archery, zorbing")
	})

	t.Run("raw_data dumps stored records for the superuser", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)

		seedUser(t, repo, "U999", "root", types.RightsDefault)
		seedUser(t, repo, "U001", "member", types.RightsDefault)
		seedActivity(t, repo, "run-club", "U001", "U001")

		notes, err := uc.Handle(ctx, privateEvent("U999", "root"), types.CommandRawData, "")
		gt.NoError(t, err).Required()
		gt.Array(t, notes).Length(1)
		gt.Value(t, notes[0].Text).Equal(
			"user id=U999 login=root rights=0 active=true disabled_chat=false pending=0\n" +
				"activity id=1 name=run-club owner=U001 subscribers=1 participants=0")
	})

	t.Run("raw_data is refused below the admin tier", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)

		seedUser(t, repo, "U001", "member", types.RightsTrusted)

		notes, err := uc.Handle(ctx, privateEvent("U001", "member"), types.CommandRawData, "")
		gt.NoError(t, err).Required()
		gt.Array(t, notes).Length(1)
		gt.Value(t, notes[0].Text).Equal("Not enough rights")
	})

	t.Run("demote of unknown login is reported", func(t *testing.T) {
		uc, repo, _, _ := newTestUC(t)

		seedUser(t, repo, "U999", "root", types.RightsDefault)

		notes, err := uc.Handle(ctx, privateEvent("U999", "root"), types.CommandDemote, "@ghost")
		gt.NoError(t, err).Required()
		gt.Value(t, notes[0].Text).Equal("User *ghost* not found.")
	})
}
