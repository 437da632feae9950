package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
	"github.com/rallykit/rallybot/pkg/utils/async"
	"github.com/rallykit/rallybot/pkg/utils/errutil"
)

// handleCommand handles Slack slash command requests. Each bot command
// is registered as its own slash command (/summon, /activity_add, ...)
// whose text is the argument.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slash command"), http.StatusBadRequest)
		return
	}

	command := types.Command(strings.TrimPrefix(cmd.Command, "/"))
	if !command.IsValid() {
		errutil.HandleHTTP(ctx, w, goerr.New("unknown command", goerr.V("command", cmd.Command)), http.StatusBadRequest)
		return
	}

	event := commandEvent(cmd)

	notes, err := s.uc.Handle(ctx, event, command, cmd.Text)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to handle command",
			goerr.V("command", command)), http.StatusInternalServerError)
		return
	}

	// Replies and fan-out go over DMs; the slash response stays empty
	w.WriteHeader(http.StatusOK)

	async.Dispatch(ctx, func(ctx context.Context) error {
		s.uc.Deliver(ctx, notes)
		return nil
	})
}

func commandEvent(cmd slack.SlashCommand) model.InboundEvent {
	event := model.InboundEvent{
		ActorID:    types.UserID(cmd.UserID),
		ActorLogin: cmd.UserName,
	}

	if cmd.ChannelName == "directmessage" {
		event.ChatKind = types.ChatKindPrivate
	} else {
		event.ChatKind = types.ChatKindGroup
		event.ChatID = types.ChatID(cmd.ChannelID)
		event.ChatTitle = cmd.ChannelName
	}

	return event
}
