package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
	"github.com/rallykit/rallybot/pkg/utils/async"
	"github.com/rallykit/rallybot/pkg/utils/errutil"
	"github.com/rallykit/rallybot/pkg/utils/logging"
)

// handleInteraction handles Slack interactive component payloads:
// the Join/Coming/Decline buttons attached to summon invitations.
func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Slack sends interaction payloads as application/x-www-form-urlencoded
	// with a "payload" field containing JSON
	payload := r.FormValue("payload")
	if payload == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("missing payload field in interaction request"), http.StatusBadRequest)
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction payload"), http.StatusBadRequest)
		return
	}

	if callback.Type != slack.InteractionTypeBlockActions {
		w.WriteHeader(http.StatusOK)
		return
	}

	event := model.InboundEvent{
		ActorID:    types.UserID(callback.User.ID),
		ActorLogin: callback.User.Name,
		ChatKind:   types.ChatKindPrivate,
	}

	// Return 200 first; Slack retries slow acknowledgements
	w.WriteHeader(http.StatusOK)

	for _, action := range callback.ActionCallback.BlockActions {
		cmd, arg, err := parseActionValue(action.Value)
		if err != nil {
			logging.From(ctx).Warn("failed to parse slack action value",
				"error", err,
				"value", action.Value,
			)
			continue
		}

		async.Dispatch(ctx, func(ctx context.Context) error {
			notes, err := s.uc.Handle(ctx, event, cmd, arg)
			if err != nil {
				return goerr.Wrap(err, "failed to handle interaction",
					goerr.V("command", cmd),
					goerr.V("user_id", event.ActorID))
			}
			s.uc.Deliver(ctx, notes)
			return nil
		})
	}
}

// parseActionValue splits a quick-reply payload ("join run-club") into
// the respond command and the activity name.
func parseActionValue(value string) (types.Command, string, error) {
	verb, arg, ok := strings.Cut(value, " ")
	if !ok {
		return "", "", goerr.New("malformed action value", goerr.V("value", value))
	}

	cmd := types.Command(verb)
	switch cmd {
	case types.CommandJoin, types.CommandLater, types.CommandDecline:
		return cmd, arg, nil
	default:
		return "", "", goerr.New("unexpected action verb", goerr.V("value", value))
	}
}
