package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack/slackevents"

	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
	"github.com/rallykit/rallybot/pkg/utils/async"
	"github.com/rallykit/rallybot/pkg/utils/errutil"
	"github.com/rallykit/rallybot/pkg/utils/logging"
	"github.com/rallykit/rallybot/pkg/utils/safe"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const slackBodyKey contextKey = "slack_body"

// verifySlackSignature verifies the Slack request signature.
// Timestamps older than 5 minutes are rejected to prevent replay.
func verifySlackSignature(signingSecret, timestamp, signature string, body []byte) error {
	if timestamp == "" {
		return goerr.New("missing timestamp")
	}

	if signature == "" {
		return goerr.New("missing signature")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid timestamp")
	}

	now := time.Now().Unix()
	if now-ts > 60*5 {
		return goerr.New("timestamp too old", goerr.V("timestamp", timestamp), goerr.V("now", now))
	}

	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	if _, err := mac.Write([]byte(baseString)); err != nil {
		return goerr.Wrap(err, "failed to compute HMAC")
	}
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		return goerr.New("signature mismatch")
	}

	return nil
}

// SlackSignatureMiddleware creates a middleware that verifies Slack
// request signatures and restores the consumed body for downstream
// handlers.
func SlackSignatureMiddleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}
			defer safe.Close(ctx, r.Body)

			timestamp := r.Header.Get("X-Slack-Request-Timestamp")
			signature := r.Header.Get("X-Slack-Signature")

			if err := verifySlackSignature(signingSecret, timestamp, signature, body); err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "slack signature verification failed"), http.StatusUnauthorized)
				return
			}

			ctx = context.WithValue(ctx, slackBodyKey, body)
			r.Body = io.NopCloser(bytes.NewBuffer(body))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// handleEvent handles Slack Events API webhook requests: the URL
// verification handshake, direct messages, and channel membership
// changes.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	apiEvent, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slack event"), http.StatusBadRequest)
		return
	}

	switch apiEvent.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to unmarshal challenge"), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		safe.Write(ctx, w, []byte(challenge.Challenge))
		return

	case slackevents.CallbackEvent:
		// Return 200 immediately to satisfy Slack's 3-second timeout
		w.WriteHeader(http.StatusOK)

		async.Dispatch(ctx, func(ctx context.Context) error {
			return s.processCallback(ctx, apiEvent.InnerEvent)
		})

	default:
		logging.From(ctx).Warn("unknown slack event type", "type", apiEvent.Type)
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) processCallback(ctx context.Context, inner slackevents.EventsAPIInnerEvent) error {
	switch ev := inner.Data.(type) {
	case *slackevents.MessageEvent:
		// Only direct messages from humans; pending multi-step commands
		// complete through bare DM text.
		if ev.ChannelType != "im" || ev.BotID != "" || ev.SubType != "" {
			return nil
		}
		event := model.InboundEvent{
			ActorID:  types.UserID(ev.User),
			ChatKind: types.ChatKindPrivate,
		}
		notes, err := s.uc.HandleText(ctx, event, ev.Text)
		if err != nil {
			return goerr.Wrap(err, "failed to handle direct message")
		}
		s.uc.Deliver(ctx, notes)
		return nil

	case *slackevents.MemberJoinedChannelEvent:
		event := model.InboundEvent{
			ActorID:  types.UserID(ev.User),
			ChatID:   types.ChatID(ev.Channel),
			ChatKind: types.ChatKindGroup,
			Joined:   []model.MemberRef{{ID: types.UserID(ev.User)}},
		}
		return s.uc.HandleMembership(ctx, event)

	case *slackevents.MemberLeftChannelEvent:
		event := model.InboundEvent{
			ActorID:  types.UserID(ev.User),
			ChatID:   types.ChatID(ev.Channel),
			ChatKind: types.ChatKindGroup,
			Left:     &model.MemberRef{ID: types.UserID(ev.User)},
		}
		return s.uc.HandleMembership(ctx, event)

	default:
		logging.From(ctx).Debug("ignoring slack callback event", "type", inner.Type)
		return nil
	}
}
