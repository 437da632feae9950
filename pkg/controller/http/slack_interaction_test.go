package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"

	httpctrl "github.com/rallykit/rallybot/pkg/controller/http"
	"github.com/rallykit/rallybot/pkg/domain/types"
	"github.com/rallykit/rallybot/pkg/repository/memory"
	"github.com/rallykit/rallybot/pkg/usecase"
)

func TestParseActionValue(t *testing.T) {
	t.Run("accepts respond verbs", func(t *testing.T) {
		cmd, arg, err := httpctrl.ParseActionValue("join run-club")
		gt.NoError(t, err).Required()
		gt.Value(t, cmd).Equal(types.CommandJoin)
		gt.Value(t, arg).Equal("run-club")

		cmd, arg, err = httpctrl.ParseActionValue("decline board games")
		gt.NoError(t, err).Required()
		gt.Value(t, cmd).Equal(types.CommandDecline)
		gt.Value(t, arg).Equal("board games")
	})

	t.Run("rejects other verbs and malformed values", func(t *testing.T) {
		_, _, err := httpctrl.ParseActionValue("summon run-club")
		gt.Value(t, err).NotNil()

		_, _, err = httpctrl.ParseActionValue("join")
		gt.Value(t, err).NotNil()
	})
}

func TestCommandEvent(t *testing.T) {
	t.Run("direct message maps to a private event", func(t *testing.T) {
		event := httpctrl.CommandEvent(slack.SlashCommand{
			UserID:      "U001",
			UserName:    "member",
			ChannelID:   "D001",
			ChannelName: "directmessage",
		})
		gt.Value(t, event.ChatKind).Equal(types.ChatKindPrivate)
		gt.Value(t, event.ChatID).Equal(types.ChatID(""))
	})

	t.Run("channel maps to a group event", func(t *testing.T) {
		event := httpctrl.CommandEvent(slack.SlashCommand{
			UserID:      "U001",
			UserName:    "member",
			ChannelID:   "C001",
			ChannelName: "general",
		})
		gt.Value(t, event.ChatKind).Equal(types.ChatKindGroup)
		gt.Value(t, event.ChatID).Equal(types.ChatID("C001"))
		gt.Value(t, event.ChatTitle).Equal("general")
	})
}

func TestInteractionWebhook(t *testing.T) {
	t.Run("non block_actions payloads are acknowledged", func(t *testing.T) {
		uc := usecase.New(memory.New())
		server := httpctrl.New(uc)

		form := url.Values{
			"payload": {`{"type":"view_submission"}`},
		}
		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/interaction", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("missing payload is a bad request", func(t *testing.T) {
		uc := usecase.New(memory.New())
		server := httpctrl.New(uc)

		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/interaction", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}
