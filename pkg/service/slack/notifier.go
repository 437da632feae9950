package slack

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/rallykit/rallybot/pkg/domain/interfaces"
	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

// DefaultCacheTTL is the default TTL for the DM channel cache
const DefaultCacheTTL = 15 * time.Minute

// ActionBlockID marks the quick-reply action block in outgoing
// messages; the interaction handler filters on it.
const ActionBlockID = "summon_response"

// cacheEntry holds a cached DM channel ID with expiration
type cacheEntry struct {
	channelID string
	expiresAt time.Time
}

// Notifier delivers coordination messages over Slack DMs
type Notifier struct {
	api      *slack.Client
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[types.UserID]cacheEntry
}

var _ interfaces.Notifier = &Notifier{}

// Option is a functional option for Notifier configuration
type Option func(*Notifier)

// WithCacheTTL sets the TTL for the DM channel cache
func WithCacheTTL(ttl time.Duration) Option {
	return func(n *Notifier) {
		n.cacheTTL = ttl
	}
}

// New creates a new Slack notifier with the provided bot token
func New(token string, opts ...Option) (*Notifier, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	n := &Notifier{
		api:      slack.New(token),
		cacheTTL: DefaultCacheTTL,
		cache:    make(map[types.UserID]cacheEntry),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n, nil
}

// Notify opens (or reuses) the recipient's DM channel and posts the
// notification, rendering quick replies as interactive buttons.
func (n *Notifier) Notify(ctx context.Context, note model.OutboundNotification) error {
	channelID, err := n.dmChannel(ctx, note.Recipient)
	if err != nil {
		return err
	}

	opts := []slack.MsgOption{
		slack.MsgOptionText(note.Text, false),
	}
	if len(note.QuickReplies) > 0 {
		opts = append(opts, slack.MsgOptionBlocks(buildBlocks(note)...))
	}

	if _, _, err := n.api.PostMessageContext(ctx, channelID, opts...); err != nil {
		return goerr.Wrap(err, "failed to post message",
			goerr.V("recipient", note.Recipient),
			goerr.V("channel", channelID))
	}

	return nil
}

func buildBlocks(note model.OutboundNotification) []slack.Block {
	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, note.Text, false, false),
			nil, nil,
		),
	}

	elements := make([]slack.BlockElement, 0, len(note.QuickReplies))
	for _, reply := range note.QuickReplies {
		elements = append(elements, slack.NewButtonBlockElement(
			reply.Value,
			reply.Value,
			slack.NewTextBlockObject(slack.PlainTextType, reply.Label, false, false),
		))
	}
	blocks = append(blocks, slack.NewActionBlock(ActionBlockID, elements...))

	return blocks
}

// dmChannel resolves the recipient's DM channel ID with caching
func (n *Notifier) dmChannel(ctx context.Context, userID types.UserID) (string, error) {
	now := time.Now()

	n.mu.RLock()
	entry, ok := n.cache[userID]
	n.mu.RUnlock()
	if ok && entry.expiresAt.After(now) {
		return entry.channelID, nil
	}

	channel, _, _, err := n.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{string(userID)},
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to open DM channel", goerr.V("user_id", userID))
	}

	n.mu.Lock()
	n.cache[userID] = cacheEntry{
		channelID: channel.ID,
		expiresAt: now.Add(n.cacheTTL),
	}
	n.mu.Unlock()

	return channel.ID, nil
}
