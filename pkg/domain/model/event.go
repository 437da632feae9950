package model

import "github.com/rallykit/rallybot/pkg/domain/types"

// MemberRef identifies a user mentioned by a membership change
type MemberRef struct {
	ID    types.UserID
	Login string
}

// InboundEvent is the transport-agnostic form of one chat event. The
// transport adapter builds it; the session scope consumes it.
type InboundEvent struct {
	ActorID     types.UserID
	ActorLogin  string
	ActorLocale string

	// ChatID and ChatTitle are empty for private chats. ChatLocale is
	// set only by transports that report a per-chat locale; it takes
	// precedence over the actor's own locale for group replies.
	ChatID     types.ChatID
	ChatTitle  string
	ChatLocale string
	ChatKind   types.ChatKind

	// Membership changes carried by the event, if any
	Joined []MemberRef
	Left   *MemberRef
}

// QuickReply is one inline response option attached to a notification
type QuickReply struct {
	Label string
	Value string
}

// OutboundNotification is a message the coordination engine asks the
// transport to deliver to a single recipient.
type OutboundNotification struct {
	Recipient    types.UserID
	Text         string
	QuickReplies []QuickReply
}
