package types

// ChatKind distinguishes direct messages from group chats
type ChatKind string

const (
	ChatKindPrivate ChatKind = "private"
	ChatKindGroup   ChatKind = "group"
)

// IsValid checks if the chat kind is valid
func (k ChatKind) IsValid() bool {
	switch k {
	case ChatKindPrivate, ChatKindGroup:
		return true
	default:
		return false
	}
}

// String returns the string representation of the chat kind
func (k ChatKind) String() string {
	return string(k)
}
