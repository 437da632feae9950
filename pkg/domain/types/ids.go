package types

// UserID is the messaging-platform identity of a user (e.g. Slack user ID)
type UserID string

func (id UserID) String() string {
	return string(id)
}

// IsValid checks if the user ID is non-empty
func (id UserID) IsValid() bool {
	return id != ""
}

// ChatID is the messaging-platform identity of a chat or channel
type ChatID string

func (id ChatID) String() string {
	return string(id)
}

// IsValid checks if the chat ID is non-empty
func (id ChatID) IsValid() bool {
	return id != ""
}

// ActivityID is the surrogate key of an activity record
type ActivityID int64
