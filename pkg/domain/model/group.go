package model

import (
	"time"

	"github.com/rallykit/rallybot/pkg/domain/types"
)

// Group is a non-private chat the bot participates in. Created on the
// first group event.
type Group struct {
	ID        types.ChatID
	Title     string
	Locale    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGroup returns a group record for a newly seen chat
func NewGroup(id types.ChatID, title string) *Group {
	return &Group{
		ID:    id,
		Title: title,
	}
}

// Clone returns a copy to prevent external modification of stored records
func (g *Group) Clone() *Group {
	if g == nil {
		return nil
	}
	c := *g
	return &c
}
