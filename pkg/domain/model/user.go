package model

import (
	"time"

	"github.com/rallykit/rallybot/pkg/domain/types"
)

// User is a messaging-platform user known to the bot. Created on the
// first event from that identity, never deleted while referenced.
type User struct {
	ID            types.UserID
	Login         string
	RightsLevel   types.RightsLevel
	PendingAction types.PendingAction

	// Active is the user's do-not-disturb toggle: only active users are
	// targeted by summon fan-out.
	Active bool

	// DisabledChat is set when a delivery to this user fails and cleared
	// on the next event from them.
	DisabledChat bool

	Locale    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser returns a user record with the defaults applied to every
// newly seen identity.
func NewUser(id types.UserID, login string) *User {
	return &User{
		ID:          id,
		Login:       login,
		RightsLevel: types.RightsDefault,
		Active:      true,
	}
}

// Clone returns a copy to prevent external modification of stored records
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
