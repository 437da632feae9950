package model

import (
	"time"

	"github.com/rallykit/rallybot/pkg/domain/types"
)

// Activity is a named coordination topic users can be summoned to.
// The name is globally unique; the owner may remove it.
type Activity struct {
	ID        types.ActivityID
	Name      string
	OwnerID   types.UserID
	CreatedAt time.Time
}

// Clone returns a copy to prevent external modification of stored records
func (a *Activity) Clone() *Activity {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
