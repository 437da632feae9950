package model

import (
	"time"

	"github.com/rallykit/rallybot/pkg/domain/types"
)

// Participant is a user's current response state for an activity.
// Exactly one row may exist per (user, activity) pair; rows older than
// the cooldown window are purged before each summon round.
type Participant struct {
	UserID     types.UserID
	ActivityID types.ActivityID
	ReportedAt time.Time

	// Accepted is true for join and join-later, false for decline
	Accepted bool
}

// Stale reports whether the row falls outside the cooldown window ending
// at cutoff and should be purged.
func (p *Participant) Stale(cutoff time.Time) bool {
	return p.ReportedAt.Before(cutoff)
}

// Clone returns a copy to prevent external modification of stored records
func (p *Participant) Clone() *Participant {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
