package model

import (
	"time"

	"github.com/rallykit/rallybot/pkg/domain/types"
)

// Subscription marks a user as eligible for summon notifications for an
// activity. Unique per (user, activity) pair.
type Subscription struct {
	UserID     types.UserID
	ActivityID types.ActivityID
	CreatedAt  time.Time
}
