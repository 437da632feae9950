package memory

import (
	"github.com/rallykit/rallybot/pkg/domain/model"
	"github.com/rallykit/rallybot/pkg/domain/types"
)

type pairKey struct {
	userID     types.UserID
	activityID types.ActivityID
}

// state holds all stored records. Every accessor copies records in and
// out, so stored values are never aliased by callers.
type state struct {
	users          map[types.UserID]*model.User
	groups         map[types.ChatID]*model.Group
	activities     map[types.ActivityID]*model.Activity
	subscriptions  map[pairKey]*model.Subscription
	participants   map[pairKey]*model.Participant
	nextActivityID types.ActivityID
}

func newState() *state {
	return &state{
		users:          make(map[types.UserID]*model.User),
		groups:         make(map[types.ChatID]*model.Group),
		activities:     make(map[types.ActivityID]*model.Activity),
		subscriptions:  make(map[pairKey]*model.Subscription),
		participants:   make(map[pairKey]*model.Participant),
		nextActivityID: 1,
	}
}

func (s *state) clone() *state {
	c := &state{
		users:          make(map[types.UserID]*model.User, len(s.users)),
		groups:         make(map[types.ChatID]*model.Group, len(s.groups)),
		activities:     make(map[types.ActivityID]*model.Activity, len(s.activities)),
		subscriptions:  make(map[pairKey]*model.Subscription, len(s.subscriptions)),
		participants:   make(map[pairKey]*model.Participant, len(s.participants)),
		nextActivityID: s.nextActivityID,
	}
	for id, u := range s.users {
		c.users[id] = u.Clone()
	}
	for id, g := range s.groups {
		c.groups[id] = g.Clone()
	}
	for id, a := range s.activities {
		c.activities[id] = a.Clone()
	}
	for k, sub := range s.subscriptions {
		cp := *sub
		c.subscriptions[k] = &cp
	}
	for k, p := range s.participants {
		c.participants[k] = p.Clone()
	}
	return c
}
