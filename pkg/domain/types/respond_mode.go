package types

import "github.com/m-mizutani/goerr/v2"

// RespondMode is how a user answers a summon
type RespondMode string

const (
	RespondJoin    RespondMode = "join"
	RespondLater   RespondMode = "later"
	RespondDecline RespondMode = "decline"
)

// AllRespondModes returns all valid respond modes
func AllRespondModes() []RespondMode {
	return []RespondMode{
		RespondJoin,
		RespondLater,
		RespondDecline,
	}
}

// IsValid checks if the respond mode is valid
func (m RespondMode) IsValid() bool {
	switch m {
	case RespondJoin, RespondLater, RespondDecline:
		return true
	default:
		return false
	}
}

// Accepted reports whether the mode counts as joining. Both join and
// later count as accepted; only decline does not.
func (m RespondMode) Accepted() bool {
	return m != RespondDecline
}

// String returns the string representation of the respond mode
func (m RespondMode) String() string {
	return string(m)
}

// ParseRespondMode parses a string into a RespondMode
func ParseRespondMode(s string) (RespondMode, error) {
	mode := RespondMode(s)
	if !mode.IsValid() {
		return "", goerr.New("invalid respond mode", goerr.V("mode", s))
	}
	return mode, nil
}
