package types

// PendingAction marks a user as being in the middle of a multi-step
// input flow, e.g. waiting for the name of an activity to create.
type PendingAction int

const (
	PendingNone PendingAction = iota
	PendingActivityName
)

// IsValid checks if the pending action is known
func (a PendingAction) IsValid() bool {
	switch a {
	case PendingNone, PendingActivityName:
		return true
	default:
		return false
	}
}
