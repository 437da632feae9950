package types

// RightsLevel is an ordered privilege tier. A user satisfies a command
// when their level is greater than or equal to the command's minimum.
type RightsLevel int

const (
	// RightsDefault is assigned to every newly seen user
	RightsDefault RightsLevel = 0
	// RightsTrusted unlocks summoning and activity management
	RightsTrusted RightsLevel = 1
	// RightsAdmin is reserved for user administration; in practice only
	// the superuser login reaches these commands via its bypass
	RightsAdmin RightsLevel = 2
)

// IsValid checks if the rights level is within the known tiers
func (l RightsLevel) IsValid() bool {
	return l >= RightsDefault && l <= RightsAdmin
}

// Command identifies a bot operation for rights checking
type Command string

const (
	CommandStart        Command = "start"
	CommandStatus       Command = "status"
	CommandReady        Command = "ready"
	CommandDoNotDisturb Command = "do_not_disturb"
	CommandCancel       Command = "cancel"

	CommandActivityList Command = "activity_list"
	CommandActivityAdd  Command = "activity_add"
	CommandActivityRem  Command = "activity_rem"
	CommandSubscribe    Command = "subscribe"
	CommandUnsubscribe  Command = "unsubscribe"

	CommandSummon  Command = "summon"
	CommandJoin    Command = "join"
	CommandLater   Command = "later"
	CommandDecline Command = "decline"

	CommandPromote Command = "user_promote"
	CommandDemote  Command = "user_demote"
	CommandRawData Command = "raw_data"
)

var commandRights = map[Command]RightsLevel{
	CommandSummon:      RightsTrusted,
	CommandActivityAdd: RightsTrusted,
	CommandActivityRem: RightsTrusted,
	CommandPromote:     RightsAdmin,
	CommandDemote:      RightsAdmin,
	CommandRawData:     RightsAdmin,
}

// MinRights returns the minimum rights level required to run the command.
// Commands not listed require no special rights.
func (c Command) MinRights() RightsLevel {
	return commandRights[c]
}

// IsValid checks if the command is known
func (c Command) IsValid() bool {
	switch c {
	case CommandStart, CommandStatus, CommandReady, CommandDoNotDisturb,
		CommandCancel, CommandActivityList, CommandActivityAdd,
		CommandActivityRem, CommandSubscribe, CommandUnsubscribe,
		CommandSummon, CommandJoin, CommandLater, CommandDecline,
		CommandPromote, CommandDemote, CommandRawData:
		return true
	default:
		return false
	}
}

// String returns the string representation of the command
func (c Command) String() string {
	return string(c)
}
