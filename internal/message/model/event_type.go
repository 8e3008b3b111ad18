package models

// EventType is the closed set of queue event kinds. The compaction rules
// in the repository switch over this enum; adding a value means deciding
// its compaction behavior there.
type EventType string

const (
	EventMessage     EventType = "message"
	EventEdit        EventType = "edit"
	EventDelete      EventType = "delete"
	EventReaction    EventType = "reaction"
	EventReceipt     EventType = "receipt"
	EventKeyRotation EventType = "key_rotation"
)

func (e EventType) Valid() bool {
	switch e {
	case EventMessage, EventEdit, EventDelete, EventReaction, EventReceipt, EventKeyRotation:
		return true
	}
	return false
}
