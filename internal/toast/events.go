package toast

// EventType identifies a lifecycle change.
type EventType string

const (
	EventAdded   EventType = "added"
	EventRemoved EventType = "removed"
)

// RemoveReason tells why a notification left the active list.
type RemoveReason string

const (
	ReasonExpired   RemoveReason = "expired"
	ReasonClosed    RemoveReason = "closed"
	ReasonDismissed RemoveReason = "previously-dismissed"
)

// Event describes a change to the active list.
type Event struct {
	Type         EventType
	Notification Notification
	Reason       RemoveReason
}

// Observer is notified after every change to the active list. It runs
// outside the manager lock and may call back into the manager.
type Observer func(Event)
