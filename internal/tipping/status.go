package tipping

import "fmt"

type Status string

const (
	StatusTest      Status = "test"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

type Event string

const (
	EventConfirm Event = "confirm"
	EventDecline Event = "decline"
	EventFail    Event = "fail"
	EventRefund  Event = "refund"
)

var transitions = map[Status]map[Event]Status{
	StatusPending: {
		EventConfirm: StatusCompleted,
		EventDecline: StatusFailed,
		EventFail:    StatusFailed,
	},
	StatusCompleted: {
		EventRefund: StatusRefunded,
	},
}

// InitialStatus is the status a tip is created in for the given payment mode.
func InitialStatus(mode PaymentMode) (Status, error) {
	switch mode {
	case PaymentModeTest:
		return StatusTest, nil
	case PaymentModeLive:
		return StatusPending, nil
	default:
		return "", fmt.Errorf("unknown payment mode %q", mode)
	}
}

func Transition(current Status, event Event) (Status, error) {
	next, ok := transitions[current][event]
	if !ok {
		return "", &InvalidTransitionError{From: current, Event: event}
	}

	return next, nil
}

// IsSettled reports whether a tip in this status counts towards totals, boosts and
// leaderboards. Test tips count like completed ones.
func IsSettled(status Status) bool {
	return status == StatusCompleted || status == StatusTest
}

// SettledStatuses lists the statuses for which IsSettled is true.
func SettledStatuses() []Status {
	return []Status{StatusCompleted, StatusTest}
}

func (s Status) Valid() bool {
	switch s {
	case StatusTest, StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}

	return false
}

func ParseEvent(value string) (Event, error) {
	switch e := Event(value); e {
	case EventConfirm, EventDecline, EventFail, EventRefund:
		return e, nil
	}

	return "", &ValidationError{Field: "event", Reason: fmt.Sprintf("Unknown event %q", value)}
}
