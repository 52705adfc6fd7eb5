package attendance

import "time"

// MonitorTopic is the event stream watched by the gatehouse monitor.
const MonitorTopic = "attendance-monitor"

// Event names published on MonitorTopic.
const (
	EventEntry   = "attendance.entry"
	EventExit    = "attendance.exit"
	EventComment = "attendance.comment"
	EventReset   = "attendance.reset"
)

func (d Direction) EventName() string {
	if d == DirectionExit {
		return EventExit
	}
	return EventEntry
}

// NextDirection is the event a gatehouse scan records: exit for an employee
// at work, entry otherwise.
func NextDirection(raw string) Direction {
	if status, _ := NormalizeStatus(raw); status == StatusWorking {
		return DirectionExit
	}
	return DirectionEntry
}

// ApplyEvent returns the state after an entry or exit at `at`. An entry while
// working and an exit while not working are rejected. The first check-in of
// the day is never moved by a later entry.
func ApplyEvent(s State, dir Direction, at time.Time) (State, error) {
	switch dir {
	case DirectionEntry:
		if s.Status == StatusWorking {
			return s, ErrAlreadyCheckedIn
		}
	case DirectionExit:
		if s.Status != StatusWorking {
			return s, ErrNotCheckedIn
		}
	}
	return ApplyCorrection(s, dir, at), nil
}

// ApplyCorrection records dir at `at` without checking the current status.
// An entry earlier than the recorded first check-in replaces it.
func ApplyCorrection(s State, dir Direction, at time.Time) State {
	at = at.UTC()
	next := s

	switch dir {
	case DirectionEntry:
		next.Status = StatusWorking
		next.LastCheckInTime = &at
		if missing(s.FirstCheckInTime) || at.Before(*s.FirstCheckInTime) {
			next.FirstCheckInTime = &at
		}
	case DirectionExit:
		next.Status = StatusOutside
		next.LastCheckOutTime = &at
	}

	return next
}
