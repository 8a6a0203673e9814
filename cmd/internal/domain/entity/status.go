package entity

// Status is the appointment lifecycle state. The store keeps it as a string
// column, but the member list is closed so filter checks stay exhaustive.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
	StatusCompleted Status = "completed"
	StatusPostponed Status = "postponed"
)

var Statuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusCanceled,
	StatusCompleted,
	StatusPostponed,
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCanceled, StatusCompleted, StatusPostponed:
		return true
	}
	return false
}

// Color returns the display color used by appointment cards.
func (s Status) Color() string {
	switch s {
	case StatusScheduled:
		return "#3b82f6"
	case StatusConfirmed:
		return "#10b981"
	case StatusCanceled:
		return "#ef4444"
	case StatusCompleted:
		return "#8b5cf6"
	case StatusPostponed:
		return "#f59e0b"
	}
	return "#6b7280"
}

// SessionType categorizes an appointment.
type SessionType string

const (
	SessionMeeting      SessionType = "meeting"
	SessionConsultation SessionType = "consultation"
	SessionEvent        SessionType = "event"
	SessionPersonal     SessionType = "personal"
	SessionOther        SessionType = "other"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionMeeting, SessionConsultation, SessionEvent, SessionPersonal, SessionOther:
		return true
	}
	return false
}
