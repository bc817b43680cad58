package constant

// ReminderKind classifies an emitted interview reminder.
type ReminderKind string

const (
	// ReminderNow fires once when an interview has just started. It preempts
	// whatever reminder is currently displayed.
	ReminderNow ReminderKind = "now"
	// ReminderUpcoming fires once per bucket while the interview is within the horizon.
	ReminderUpcoming ReminderKind = "upcoming"
)

func (k ReminderKind) String() string {
	return string(k)
}
