package domain

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationDanger  NotificationKind = "danger"
)

// Notification is a one-shot notice for the next rendered response.
// Returned as an explicit value for the calling layer to display, never
// stored as ambient session state.
type Notification struct {
	ForActor string
	Kind     NotificationKind
	Message  string
}
