package complaint

// Lifecycle events emitted after a committed mutation. The sink runs
// synchronously but must never fail the triggering request; delivery is
// fire-and-forget.

// CreatedEvent is emitted when a new complaint is filed.
type CreatedEvent struct {
	ComplaintID   string
	Title         string
	SubmitterID   string
	SubmitterName string
}

// StatusChangedEvent is emitted when an update moves the status to a
// different value.
type StatusChangedEvent struct {
	ComplaintID string
	Title       string
	SubmitterID string
	NewStatus   string
}

// FeedbackEvent is emitted when the submitter adds or replaces feedback.
type FeedbackEvent struct {
	ComplaintID string
	Title       string
}

// EventSink receives lifecycle events from the service.
type EventSink interface {
	ComplaintCreated(ev CreatedEvent)
	StatusChanged(ev StatusChangedEvent)
	FeedbackAdded(ev FeedbackEvent)
}

// NopSink discards all events. Used by the admin CLI and in tests that do
// not care about notifications.
type NopSink struct{}

func (NopSink) ComplaintCreated(CreatedEvent)    {}
func (NopSink) StatusChanged(StatusChangedEvent) {}
func (NopSink) FeedbackAdded(FeedbackEvent)      {}
