package complaint

import (
	"fmt"

	"samadhan/backend/internal/models"
)

// Notifier is the fan-out side of the bridge. Implementations must not
// block: publishing to zero subscribers is as successful as publishing to
// many.
type Notifier interface {
	PublishToRole(role string, n models.Notification)
	PublishToUser(userID string, n models.Notification)
}

// EventBridge translates lifecycle events into notification deliveries.
// It runs synchronously after the triggering mutation commits; a missed
// delivery is not an error.
type EventBridge struct {
	Notifier Notifier
}

// NewEventBridge creates the bridge over the given notifier.
func NewEventBridge(n Notifier) *EventBridge {
	return &EventBridge{Notifier: n}
}

// ComplaintCreated tells the admin room about the new complaint.
func (b *EventBridge) ComplaintCreated(ev CreatedEvent) {
	b.Notifier.PublishToRole(models.RoleAdmin, models.Notification{
		Title:       "New Complaint Received",
		Message:     fmt.Sprintf("A new complaint %q has been submitted by %s", ev.Title, ev.SubmitterName),
		Type:        models.NotifyInfo,
		ComplaintID: ev.ComplaintID,
	})
}

// StatusChanged tells both the submitter's room and the admin room.
func (b *EventBridge) StatusChanged(ev StatusChangedEvent) {
	b.Notifier.PublishToUser(ev.SubmitterID, models.Notification{
		Title:       "Complaint Status Updated",
		Message:     fmt.Sprintf("Your complaint %q status has been updated to %s", ev.Title, ev.NewStatus),
		Type:        models.NotifyInfo,
		ComplaintID: ev.ComplaintID,
	})
	b.Notifier.PublishToRole(models.RoleAdmin, models.Notification{
		Title:       "Complaint Status Updated",
		Message:     fmt.Sprintf("Complaint %q status has been updated to %s", ev.Title, ev.NewStatus),
		Type:        models.NotifyInfo,
		ComplaintID: ev.ComplaintID,
	})
}

// FeedbackAdded tells the admin room that the submitter rated the outcome.
func (b *EventBridge) FeedbackAdded(ev FeedbackEvent) {
	b.Notifier.PublishToRole(models.RoleAdmin, models.Notification{
		Title:       "New Feedback Received",
		Message:     fmt.Sprintf("Feedback has been provided for complaint %q", ev.Title),
		Type:        models.NotifyInfo,
		ComplaintID: ev.ComplaintID,
	})
}
