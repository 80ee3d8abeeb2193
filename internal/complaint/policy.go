// Package complaint implements the complaint lifecycle: the state machine
// over statuses, the authorization policy, vote bookkeeping and the events
// emitted towards the notification fan-out.
package complaint

import "samadhan/backend/internal/models"

// Actor is the authenticated principal performing an operation.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// The policy functions below are pure: role plus ownership in, allow/deny
// out. They are checked before any store mutation is attempted.

// CanView allows admins and the submitter to read a complaint.
func CanView(actor Actor, c *models.Complaint) bool {
	return actor.IsAdmin() || actor.ID == c.UserID
}

// CanEditContent allows the submitter to edit title, description, category
// and priority. Admins go through the status-edit path instead, and content
// becomes immutable once the complaint is resolved or rejected.
func CanEditContent(actor Actor, c *models.Complaint) bool {
	if actor.IsAdmin() || actor.ID != c.UserID {
		return false
	}
	return c.Status == models.StatusPending || c.Status == models.StatusInProgress
}

// CanEditStatusFields allows admins to change status, assignment and the
// estimated resolution date.
func CanEditStatusFields(actor Actor) bool {
	return actor.IsAdmin()
}

// CanAssign allows admins to set or clear the assigned handler.
func CanAssign(actor Actor) bool {
	return actor.IsAdmin()
}

// CanDelete allows admins to delete complaints. The legacy API carried a
// second route permitting owner delete; that variant was dropped in favor
// of the admin-only policy.
func CanDelete(actor Actor) bool {
	return actor.IsAdmin()
}

// CanGiveFeedback allows the submitter to rate a complaint once it has
// reached resolved or rejected.
func CanGiveFeedback(actor Actor, c *models.Complaint) bool {
	if actor.ID != c.UserID {
		return false
	}
	return c.Status == models.StatusResolved || c.Status == models.StatusRejected
}

// CanVote allows any authenticated actor to vote, including the submitter
// voting on their own complaint.
func CanVote(actor Actor) bool {
	return actor.ID != ""
}
