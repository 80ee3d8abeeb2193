package complaint_test

import (
	"testing"
	"time"

	"samadhan/backend/internal/complaint"
	"samadhan/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sinkRecorder captures lifecycle events for assertions.
type sinkRecorder struct {
	created  []complaint.CreatedEvent
	status   []complaint.StatusChangedEvent
	feedback []complaint.FeedbackEvent
}

func (r *sinkRecorder) ComplaintCreated(ev complaint.CreatedEvent)   { r.created = append(r.created, ev) }
func (r *sinkRecorder) StatusChanged(ev complaint.StatusChangedEvent) {
	r.status = append(r.status, ev)
}
func (r *sinkRecorder) FeedbackAdded(ev complaint.FeedbackEvent) { r.feedback = append(r.feedback, ev) }

func newTestService() (*complaint.Service, *fakeStorage, *sinkRecorder) {
	store := newFakeStorage()
	sink := &sinkRecorder{}
	store.users[owner.ID] = &models.User{ID: owner.ID, Name: "Asha", Role: models.RoleUser, IsActive: true}
	store.users[admin.ID] = &models.User{ID: admin.ID, Name: "Ravi", Role: models.RoleAdmin, IsActive: true}
	return complaint.NewService(store, sink), store, sink
}

func fileValid(t *testing.T, svc *complaint.Service) *models.Complaint {
	t.Helper()
	c, err := svc.File(owner, complaint.NewComplaint{
		Title:       "Pothole",
		Description: "Deep pothole near the school gate",
		Category:    models.CategoryRoadReconstruction,
	})
	require.NoError(t, err)
	return c
}

func TestFile_Defaults(t *testing.T) {
	svc, _, sink := newTestService()

	c := fileValid(t, svc)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, models.StatusPending, c.Status)
	assert.Equal(t, models.PriorityMedium, c.Priority)
	assert.Equal(t, owner.ID, c.UserID)

	require.Len(t, sink.created, 1)
	assert.Equal(t, "Pothole", sink.created[0].Title)
	assert.Equal(t, "Asha", sink.created[0].SubmitterName)
}

func TestFile_Validation(t *testing.T) {
	svc, _, sink := newTestService()

	_, err := svc.File(owner, complaint.NewComplaint{Category: "volcano"})

	var verr *complaint.ValidationError
	require.ErrorAs(t, err, &verr)

	params := make(map[string]bool)
	for _, f := range verr.Fields {
		params[f.Param] = true
	}
	assert.True(t, params["title"])
	assert.True(t, params["description"])
	assert.True(t, params["category"])
	assert.Empty(t, sink.created, "no event on validation failure")
}

func TestGet_Authorization(t *testing.T) {
	svc, _, _ := newTestService()
	c := fileValid(t, svc)

	_, err := svc.Get(stranger, c.ID)
	assert.ErrorIs(t, err, complaint.ErrForbidden)

	_, err = svc.Get(admin, c.ID)
	assert.NoError(t, err)

	_, err = svc.Get(owner, "4b6dbd1d-8a4e-4e6e-9a0a-000000000000")
	assert.ErrorIs(t, err, complaint.ErrNotFound)
}

func TestVote_ToggleIdempotentPair(t *testing.T) {
	svc, _, sink := newTestService()
	c := fileValid(t, svc)

	likes, dislikes, err := svc.Vote(stranger, c.ID, complaint.VoteLike)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)
	assert.Equal(t, 0, dislikes)

	// Liking again removes the vote.
	likes, dislikes, err = svc.Vote(stranger, c.ID, complaint.VoteLike)
	require.NoError(t, err)
	assert.Equal(t, 0, likes)
	assert.Equal(t, 0, dislikes)

	// Votes never emit events.
	assert.Empty(t, sink.created[1:])
	assert.Empty(t, sink.status)
}

func TestVote_SwitchSides(t *testing.T) {
	svc, store, _ := newTestService()
	c := fileValid(t, svc)

	_, _, err := svc.Vote(stranger, c.ID, complaint.VoteLike)
	require.NoError(t, err)

	likes, dislikes, err := svc.Vote(stranger, c.ID, complaint.VoteDislike)
	require.NoError(t, err)
	assert.Equal(t, 0, likes)
	assert.Equal(t, 1, dislikes)

	saved, _ := store.GetComplaintByID(c.ID)
	assert.False(t, saved.HasLike(stranger.ID))
	assert.True(t, saved.HasDislike(stranger.ID))
}

// A user id must never appear in both sets, whatever the vote sequence.
func TestVote_AtMostOneSetInvariant(t *testing.T) {
	svc, store, _ := newTestService()
	c := fileValid(t, svc)

	sequence := []string{
		complaint.VoteLike, complaint.VoteDislike, complaint.VoteDislike,
		complaint.VoteLike, complaint.VoteLike, complaint.VoteDislike,
	}
	for _, dir := range sequence {
		_, _, err := svc.Vote(stranger, c.ID, dir)
		require.NoError(t, err)

		saved, _ := store.GetComplaintByID(c.ID)
		both := saved.HasLike(stranger.ID) && saved.HasDislike(stranger.ID)
		assert.False(t, both, "user in both vote sets after %q", dir)
	}
}

func TestVote_BadDirection(t *testing.T) {
	svc, _, _ := newTestService()
	c := fileValid(t, svc)

	_, _, err := svc.Vote(stranger, c.ID, "sideways")
	var verr *complaint.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestListGeneral_NetScoreRanking(t *testing.T) {
	svc, store, _ := newTestService()

	base := time.Now()
	store.complaints["old-winner"] = &models.Complaint{
		ID: "old-winner", UserID: owner.ID, Title: "Flooded street",
		Likes: []string{"a", "b"}, Dislikes: []string{"c"},
		CreatedAt: base.Add(-2 * time.Hour),
	}
	store.complaints["new-zero"] = &models.Complaint{
		ID: "new-zero", UserID: owner.ID, Title: "Broken lamp",
		CreatedAt: base,
	}

	list, err := svc.ListGeneral()
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Net score 1 outranks net score 0 regardless of creation order.
	assert.Equal(t, "old-winner", list[0].ID)
	assert.Equal(t, "new-zero", list[1].ID)
}

func TestListGeneral_TieBreaksOnRecency(t *testing.T) {
	svc, store, _ := newTestService()

	base := time.Now()
	store.complaints["older"] = &models.Complaint{
		ID: "older", UserID: owner.ID, Likes: []string{"a"},
		CreatedAt: base.Add(-time.Hour),
	}
	store.complaints["newer"] = &models.Complaint{
		ID: "newer", UserID: owner.ID, Likes: []string{"b"},
		CreatedAt: base,
	}

	list, err := svc.ListGeneral()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].ID)
	assert.Equal(t, "older", list[1].ID)
}

func strptr(s string) *string { return &s }

func TestUpdate_StatusChangeEmitsEvent(t *testing.T) {
	svc, _, sink := newTestService()
	c := fileValid(t, svc)

	updated, err := svc.Update(admin, c.ID, complaint.Patch{Status: strptr(models.StatusResolved)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, updated.Status)
	require.NotNil(t, updated.ResolutionDate)

	require.Len(t, sink.status, 1)
	assert.Equal(t, models.StatusResolved, sink.status[0].NewStatus)
	assert.Equal(t, owner.ID, sink.status[0].SubmitterID)
}

func TestUpdate_SameStatusEmitsNothing(t *testing.T) {
	svc, _, sink := newTestService()
	c := fileValid(t, svc)

	_, err := svc.Update(admin, c.ID, complaint.Patch{Status: strptr(models.StatusPending)})
	require.NoError(t, err)
	assert.Empty(t, sink.status)
}

func TestUpdate_ResolutionDateSetOnce(t *testing.T) {
	svc, _, _ := newTestService()
	c := fileValid(t, svc)

	first, err := svc.Update(admin, c.ID, complaint.Patch{Status: strptr(models.StatusResolved)})
	require.NoError(t, err)
	require.NotNil(t, first.ResolutionDate)
	stamp := *first.ResolutionDate

	// Bounce through rejected and back: the stamp must survive untouched.
	_, err = svc.Update(admin, c.ID, complaint.Patch{Status: strptr(models.StatusRejected)})
	require.NoError(t, err)
	again, err := svc.Update(admin, c.ID, complaint.Patch{Status: strptr(models.StatusResolved)})
	require.NoError(t, err)

	require.NotNil(t, again.ResolutionDate)
	assert.True(t, stamp.Equal(*again.ResolutionDate), "resolutionDate must not move on re-entry")
}

func TestUpdate_AdminPatchIgnoresContentFields(t *testing.T) {
	svc, _, _ := newTestService()
	c := fileValid(t, svc)

	updated, err := svc.Update(admin, c.ID, complaint.Patch{
		Title:  strptr("Hijacked title"),
		Status: strptr(models.StatusInProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pothole", updated.Title, "content fields are outside admin authority")
	assert.Equal(t, models.StatusInProgress, updated.Status)
}

func TestUpdate_OwnerPatchIgnoresStatusFields(t *testing.T) {
	svc, _, sink := newTestService()
	c := fileValid(t, svc)

	updated, err := svc.Update(owner, c.ID, complaint.Patch{
		Title:  strptr("Bigger pothole"),
		Status: strptr(models.StatusResolved),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bigger pothole", updated.Title)
	assert.Equal(t, models.StatusPending, updated.Status, "status is outside submitter authority")
	assert.Nil(t, updated.ResolutionDate)
	assert.Empty(t, sink.status)
}

func TestUpdate_StrangerForbidden(t *testing.T) {
	svc, _, _ := newTestService()
	c := fileValid(t, svc)

	_, err := svc.Update(stranger, c.ID, complaint.Patch{Title: strptr("x")})
	assert.ErrorIs(t, err, complaint.ErrForbidden)
}

func TestUpdate_OwnerLockedOutAfterResolution(t *testing.T) {
	svc, _, _ := newTestService()
	c := fileValid(t, svc)

	_, err := svc.Update(admin, c.ID, complaint.Patch{Status: strptr(models.StatusResolved)})
	require.NoError(t, err)

	_, err = svc.Update(owner, c.ID, complaint.Patch{Title: strptr("too late")})
	assert.ErrorIs(t, err, complaint.ErrForbidden)
}

func TestUpdate_InvalidStatusRejected(t *testing.T) {
	svc, _, _ := newTestService()
	c := fileValid(t, svc)

	_, err := svc.Update(admin, c.ID, complaint.Patch{Status: strptr("escalated")})
	var verr *complaint.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDelete_Policy(t *testing.T) {
	svc, store, _ := newTestService()
	c := fileValid(t, svc)

	err := svc.Delete(owner, c.ID)
	assert.ErrorIs(t, err, complaint.ErrForbidden, "owner delete is not allowed under the admin-only policy")

	err = svc.Delete(admin, c.ID)
	require.NoError(t, err)

	gone, _ := store.GetComplaintByID(c.ID)
	assert.Nil(t, gone)

	err = svc.Delete(admin, c.ID)
	assert.ErrorIs(t, err, complaint.ErrNotFound)
}

func TestAssign(t *testing.T) {
	svc, store, _ := newTestService()
	c := fileValid(t, svc)

	handler := &models.User{ID: "handler-1", Name: "Crew", Role: models.RoleUser, IsActive: true}
	store.users[handler.ID] = handler

	_, err := svc.Assign(owner, c.ID, &handler.ID)
	assert.ErrorIs(t, err, complaint.ErrForbidden)

	_, err = svc.Assign(admin, c.ID, strptr("no-such-user"))
	assert.ErrorIs(t, err, complaint.ErrUserNotFound)

	updated, err := svc.Assign(admin, c.ID, &handler.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedUserID)
	assert.Equal(t, handler.ID, *updated.AssignedUserID)

	cleared, err := svc.Assign(admin, c.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.AssignedUserID)
}

func intptr(n int) *int { return &n }

func TestAddFeedback_Rules(t *testing.T) {
	svc, _, sink := newTestService()
	c := fileValid(t, svc)

	// Pending complaints take no feedback, whoever asks.
	_, err := svc.AddFeedback(owner, c.ID, intptr(4), nil)
	var verr *complaint.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.Update(admin, c.ID, complaint.Patch{Status: strptr(models.StatusResolved)})
	require.NoError(t, err)

	// Non-submitters stay forbidden even once resolved.
	_, err = svc.AddFeedback(stranger, c.ID, intptr(4), nil)
	assert.ErrorIs(t, err, complaint.ErrForbidden)

	_, err = svc.AddFeedback(owner, c.ID, intptr(9), nil)
	require.ErrorAs(t, err, &verr, "rating outside 1-5")

	updated, err := svc.AddFeedback(owner, c.ID, intptr(4), strptr("fixed quickly"))
	require.NoError(t, err)
	require.NotNil(t, updated.Feedback)
	assert.Equal(t, 4, *updated.Feedback.Rating)
	assert.Equal(t, "fixed quickly", updated.Feedback.Comment)

	require.Len(t, sink.feedback, 1)
	assert.Equal(t, c.ID, sink.feedback[0].ComplaintID)
}

func TestAddFeedback_UpsertKeepsAbsentFields(t *testing.T) {
	svc, _, _ := newTestService()
	c := fileValid(t, svc)

	_, err := svc.Update(admin, c.ID, complaint.Patch{Status: strptr(models.StatusRejected)})
	require.NoError(t, err)

	_, err = svc.AddFeedback(owner, c.ID, intptr(2), strptr("not happy"))
	require.NoError(t, err)

	// Re-submitting only a comment keeps the earlier rating; the date is
	// refreshed. Feedback stays a single sub-document, never a list.
	updated, err := svc.AddFeedback(owner, c.ID, nil, strptr("still not happy"))
	require.NoError(t, err)
	require.NotNil(t, updated.Feedback)
	require.NotNil(t, updated.Feedback.Rating)
	assert.Equal(t, 2, *updated.Feedback.Rating)
	assert.Equal(t, "still not happy", updated.Feedback.Comment)
}

func TestAddComment(t *testing.T) {
	svc, _, _ := newTestService()
	c := fileValid(t, svc)

	_, err := svc.AddComment(stranger, c.ID, "me too")
	assert.ErrorIs(t, err, complaint.ErrForbidden)

	updated, err := svc.AddComment(admin, c.ID, "crew dispatched")
	require.NoError(t, err)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, admin.ID, updated.Comments[0].UserID)
}

func TestList_ScopedByRole(t *testing.T) {
	svc, store, _ := newTestService()
	fileValid(t, svc)
	store.complaints["foreign"] = &models.Complaint{
		ID: "foreign", UserID: stranger.ID, Title: "Other", CreatedAt: time.Now(),
	}

	all, err := svc.List(admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.List(owner)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, owner.ID, own[0].UserID)
}
