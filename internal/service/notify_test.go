package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"nemukerja/internal/domain"
)

func TestNotifierInbox(t *testing.T) {
	ctx := context.Background()
	rs := newTestRepos(t)
	n := NewNotifier(rs, zaptest.NewLogger(t))
	aliceActor, _ := seedApplicant(t, rs, "alice")
	bobActor, _ := seedApplicant(t, rs, "bob")

	n.Emit(ctx, aliceActor.UserID, "Hello", "first", domain.NotifJobPosted, nil)
	n.Emit(ctx, aliceActor.UserID, "Hello", "second", domain.NotifJobPosted, nil)
	n.Emit(ctx, bobActor.UserID, "Hello", "not yours", domain.NotifJobPosted, nil)

	ns, err := n.Latest(ctx, aliceActor, 10)
	require.NoError(t, err)
	assert.Len(t, ns, 2)

	t.Run("mark read is recipient-only", func(t *testing.T) {
		err := n.MarkRead(ctx, bobActor, ns[0].ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		require.NoError(t, n.MarkRead(ctx, aliceActor, ns[0].ID))
		got, err := rs.Notifications.FindByID(ctx, ns[0].ID)
		require.NoError(t, err)
		assert.True(t, got.IsRead)
	})

	t.Run("mark all read", func(t *testing.T) {
		require.NoError(t, n.MarkAllRead(ctx, aliceActor))
		ns, err := n.Latest(ctx, aliceActor, 10)
		require.NoError(t, err)
		for _, nt := range ns {
			assert.True(t, nt.IsRead)
		}
	})

	t.Run("clear all leaves other inboxes alone", func(t *testing.T) {
		require.NoError(t, n.ClearAll(ctx, aliceActor))
		ns, err := n.Latest(ctx, aliceActor, 10)
		require.NoError(t, err)
		assert.Empty(t, ns)

		ns, err = n.Latest(ctx, bobActor, 10)
		require.NoError(t, err)
		assert.Len(t, ns, 1)
	})

	t.Run("unknown notification", func(t *testing.T) {
		err := n.MarkRead(ctx, aliceActor, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRelatedJobID(t *testing.T) {
	ctx := context.Background()
	rs := newTestRepos(t)
	wf := newTestWorkflow(t, rs)
	n := NewNotifier(rs, zaptest.NewLogger(t))

	companyActor, company := seedCompany(t, rs, "acme")
	aliceActor, _ := seedApplicant(t, rs, "alice")
	mallory, _ := seedApplicant(t, rs, "mallory")
	job := seedJob(t, rs, company.ID, 1, true, time.Now())

	app, err := wf.Apply(ctx, aliceActor, job.ID, "", nil)
	require.NoError(t, err)

	// the company's application_received entry links back to the job
	cns, err := n.Latest(ctx, companyActor, 10)
	require.NoError(t, err)
	require.Len(t, cns, 1)
	jobID, err := n.RelatedJobID(ctx, companyActor, cns[0].ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, jobID)

	// only the recipient may follow the link
	_, err = n.RelatedJobID(ctx, mallory, cns[0].ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// so does the applicant's status entry after a decision
	_, err = wf.Decide(ctx, companyActor, app.ID, DecisionAccept)
	require.NoError(t, err)
	ans, err := n.Latest(ctx, aliceActor, 10)
	require.NoError(t, err)
	require.Len(t, ans, 1)
	jobID, err = n.RelatedJobID(ctx, aliceActor, ans[0].ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, jobID)

	// a notification without a related application resolves to nothing
	n.Emit(ctx, aliceActor.UserID, "Job Posting Removed", "gone", domain.NotifJobRemoved, nil)
	ans, err = n.Latest(ctx, aliceActor, 10)
	require.NoError(t, err)
	var bare string
	for _, nt := range ans {
		if nt.RelatedID == nil {
			bare = nt.ID
		}
	}
	require.NotEmpty(t, bare)
	_, err = n.RelatedJobID(ctx, aliceActor, bare)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = n.RelatedJobID(ctx, aliceActor, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
