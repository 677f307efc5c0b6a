package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "helpdesk/internal/domain/ticket/valueobjects"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// newValidTicket creates a ticket with sensible defaults for testing.
func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("Test ticket", "Detailed description", vo.CategoryTechnical, vo.PriorityMedium, 1)
	require.NoError(t, err)
	return tk
}

// reconstructedTicket builds a persisted-style ticket via ReconstructTicket.
func reconstructedTicket(t *testing.T, status vo.TicketStatus) *Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ReconstructTicket(
		1, "TKT-20250101-0001",
		"Persisted ticket", "desc",
		vo.CategoryBilling, vo.PriorityHigh,
		status,
		10,  // creatorID
		nil, // assigneeID
		nil, // tags
		nil, // metadata
		nil, // slaDueTime
		nil, // responseTime
		nil, // resolvedTime
		1,   // version
		now, now,
		nil, // closedAt
	)
	require.NoError(t, err)
	return tk
}

// ---------------------------------------------------------------------------
// Constructor Tests
// ---------------------------------------------------------------------------

func TestNewTicket_ValidInput(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		desc    string
		cat     vo.Category
		pri     vo.Priority
		creator uint
	}{
		{
			name:  "all valid fields - technical/low",
			title: "Login page broken", desc: "Cannot log in after update",
			cat: vo.CategoryTechnical, pri: vo.PriorityLow, creator: 1,
		},
		{
			name:  "all valid fields - billing/urgent",
			title: "Overcharged", desc: "Billed twice this month",
			cat: vo.CategoryBilling, pri: vo.PriorityUrgent, creator: 42,
		},
		{
			name:  "boundary title length 200",
			title: strings.Repeat("a", 200), desc: "desc",
			cat: vo.CategoryOther, pri: vo.PriorityMedium, creator: 5,
		},
		{
			name:  "boundary description length 5000",
			title: "Title", desc: strings.Repeat("d", 5000),
			cat: vo.CategoryFeature, pri: vo.PriorityHigh, creator: 7,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk, err := NewTicket(tc.title, tc.desc, tc.cat, tc.pri, tc.creator)
			require.NoError(t, err)
			require.NotNil(t, tk)

			assert.Equal(t, tc.title, tk.Title())
			assert.Equal(t, tc.desc, tk.Description())
			assert.Equal(t, tc.cat, tk.Category())
			assert.Equal(t, tc.pri, tk.Priority())
			assert.Equal(t, tc.creator, tk.CreatorID())
			assert.Equal(t, vo.StatusNew, tk.Status(), "new ticket must have status 'new'")
			assert.Equal(t, 1, tk.Version())
			assert.NotNil(t, tk.SLADueTime(), "SLA due time should be set")
			assert.Nil(t, tk.AssigneeID())
			assert.Nil(t, tk.ResponseTime())
			assert.Nil(t, tk.ResolvedTime())
			assert.Nil(t, tk.ClosedAt())
			assert.Empty(t, tk.Tags())
			assert.Empty(t, tk.Metadata())
			assert.Empty(t, tk.Comments())
		})
	}
}

func TestNewTicket_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		desc    string
		cat     vo.Category
		pri     vo.Priority
		creator uint
		wantErr string
	}{
		{"empty title", "", "desc", vo.CategoryTechnical, vo.PriorityMedium, 1, "title is required"},
		{"title too long", strings.Repeat("x", 201), "desc", vo.CategoryTechnical, vo.PriorityMedium, 1, "title exceeds maximum length"},
		{"empty description", "Title", "", vo.CategoryTechnical, vo.PriorityMedium, 1, "description is required"},
		{"description too long", "Title", strings.Repeat("d", 5001), vo.CategoryTechnical, vo.PriorityMedium, 1, "description exceeds maximum length"},
		{"invalid category", "Title", "desc", vo.Category("bogus"), vo.PriorityMedium, 1, "invalid category"},
		{"invalid priority", "Title", "desc", vo.CategoryTechnical, vo.Priority("bogus"), 1, "invalid priority"},
		{"zero creator", "Title", "desc", vo.CategoryTechnical, vo.PriorityMedium, 0, "creator ID is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk, err := NewTicket(tc.title, tc.desc, tc.cat, tc.pri, tc.creator)
			require.Error(t, err)
			assert.Nil(t, tk)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewTicket_SLADueTimeFollowsPriority(t *testing.T) {
	tk, err := NewTicket("Urgent issue", "desc", vo.CategoryTechnical, vo.PriorityUrgent, 1)
	require.NoError(t, err)

	expected := tk.CreatedAt().Add(2 * time.Hour)
	assert.WithinDuration(t, expected, *tk.SLADueTime(), time.Second)
}

// ---------------------------------------------------------------------------
// Status transition Tests
// ---------------------------------------------------------------------------

func TestChangeStatus_ValidTransitions(t *testing.T) {
	tests := []struct {
		from vo.TicketStatus
		to   vo.TicketStatus
	}{
		{vo.StatusNew, vo.StatusOpen},
		{vo.StatusOpen, vo.StatusInProgress},
		{vo.StatusInProgress, vo.StatusPending},
		{vo.StatusPending, vo.StatusInProgress},
		{vo.StatusInProgress, vo.StatusResolved},
		{vo.StatusResolved, vo.StatusClosed},
		{vo.StatusClosed, vo.StatusReopened},
		{vo.StatusReopened, vo.StatusOpen},
	}

	for _, tc := range tests {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			tk := reconstructedTicket(t, tc.from)
			err := tk.ChangeStatus(tc.to, 99)
			require.NoError(t, err)
			assert.Equal(t, tc.to, tk.Status())
			assert.Equal(t, 2, tk.Version(), "version must bump on status change")
		})
	}
}

func TestChangeStatus_InvalidTransitions(t *testing.T) {
	tests := []struct {
		from vo.TicketStatus
		to   vo.TicketStatus
	}{
		{vo.StatusNew, vo.StatusResolved},
		{vo.StatusNew, vo.StatusInProgress},
		{vo.StatusClosed, vo.StatusOpen},
		{vo.StatusResolved, vo.StatusInProgress},
		{vo.StatusPending, vo.StatusReopened},
	}

	for _, tc := range tests {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			tk := reconstructedTicket(t, tc.from)
			err := tk.ChangeStatus(tc.to, 99)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "cannot transition")
			assert.Equal(t, tc.from, tk.Status(), "status must not change on invalid transition")
		})
	}
}

func TestChangeStatus_SameStatusIsNoop(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)
	err := tk.ChangeStatus(vo.StatusOpen, 99)
	require.NoError(t, err)
	assert.Equal(t, 1, tk.Version())
}

func TestChangeStatus_ResolvedSetsResolvedTime(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusInProgress)
	require.NoError(t, tk.ChangeStatus(vo.StatusResolved, 99))
	assert.NotNil(t, tk.ResolvedTime())
}

func TestChangeStatus_ReopenClearsTimestamps(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusClosed)
	require.NoError(t, tk.ChangeStatus(vo.StatusReopened, 99))
	assert.Nil(t, tk.ClosedAt())
	assert.Nil(t, tk.ResolvedTime())
	assert.Equal(t, vo.StatusReopened, tk.Status())
}

// ---------------------------------------------------------------------------
// Assignment / priority Tests
// ---------------------------------------------------------------------------

func TestAssignTo(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.SetID(1))

	err := tk.AssignTo(7, 99)
	require.NoError(t, err)
	require.NotNil(t, tk.AssigneeID())
	assert.Equal(t, uint(7), *tk.AssigneeID())
	assert.Equal(t, vo.StatusOpen, tk.Status(), "assigning a new ticket opens it")
}

func TestAssignTo_ZeroAssignee(t *testing.T) {
	tk := newValidTicket(t)
	err := tk.AssignTo(0, 99)
	require.Error(t, err)
	assert.Nil(t, tk.AssigneeID())
}

func TestChangePriority_RecomputesSLA(t *testing.T) {
	tk := newValidTicket(t)
	originalDue := *tk.SLADueTime()

	require.NoError(t, tk.ChangePriority(vo.PriorityUrgent, 99))

	assert.Equal(t, vo.PriorityUrgent, tk.Priority())
	assert.True(t, tk.SLADueTime().Before(originalDue), "urgent SLA must be tighter than medium")
	expected := tk.CreatedAt().Add(2 * time.Hour)
	assert.WithinDuration(t, expected, *tk.SLADueTime(), time.Second)
}

// ---------------------------------------------------------------------------
// Comment Tests
// ---------------------------------------------------------------------------

func TestAddComment_MarksFirstResponse(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.SetID(1))

	c, err := NewComment(1, 2, "We are looking into it", false)
	require.NoError(t, err)

	require.NoError(t, tk.AddComment(c))
	assert.NotNil(t, tk.ResponseTime(), "staff comment must mark first response")
	assert.Len(t, tk.Comments(), 1)
}

func TestAddComment_CreatorCommentDoesNotMarkResponse(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.SetID(1))

	c, err := NewComment(1, tk.CreatorID(), "Any update?", false)
	require.NoError(t, err)

	require.NoError(t, tk.AddComment(c))
	assert.Nil(t, tk.ResponseTime())
}

func TestAddComment_InternalCommentDoesNotMarkResponse(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.SetID(1))

	c, err := NewComment(1, 2, "internal note", true)
	require.NoError(t, err)

	require.NoError(t, tk.AddComment(c))
	assert.Nil(t, tk.ResponseTime())
}

func TestAddComment_ExternalCommentDoesNotMarkResponse(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.SetID(1))

	c, err := NewExternalComment(1, 2, "Mirrored from JIRA", SourceJira, "10001")
	require.NoError(t, err)

	require.NoError(t, tk.AddComment(c))
	assert.Nil(t, tk.ResponseTime(), "mirrored comments never count as first response")
}

func TestAddComment_TicketIDMismatch(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.SetID(1))

	c, err := NewComment(2, 2, "wrong ticket", false)
	require.NoError(t, err)

	err = tk.AddComment(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

// ---------------------------------------------------------------------------
// Close / reopen Tests
// ---------------------------------------------------------------------------

func TestClose(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)
	require.NoError(t, tk.Close("resolved via chat", 99))
	assert.Equal(t, vo.StatusClosed, tk.Status())
	assert.NotNil(t, tk.ClosedAt())
}

func TestClose_RequiresReason(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)
	err := tk.Close("", 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reason is required")
}

func TestClose_AlreadyClosedIsNoop(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusClosed)
	require.NoError(t, tk.Close("again", 99))
	assert.Equal(t, 1, tk.Version())
}

func TestReopen(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusClosed)
	require.NoError(t, tk.Reopen("issue came back", 10))
	assert.Equal(t, vo.StatusReopened, tk.Status())
	assert.Nil(t, tk.ClosedAt())
}

func TestReopen_OnlyClosedOrResolved(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)
	err := tk.Reopen("reason", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only closed or resolved")
}

// ---------------------------------------------------------------------------
// SLA / access Tests
// ---------------------------------------------------------------------------

func TestIsOverdue(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)

	tk, err := ReconstructTicket(
		1, "TKT-20250101-0002", "Overdue", "desc",
		vo.CategoryTechnical, vo.PriorityUrgent, vo.StatusOpen,
		10, nil, nil, nil,
		&past, nil, nil,
		1, now.Add(-3*time.Hour), now, nil,
	)
	require.NoError(t, err)
	assert.True(t, tk.IsOverdue())

	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress, 99))
	require.NoError(t, tk.ChangeStatus(vo.StatusResolved, 99))
	assert.False(t, tk.IsOverdue(), "resolved tickets are never overdue")
}

func TestCanBeViewedBy(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusOpen)
	require.NoError(t, tk.AssignTo(20, 99))

	assert.True(t, tk.CanBeViewedBy(5, "admin"))
	assert.True(t, tk.CanBeViewedBy(5, "support_agent"))
	assert.True(t, tk.CanBeViewedBy(10, "customer"), "creator can view own ticket")
	assert.True(t, tk.CanBeViewedBy(20, "customer"), "assignee can view ticket")
	assert.False(t, tk.CanBeViewedBy(5, "customer"))
}

func TestSetNumber_OnlyOnce(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.SetNumber("TKT-20250101-0001"))
	err := tk.SetNumber("TKT-20250101-0002")
	require.Error(t, err)
	assert.Equal(t, "TKT-20250101-0001", tk.Number())
}
