package store

import (
	"testing"
	"time"

	"guildcalendar/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvite(id domain.InviteID, eventID domain.EventID, invitee domain.PlayerID, status domain.InviteStatus) *domain.Invite {
	inv := domain.NewInvite(eventID, invitee, 1, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	inv.ID = id
	inv.Status = status
	return inv
}

func TestInviteIndex_OrderAndRemove(t *testing.T) {
	x := NewInviteIndex()
	x.Add(newTestInvite(1, 7, 100, domain.StatusInvited))
	x.Add(newTestInvite(2, 7, 101, domain.StatusInvited))
	x.Add(newTestInvite(3, 7, 102, domain.StatusInvited))
	x.Add(newTestInvite(4, 8, 100, domain.StatusInvited))

	var got []domain.InviteID
	for _, inv := range x.EventInvites(7) {
		got = append(got, inv.ID)
	}
	assert.Equal(t, []domain.InviteID{1, 2, 3}, got)

	removed, ok := x.Remove(7, 2)
	require.True(t, ok)
	assert.Equal(t, domain.InviteID(2), removed.ID)

	got = got[:0]
	for _, inv := range x.EventInvites(7) {
		got = append(got, inv.ID)
	}
	assert.Equal(t, []domain.InviteID{1, 3}, got)

	_, ok = x.Remove(8, 2)
	assert.False(t, ok, "invite 2 does not belong to event 8")

	_, ok = x.FindInEvent(7, 4)
	assert.False(t, ok)
	found, ok := x.Find(4)
	require.True(t, ok)
	assert.Equal(t, domain.EventID(8), found.EventID)
	assert.Equal(t, 3, x.Len())
}

func TestInviteIndex_RemoveEvent(t *testing.T) {
	x := NewInviteIndex()
	x.Add(newTestInvite(1, 7, 100, domain.StatusInvited))
	x.Add(newTestInvite(2, 7, 101, domain.StatusInvited))
	x.Add(newTestInvite(3, 8, 100, domain.StatusInvited))

	removed := x.RemoveEvent(7)
	assert.Len(t, removed, 2)
	assert.Empty(t, x.EventInvites(7))
	assert.Equal(t, 1, x.Len())
	assert.Empty(t, x.RemoveEvent(42))
}

func TestInviteIndex_PlayerInvites(t *testing.T) {
	x := NewInviteIndex()
	x.Add(newTestInvite(5, 9, 100, domain.StatusInvited))
	x.Add(newTestInvite(1, 3, 100, domain.StatusAccepted))
	x.Add(newTestInvite(2, 3, 101, domain.StatusInvited))
	x.Add(newTestInvite(3, 3, 100, domain.StatusDeclined))

	var got []domain.InviteID
	for _, inv := range x.PlayerInvites(100) {
		got = append(got, inv.ID)
	}
	assert.Equal(t, []domain.InviteID{1, 3, 5}, got)
	assert.Empty(t, x.PlayerInvites(999))
}

func TestInviteIndex_PendingCount(t *testing.T) {
	statuses := []domain.InviteStatus{
		domain.StatusInvited,
		domain.StatusAccepted,
		domain.StatusDeclined,
		domain.StatusConfirmed,
		domain.StatusOut,
		domain.StatusStandby,
		domain.StatusSignedUp,
		domain.StatusNotSignedUp,
		domain.StatusTentative,
		domain.StatusRemoved,
	}
	x := NewInviteIndex()
	want := 0
	for i, st := range statuses {
		x.Add(newTestInvite(domain.InviteID(i+1), domain.EventID(i%3+1), 100, st))
		if st == domain.StatusInvited || st == domain.StatusTentative || st == domain.StatusNotSignedUp {
			want++
		}
	}
	x.Add(newTestInvite(50, 1, 200, domain.StatusInvited))

	assert.Equal(t, 3, want)
	assert.Equal(t, want, x.PendingCount(100))
	assert.Equal(t, 1, x.PendingCount(200))
	assert.Zero(t, x.PendingCount(300))
}
