package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdmitParticipants(t *testing.T) {
	newCount, full, ok := admitParticipants(3, 8, 2)
	require.True(t, ok)
	require.False(t, full)
	require.Equal(t, 5, newCount)
}

func TestAdmitParticipantsFillsLesson(t *testing.T) {
	newCount, full, ok := admitParticipants(6, 8, 2)
	require.True(t, ok)
	require.True(t, full)
	require.Equal(t, 8, newCount)
}

func TestAdmitParticipantsRejectsOvershoot(t *testing.T) {
	_, _, ok := admitParticipants(7, 8, 2)
	require.False(t, ok)

	// A full lesson admits nobody, not even a single participant.
	_, full, ok := admitParticipants(8, 8, 1)
	require.False(t, ok)
	require.True(t, full)
}

func TestAdmitParticipantsPrivateLesson(t *testing.T) {
	newCount, full, ok := admitParticipants(0, 1, 1)
	require.True(t, ok)
	require.True(t, full)
	require.Equal(t, 1, newCount)

	_, _, ok = admitParticipants(0, 1, 2)
	require.False(t, ok)
}

func TestReleaseParticipants(t *testing.T) {
	require.Equal(t, 3, releaseParticipants(5, 2))
	require.Equal(t, 0, releaseParticipants(2, 2))
}

func TestReleaseParticipantsFloorsAtZero(t *testing.T) {
	require.Equal(t, 0, releaseParticipants(1, 3))
}

// Two bookings race for the last places: whoever is admitted second must see
// the first admission's count, which the row lock on the lesson guarantees.
// This drives the same arithmetic the handler runs inside its transaction.
func TestAdmitParticipantsSequentialAdmissions(t *testing.T) {
	current := 4
	capacity := 6

	// A asks for 2, B asks for 2. Only one can win.
	newCount, full, ok := admitParticipants(current, capacity, 2)
	require.True(t, ok)
	require.True(t, full)

	_, _, ok = admitParticipants(newCount, capacity, 2)
	require.False(t, ok)
}
