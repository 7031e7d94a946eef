package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaidOutcomeCreditsExactlyOnce(t *testing.T) {
	// First paid report settles.
	require.Equal(t, settleCredit, paidOutcome("initiated", "pending", "pending"))

	// Replays of the same session (webhook retry, poll, sweep) are no-ops.
	require.Equal(t, settleNoop, paidOutcome("paid", "confirmed", "paid"))
	require.Equal(t, settleNoop, paidOutcome("paid", "confirmed", "paid"))
}

func TestPaidOutcomeNeverResurrectsCancelledBooking(t *testing.T) {
	// Book, cancel (seats released), then the still-open session gets paid:
	// the booking must stay cancelled and the money goes to refund, not to
	// the instructor's balance.
	require.Equal(t, settleRefund, paidOutcome("initiated", "cancelled", "pending"))

	// Replaying the refund-flagged session changes nothing further.
	require.Equal(t, settleNoop, paidOutcome("refund_due", "cancelled", "pending"))
}

func TestPaidOutcomeRejectsSecondPaidSessionForBooking(t *testing.T) {
	// A second session paid against an already-paid booking must not credit
	// the instructor again.
	require.Equal(t, settleRefund, paidOutcome("initiated", "confirmed", "paid"))
}

func TestPaidOutcomeExpiredSessionCanStillSettle(t *testing.T) {
	// Stripe can report a payment for a session the sweep had written off;
	// the booking is still live, so the late payment settles normally.
	require.Equal(t, settleCredit, paidOutcome("expired", "pending", "pending"))
}
