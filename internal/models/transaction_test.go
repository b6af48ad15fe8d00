package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    TransactionStatus
		to      TransactionStatus
		allowed bool
	}{
		{StatusPending, StatusReceived, true},
		{StatusPending, StatusProcessing, false},
		{StatusPending, StatusCompleted, false},
		{StatusReceived, StatusProcessing, true},
		{StatusReceived, StatusObserved, false},
		{StatusProcessing, StatusObserved, true},
		{StatusObserved, StatusProcessing, true},
		{StatusObserved, StatusReceived, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

// Completed is only ever set by the admin-voucher attach, never by a plain
// status update, so no state may transition to it.
func TestCompletedIsNotReachableByStatusUpdate(t *testing.T) {
	for _, from := range []TransactionStatus{StatusPending, StatusReceived, StatusProcessing, StatusObserved, StatusCancelled} {
		assert.False(t, from.CanTransitionTo(StatusCompleted), "from %s", from)
	}
}

func TestCancellableFromAnyNonTerminalState(t *testing.T) {
	for _, from := range []TransactionStatus{StatusPending, StatusReceived, StatusProcessing, StatusObserved} {
		assert.True(t, from.CanTransitionTo(StatusCancelled), "from %s", from)
	}
	assert.False(t, StatusCompleted.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusCancelled))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusObserved.IsTerminal())
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusPending))
	assert.True(t, IsValidStatus(StatusObserved))
	assert.False(t, IsValidStatus("shipped"))
	assert.False(t, IsValidStatus(""))
}
