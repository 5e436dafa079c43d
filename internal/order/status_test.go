package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"Pending to packed", StatusPending, StatusPacked, true},
		{"Pending to processing", StatusPending, StatusProcessing, true},
		{"Packed to collected", StatusPacked, StatusCollected, true},
		{"Processing to completed", StatusProcessing, StatusCompleted, true},
		{"Pending cancelled", StatusPending, StatusCancelled, true},
		{"Packed cancelled", StatusPacked, StatusCancelled, true},
		{"Pending straight to collected", StatusPending, StatusCollected, false},
		{"Packed to processing", StatusPacked, StatusProcessing, false},
		{"Collected is terminal", StatusCollected, StatusPacked, false},
		{"Completed is terminal", StatusCompleted, StatusCancelled, false},
		{"Cancelled is terminal", StatusCancelled, StatusPending, false},
		{"No self transition", StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{
		StatusPending, StatusPacked, StatusCollected,
		StatusProcessing, StatusCompleted, StatusCancelled,
	} {
		assert.True(t, ValidStatus(s), string(s))
	}
	assert.False(t, ValidStatus(Status("shipped")))
	assert.False(t, ValidStatus(Status("")))
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(StatusCollected))
	assert.True(t, Terminal(StatusCompleted))
	assert.True(t, Terminal(StatusCancelled))
	assert.False(t, Terminal(StatusPending))
	assert.False(t, Terminal(StatusPacked))
	assert.False(t, Terminal(StatusProcessing))
}

func TestActiveStatuses(t *testing.T) {
	assert.Equal(t, []Status{StatusPending, StatusPacked, StatusProcessing}, ActiveStatuses())
}
