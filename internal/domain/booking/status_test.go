package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusApproved))
	assert.True(t, CanTransition(StatusPending, StatusRejected))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusApproved, StatusCancelled))

	// Terminal states admit nothing.
	assert.False(t, CanTransition(StatusCancelled, StatusPending))
	assert.False(t, CanTransition(StatusRejected, StatusApproved))
	assert.False(t, CanTransition(StatusApproved, StatusPending))
}

func TestCanApproveOnlyPending(t *testing.T) {
	assert.NoError(t, CanApprove(StatusPending))

	err := CanApprove(StatusApproved)
	assert.Equal(t, "request_not_pending", httperr.BusinessCode(err))
	err = CanApprove(StatusCancelled)
	assert.Equal(t, "request_not_pending", httperr.BusinessCode(err))
}

func TestCanCancelStates(t *testing.T) {
	assert.NoError(t, CanCancel(StatusPending))
	assert.NoError(t, CanCancel(StatusApproved))

	err := CanCancel(StatusRejected)
	assert.Equal(t, "invalid_state", httperr.BusinessCode(err))
}
