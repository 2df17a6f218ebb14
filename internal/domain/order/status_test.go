package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{
		StatusPending, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, Status("paid").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	for _, next := range []Status{
		StatusConfirmed, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled,
	} {
		assert.True(t, StatusPending.CanTransitionTo(next), string(next))
	}

	assert.False(t, StatusPending.CanTransitionTo(StatusPending))
	assert.False(t, StatusPending.CanTransitionTo(Status("paid")))
	assert.False(t, StatusShipped.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
}
