package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusConfirmed, StatusShipped, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusDelivered, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusShipped, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusCanBeCancelled(t *testing.T) {
	require.True(t, StatusPending.CanBeCancelled())
	require.True(t, StatusConfirmed.CanBeCancelled())
	require.False(t, StatusShipped.CanBeCancelled())
	require.False(t, StatusDelivered.CanBeCancelled())
	require.False(t, StatusCancelled.CanBeCancelled())
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled} {
		require.True(t, s.IsValid())
	}
	require.False(t, OrderStatus("refunded").IsValid())
	require.False(t, OrderStatus("").IsValid())
}
