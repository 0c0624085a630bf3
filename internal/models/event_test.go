package models

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestTimeSlotBookable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		slot     TimeSlot
		expected bool
	}{
		{name: "Free capacity", slot: TimeSlot{MaxBookings: 2, CurrentBookings: 1, IsAvailable: true}, expected: true},
		{name: "Empty slot", slot: TimeSlot{MaxBookings: 1, CurrentBookings: 0, IsAvailable: true}, expected: true},
		{name: "Full", slot: TimeSlot{MaxBookings: 1, CurrentBookings: 1, IsAvailable: true}, expected: false},
		{name: "Overbooked", slot: TimeSlot{MaxBookings: 1, CurrentBookings: 3, IsAvailable: true}, expected: false},
		{name: "Closed by backend", slot: TimeSlot{MaxBookings: 5, CurrentBookings: 0, IsAvailable: false}, expected: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.slot.Bookable())
		})
	}
}
