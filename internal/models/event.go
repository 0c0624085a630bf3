package models

// EventSummary is one row of the event list.
type EventSummary struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	CreatorName    string  `json:"creator_name"`
	CreatedAt      string  `json:"created_at"`
	TotalSlots     int     `json:"total_slots"`
	AvailableSlots int     `json:"available_slots"`
}

type Event struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	CreatorName  string  `json:"creator_name"`
	CreatorEmail string  `json:"creator_email"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    *string `json:"updated_at"`
}

// EventDetail is an event together with all of its time slots.
type EventDetail struct {
	Event     Event      `json:"event"`
	TimeSlots []TimeSlot `json:"time_slots"`
}

// TimeSlot timestamps are UTC ISO-8601 strings as received on the wire.
type TimeSlot struct {
	ID              string `json:"id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	MaxBookings     int    `json:"max_bookings"`
	CurrentBookings int    `json:"current_bookings"`
	IsAvailable     bool   `json:"is_available"`
	Event           *Event `json:"event,omitempty"`
}

// Bookable reports whether the slot still has capacity and has not been
// closed by the backend.
func (s TimeSlot) Bookable() bool {
	return s.IsAvailable && s.CurrentBookings < s.MaxBookings
}

// EventDraft is the body of a create-event request.
type EventDraft struct {
	Title        string      `json:"title"`
	Description  *string     `json:"description,omitempty"`
	CreatorName  string      `json:"creator_name"`
	CreatorEmail string      `json:"creator_email"`
	TimeSlots    []SlotDraft `json:"time_slots"`
}

type SlotDraft struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	MaxBookings int    `json:"max_bookings"`
}
