package models

type Booking struct {
	ID            string   `json:"id"`
	AttendeeName  string   `json:"attendee_name"`
	AttendeeEmail string   `json:"attendee_email"`
	CreatedAt     string   `json:"created_at"`
	TimeSlot      TimeSlot `json:"time_slot"`
}

// Attendee is the body of a create-booking request.
type Attendee struct {
	Name  string `json:"attendee_name"`
	Email string `json:"attendee_email"`
}
