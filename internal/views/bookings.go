package views

import (
	"bookmyslot/internal/models"
	"bookmyslot/internal/tz"
	"strings"
)

type LookupForm struct {
	Email string `form:"email" json:"email"`
}

type BookingView struct {
	ID              string `json:"id"`
	EventTitle      string `json:"event_title"`
	AttendeeName    string `json:"attendee_name"`
	AttendeeEmail   string `json:"attendee_email"`
	BookedOn        string `json:"booked_on"`
	StartsAt        string `json:"starts_at"`
	EndsAt          string `json:"ends_at"`
	CurrentBookings int    `json:"current_bookings"`
	MaxBookings     int    `json:"max_bookings"`
}

type LookupState struct {
	Status   Status        `json:"status"`
	Email    string        `json:"email"`
	Searched bool          `json:"searched"`
	Bookings []BookingView `json:"bookings"`
	Notice   *Notice       `json:"notice,omitempty"`
}

func NewLookup() LookupState {
	return LookupState{Status: StatusIdle, Bookings: []BookingView{}}
}

// ChangeEmail updates the search box. A different address invalidates the
// previous result.
func ChangeEmail(s LookupState, email string) LookupState {
	if email != s.Email {
		s.Searched = false
		s.Bookings = []BookingView{}
	}
	s.Email = email

	return s
}

// StartLookup marks a search for email as in flight.
func StartLookup(s LookupState, email string) LookupState {
	s = ChangeEmail(s, email)
	s.Status = StatusLoading
	s.Searched = false
	s.Notice = nil

	return s
}

// ValidateLookup returns the trimmed address to search for.
func ValidateLookup(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", &ValidationError{Field: "email", Message: "Please enter an email address"}
	}

	return email, nil
}

// LoadBookings records a completed search. An empty result is a normal,
// loaded state.
func LoadBookings(s LookupState, bookings []models.Booking, conv *tz.Converter) (LookupState, error) {
	views := make([]BookingView, 0, len(bookings))

	for _, b := range bookings {
		view, err := bookingView(b, conv)
		if err != nil {
			return s, err
		}
		views = append(views, view)
	}

	s.Status = StatusLoaded
	s.Searched = true
	s.Bookings = views
	s.Notice = nil

	return s, nil
}

// LookupFailed keeps the address but clears any earlier result.
func LookupFailed(s LookupState, msg string) LookupState {
	s.Status = StatusError
	s.Searched = false
	s.Bookings = []BookingView{}
	s.Notice = Failure(msg)

	return s
}

// NoneFound reports whether a search ran and matched nothing.
func (s LookupState) NoneFound() bool {
	return s.Searched && s.Status == StatusLoaded && len(s.Bookings) == 0
}

func bookingView(b models.Booking, conv *tz.Converter) (BookingView, error) {
	bookedOn, err := conv.Format(b.CreatedAt, tz.PatternDateTime)
	if err != nil {
		return BookingView{}, err
	}

	starts, err := conv.Format(b.TimeSlot.StartTime, tz.PatternDateTime)
	if err != nil {
		return BookingView{}, err
	}

	ends, err := conv.Format(b.TimeSlot.EndTime, tz.PatternTime)
	if err != nil {
		return BookingView{}, err
	}

	title := "Event"
	if b.TimeSlot.Event != nil && b.TimeSlot.Event.Title != "" {
		title = b.TimeSlot.Event.Title
	}

	return BookingView{
		ID:              b.ID,
		EventTitle:      title,
		AttendeeName:    b.AttendeeName,
		AttendeeEmail:   b.AttendeeEmail,
		BookedOn:        bookedOn,
		StartsAt:        starts,
		EndsAt:          ends,
		CurrentBookings: b.TimeSlot.CurrentBookings,
		MaxBookings:     b.TimeSlot.MaxBookings,
	}, nil
}
