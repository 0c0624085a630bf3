package views

import (
	"bookmyslot/internal/models"
	"bookmyslot/internal/tz"
	"strings"
)

type SlotView struct {
	ID              string `json:"id"`
	StartsAt        string `json:"starts_at"`
	EndsAt          string `json:"ends_at"`
	MaxBookings     int    `json:"max_bookings"`
	CurrentBookings int    `json:"current_bookings"`
	Bookable        bool   `json:"bookable"`
}

// BookingForm is the attendee form posted from the detail page.
type BookingForm struct {
	SlotID string `form:"slot_id" json:"slot_id" validate:"required"`
	Name   string `form:"attendee_name" json:"attendee_name" validate:"required"`
	Email  string `form:"attendee_email" json:"attendee_email" validate:"required,email"`
}

type DetailState struct {
	Status      Status       `json:"status"`
	Event       models.Event `json:"event"`
	Description string       `json:"description,omitempty"`
	CreatedOn   string       `json:"created_on"`
	Available   []SlotView   `json:"available"`
	Booked      []SlotView   `json:"booked"`
	Selected    *SlotView    `json:"selected,omitempty"`
	Form        BookingForm  `json:"form"`
	Notice      *Notice      `json:"notice,omitempty"`
}

// LoadDetail splits the event's slots into bookable and booked lists, keeping
// the order the API returned them in.
func LoadDetail(detail *models.EventDetail, conv *tz.Converter) (DetailState, error) {
	createdOn, err := conv.Format(detail.Event.CreatedAt, tz.PatternDate)
	if err != nil {
		return DetailState{}, err
	}

	state := DetailState{
		Status:    StatusLoaded,
		Event:     detail.Event,
		CreatedOn: createdOn,
		Available: []SlotView{},
		Booked:    []SlotView{},
	}

	if detail.Event.Description != nil {
		state.Description = *detail.Event.Description
	}

	for _, slot := range detail.TimeSlots {
		view, err := slotView(slot, conv)
		if err != nil {
			return DetailState{}, err
		}

		if view.Bookable {
			state.Available = append(state.Available, view)
		} else {
			state.Booked = append(state.Booked, view)
		}
	}

	return state, nil
}

func slotView(slot models.TimeSlot, conv *tz.Converter) (SlotView, error) {
	starts, err := conv.Format(slot.StartTime, tz.PatternDateTime)
	if err != nil {
		return SlotView{}, err
	}

	ends, err := conv.Format(slot.EndTime, tz.PatternTime)
	if err != nil {
		return SlotView{}, err
	}

	return SlotView{
		ID:              slot.ID,
		StartsAt:        starts,
		EndsAt:          ends,
		MaxBookings:     slot.MaxBookings,
		CurrentBookings: slot.CurrentBookings,
		Bookable:        slot.Bookable(),
	}, nil
}

// SelectSlot opens the booking form for one of the available slots. Booked
// or unknown slots leave nothing selected.
func SelectSlot(s DetailState, slotID string) DetailState {
	s.Selected = nil
	s.Form.SlotID = ""

	for i := range s.Available {
		if s.Available[i].ID == slotID {
			selected := s.Available[i]
			s.Selected = &selected
			s.Form.SlotID = slotID
			break
		}
	}

	return s
}

// WithForm keeps what the attendee typed so a failed submission can be
// corrected without retyping.
func WithForm(s DetailState, f BookingForm) DetailState {
	s = SelectSlot(s, f.SlotID)
	s.Form.Name = f.Name
	s.Form.Email = f.Email

	return s
}

func WithNotice(s DetailState, n *Notice) DetailState {
	s.Notice = n
	return s
}

// ValidateBooking checks the attendee form before it is sent and returns the
// slot to book.
func ValidateBooking(f BookingForm) (string, models.Attendee, error) {
	f.SlotID = strings.TrimSpace(f.SlotID)
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)

	if err := validateStruct(f); err != nil {
		return "", models.Attendee{}, err
	}

	return f.SlotID, models.Attendee{Name: f.Name, Email: f.Email}, nil
}
