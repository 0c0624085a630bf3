package views

import (
	"bookmyslot/internal/models"
	"bookmyslot/internal/tz"
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	ActionAddSlot    = "add_slot"
	ActionRemoveSlot = "remove_slot"
	ActionSubmit     = "submit"
)

// SlotInput is a slot that has already been added to the form. Its times are
// in the UTC wire format.
type SlotInput struct {
	StartTime   string `form:"start_time" json:"start_time"`
	EndTime     string `form:"end_time" json:"end_time"`
	MaxBookings int    `form:"max_bookings" json:"max_bookings"`
}

// NewSlotInput holds the zone-less values of the datetime-local inputs.
type NewSlotInput struct {
	StartTime   string `form:"start_time" json:"start_time"`
	EndTime     string `form:"end_time" json:"end_time"`
	MaxBookings string `form:"max_bookings" json:"max_bookings"`
}

// CreateEventForm is everything posted by the create-event page.
type CreateEventForm struct {
	Title        string       `form:"title" json:"title" validate:"required"`
	Description  string       `form:"description" json:"description"`
	CreatorName  string       `form:"creator_name" json:"creator_name" validate:"required"`
	CreatorEmail string       `form:"creator_email" json:"creator_email" validate:"required,email"`
	Slots        []SlotInput  `form:"time_slots" json:"time_slots"`
	NewSlot      NewSlotInput `form:"new_slot" json:"new_slot"`
	Action       string       `form:"action" json:"-"`
	Remove       string       `form:"remove" json:"-"`
}

// NewCreateEventForm returns an empty form with one seat per slot preselected.
func NewCreateEventForm() CreateEventForm {
	return CreateEventForm{
		Slots:   []SlotInput{},
		NewSlot: NewSlotInput{MaxBookings: "1"},
	}
}

type SlotRow struct {
	Index       int    `json:"index"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	MaxBookings int    `json:"max_bookings"`
}

type CreateEventState struct {
	Form     CreateEventForm `json:"form"`
	Rows     []SlotRow       `json:"rows"`
	Timezone string          `json:"timezone"`
	Notice   *Notice         `json:"notice,omitempty"`
}

// ShowCreateEvent renders the accumulated slots in the viewer timezone.
func ShowCreateEvent(f CreateEventForm, conv *tz.Converter, n *Notice) (CreateEventState, error) {
	rows := make([]SlotRow, 0, len(f.Slots))

	for i, slot := range f.Slots {
		starts, err := conv.Format(slot.StartTime, tz.PatternDateTime)
		if err != nil {
			return CreateEventState{}, err
		}

		ends, err := conv.Format(slot.EndTime, tz.PatternDateTime)
		if err != nil {
			return CreateEventState{}, err
		}

		rows = append(rows, SlotRow{
			Index:       i,
			StartsAt:    starts,
			EndsAt:      ends,
			MaxBookings: slot.MaxBookings,
		})
	}

	if f.Slots == nil {
		f.Slots = []SlotInput{}
	}

	return CreateEventState{
		Form:     f,
		Rows:     rows,
		Timezone: conv.Abbreviation(),
		Notice:   n,
	}, nil
}

// AddSlot validates the pending slot, converts it to UTC and appends it.
func AddSlot(f CreateEventForm, conv *tz.Converter) (CreateEventForm, error) {
	in := f.NewSlot

	if strings.TrimSpace(in.StartTime) == "" || strings.TrimSpace(in.EndTime) == "" {
		return f, &ValidationError{Field: "new_slot", Message: "Please fill in both start and end times"}
	}

	start, err := conv.ParseLocal(in.StartTime)
	if err != nil {
		return f, &ValidationError{Field: "new_slot.start_time", Message: "Start time is not a valid date and time"}
	}

	end, err := conv.ParseLocal(in.EndTime)
	if err != nil {
		return f, &ValidationError{Field: "new_slot.end_time", Message: "End time is not a valid date and time"}
	}

	if !end.After(start) {
		return echoLocal(f, conv, start, end), &ValidationError{Field: "new_slot.end_time", Message: "End time must be after start time"}
	}

	maxBookings := 1
	if raw := strings.TrimSpace(in.MaxBookings); raw != "" {
		maxBookings, err = strconv.Atoi(raw)
		if err != nil || maxBookings < 1 {
			return echoLocal(f, conv, start, end), &ValidationError{Field: "new_slot.max_bookings", Message: "Max bookings must be at least 1"}
		}
	}

	slots := make([]SlotInput, 0, len(f.Slots)+1)
	slots = append(slots, f.Slots...)
	slots = append(slots, SlotInput{
		StartTime:   tz.FormatWire(start),
		EndTime:     tz.FormatWire(end),
		MaxBookings: maxBookings,
	})

	f.Slots = slots
	f.NewSlot = NewSlotInput{MaxBookings: "1"}

	return f, nil
}

// echoLocal refills the pending inputs with the local times that would have
// been sent. A time inside a DST gap shows up shifted.
func echoLocal(f CreateEventForm, conv *tz.Converter, start, end time.Time) CreateEventForm {
	if local, err := conv.ToLocalInput(tz.FormatWire(start)); err == nil {
		f.NewSlot.StartTime = local
	}
	if local, err := conv.ToLocalInput(tz.FormatWire(end)); err == nil {
		f.NewSlot.EndTime = local
	}

	return f
}

// RemoveSlot drops the slot at index i. Out of range indexes are ignored.
func RemoveSlot(f CreateEventForm, i int) CreateEventForm {
	if i < 0 || i >= len(f.Slots) {
		return f
	}

	slots := make([]SlotInput, 0, len(f.Slots)-1)
	slots = append(slots, f.Slots[:i]...)
	slots = append(slots, f.Slots[i+1:]...)
	f.Slots = slots

	return f
}

// ValidateEvent checks the form and builds the request body.
func ValidateEvent(f CreateEventForm) (models.EventDraft, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.CreatorName = strings.TrimSpace(f.CreatorName)
	f.CreatorEmail = strings.TrimSpace(f.CreatorEmail)

	if err := validateStruct(f); err != nil {
		var valErr *ValidationError
		if errors.As(err, &valErr) && strings.Contains(valErr.Message, "required") {
			valErr.Message = "Please fill in all required fields"
		}
		return models.EventDraft{}, err
	}

	if len(f.Slots) == 0 {
		return models.EventDraft{}, &ValidationError{Field: "time_slots", Message: "Please add at least one time slot"}
	}

	draft := models.EventDraft{
		Title:        f.Title,
		CreatorName:  f.CreatorName,
		CreatorEmail: f.CreatorEmail,
		TimeSlots:    make([]models.SlotDraft, 0, len(f.Slots)),
	}

	if desc := strings.TrimSpace(f.Description); desc != "" {
		draft.Description = &desc
	}

	for _, slot := range f.Slots {
		start, err := tz.ParseInstant(slot.StartTime)
		if err != nil {
			return models.EventDraft{}, err
		}

		end, err := tz.ParseInstant(slot.EndTime)
		if err != nil {
			return models.EventDraft{}, err
		}

		if !end.After(start) {
			return models.EventDraft{}, &ValidationError{Field: "time_slots", Message: "End time must be after start time"}
		}

		if slot.MaxBookings < 1 {
			return models.EventDraft{}, &ValidationError{Field: "time_slots", Message: "Max bookings must be at least 1"}
		}

		draft.TimeSlots = append(draft.TimeSlots, models.SlotDraft{
			StartTime:   tz.FormatWire(start),
			EndTime:     tz.FormatWire(end),
			MaxBookings: slot.MaxBookings,
		})
	}

	return draft, nil
}
