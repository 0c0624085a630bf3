package client

import (
	"bookmyslot/internal/lib/logger/handlers/slogdiscard"
	"bookmyslot/internal/models"
	"context"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", srv.Client(), slogdiscard.NewDiscardLogger())
}

func TestListEvents(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		_, _ = io.WriteString(w, `[
			{"id":"e1","title":"Office hours","description":null,"creator_name":"Ada",
			 "created_at":"2024-01-01T10:00:00Z","total_slots":3,"available_slots":2}
		]`)
	})

	events, err := c.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "Office hours", events[0].Title)
	assert.Nil(t, events[0].Description)
	assert.Equal(t, 3, events[0].TotalSlots)
	assert.Equal(t, 2, events[0].AvailableSlots)
}

func TestListEvents_NullIsEmpty(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})

	events, err := c.ListEvents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestGetEvent(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/abc-123", r.URL.Path)

		_, _ = io.WriteString(w, `{
			"event":{"id":"abc-123","title":"Demo","creator_name":"Ada","creator_email":"ada@example.com",
			         "created_at":"2024-01-01T10:00:00Z","updated_at":null},
			"time_slots":[{"id":"s1","start_time":"2024-01-10T15:00:00Z","end_time":"2024-01-10T16:00:00Z",
			               "max_bookings":1,"current_bookings":0,"is_available":true}]
		}`)
	})

	detail, err := c.GetEvent(context.Background(), "abc-123")
	require.NoError(t, err)

	assert.Equal(t, "Demo", detail.Event.Title)
	assert.Equal(t, "ada@example.com", detail.Event.CreatorEmail)
	require.Len(t, detail.TimeSlots, 1)
	assert.True(t, detail.TimeSlots[0].Bookable())
}

func TestGetEvent_NotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Event not found"}`)
	})

	_, err := c.GetEvent(context.Background(), "missing")
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Equal(t, "Event not found", reqErr.Message)
	assert.True(t, IsNotFound(err))
}

func TestCreateEvent(t *testing.T) {
	t.Parallel()

	draft := models.EventDraft{
		Title:        "Mentoring",
		CreatorName:  "Ada",
		CreatorEmail: "ada@example.com",
		TimeSlots: []models.SlotDraft{
			{StartTime: "2024-01-10T15:00:00.000+00:00", EndTime: "2024-01-10T16:00:00.000+00:00", MaxBookings: 2},
		},
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Mentoring", got["title"])
		assert.NotContains(t, got, "description")
		slots, ok := got["time_slots"].([]any)
		require.True(t, ok)
		require.Len(t, slots, 1)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"new-id","title":"Mentoring","creator_name":"Ada",
			"creator_email":"ada@example.com","created_at":"2024-01-01T10:00:00Z"}`)
	})

	event, err := c.CreateEvent(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "new-id", event.ID)
}

func TestCreateEvent_ValidationDetail(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":[{"loc":["body","creator_email"],"msg":"value is not a valid email address"},
			{"loc":["body","time_slots",0,"end_time"],"msg":"end_time must be after start_time"}]}`)
	})

	_, err := c.CreateEvent(context.Background(), models.EventDraft{})

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusUnprocessableEntity, reqErr.Status)
	assert.Equal(t, "value is not a valid email address; end_time must be after start_time", reqErr.Message)
}

func TestCreateBooking(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/events/e1/bookings", r.URL.Path)
		assert.Equal(t, "s1", r.URL.Query().Get("slot_id"))

		var got models.Attendee
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, models.Attendee{Name: "Grace", Email: "grace@example.com"}, got)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"b1","attendee_name":"Grace","attendee_email":"grace@example.com",
			"created_at":"2024-01-02T10:00:00Z",
			"time_slot":{"id":"s1","start_time":"2024-01-10T15:00:00Z","end_time":"2024-01-10T16:00:00Z",
			             "max_bookings":1,"current_bookings":1,"is_available":false}}`)
	})

	booking, err := c.CreateBooking(context.Background(), "e1", "s1", models.Attendee{Name: "Grace", Email: "grace@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "b1", booking.ID)
	assert.Equal(t, 1, booking.TimeSlot.CurrentBookings)
	assert.False(t, booking.TimeSlot.Bookable())
}

func TestCreateBooking_Conflict(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail":"Time slot is fully booked"}`)
	})

	_, err := c.CreateBooking(context.Background(), "e1", "s1", models.Attendee{Name: "Grace", Email: "grace@example.com"})

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "Time slot is fully booked", reqErr.Message)
}

func TestListBookingsByEmail(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/jane doe+x@example.com/bookings", r.URL.Path)

		_, _ = io.WriteString(w, `[]`)
	})

	bookings, err := c.ListBookingsByEmail(context.Background(), "jane doe+x@example.com")
	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestRequestError_FallsBackToStatusText(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `<html>upstream down</html>`)
	})

	_, err := c.ListEvents(context.Background())

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusBadGateway, reqErr.Status)
	assert.Equal(t, "Bad Gateway", reqErr.Message)
	assert.False(t, IsNotFound(err))
}

func TestMalformedBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"event":`)
	})

	_, err := c.GetEvent(context.Background(), "e1")
	require.Error(t, err)

	var reqErr *RequestError
	assert.False(t, errors.As(err, &reqErr))
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListEvents(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
