package getUserBookings

import (
	"bookmyslot/internal/client"
	"bookmyslot/internal/clock"
	"bookmyslot/internal/http-server/handlers/booking/getUserBookings/mocks"
	"bookmyslot/internal/http-server/middleware/viewertz"
	"bookmyslot/internal/lib/logger/handlers/slogdiscard"
	"bookmyslot/internal/models"
	"bookmyslot/internal/web"
	"context"
	"encoding/json"
	"errors"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newRouter(getter BookingsGetter) http.Handler {
	fixed := clock.NewFixed(time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC))
	handler := New(slogdiscard.NewDiscardLogger(), getter, web.MustNewRenderer())

	router := chi.NewRouter()
	router.Use(middleware.URLFormat)
	router.Use(viewertz.New("UTC", fixed))
	router.Get("/bookings", handler)
	router.Post("/bookings", handler)

	return router
}

func search(router http.Handler, email string) *httptest.ResponseRecorder {
	body := url.Values{"email": {email}}.Encode()

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

func testBooking(name, email string) models.Booking {
	return models.Booking{
		ID:            "b1",
		AttendeeName:  name,
		AttendeeEmail: email,
		CreatedAt:     "2024-01-02T08:15:00Z",
		TimeSlot: models.TimeSlot{
			ID:              "s1",
			StartTime:       "2024-01-10T15:00:00Z",
			EndTime:         "2024-01-10T16:00:00Z",
			MaxBookings:     4,
			CurrentBookings: 2,
			IsAvailable:     true,
			Event:           &models.Event{ID: "e1", Title: "Pairing Session"},
		},
	}
}

func TestGetUserBookingsIdle(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rr := httptest.NewRecorder()

	newRouter(mocks.NewBookingsGetter(t)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Search for your bookings")
	assert.Contains(t, rr.Body.String(), `<a href="/bookings" class="active">My Bookings</a>`)
}

func TestGetUserBookingsHandler(t *testing.T) {
	t.Parallel()

	name := gofakeit.Name()
	email := gofakeit.Email()

	testCases := []struct {
		name           string
		email          string
		mockSetup      func(m *mocks.BookingsGetter)
		expectedStatus int
		contains       []string
		notContains    []string
	}{
		{
			name:  "Bookings found",
			email: "  " + email + " ",
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("ListBookingsByEmail", mock.Anything, email).Return([]models.Booking{testBooking(name, email)}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			contains: []string{
				"Your Bookings (1)",
				"<h3>Pairing Session</h3>",
				"Booked on January 2nd, 2024 8:15 AM",
				"January 10th, 2024 3:00 PM until 4:00 PM",
				"Slot: 2/4 booked",
			},
			notContains: []string{"No bookings found"},
		},
		{
			name:  "Nothing found is not an error",
			email: email,
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("ListBookingsByEmail", mock.Anything, email).Return([]models.Booking{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			contains:       []string{"No bookings found"},
			notContains:    []string{`class="notice notice-error"`},
		},
		{
			name:           "Blank email is not sent",
			email:          "   ",
			mockSetup:      func(m *mocks.BookingsGetter) {},
			expectedStatus: http.StatusBadRequest,
			contains:       []string{"Please enter an email address"},
			notContains:    []string{"No bookings found"},
		},
		{
			name:  "Backend unavailable",
			email: email,
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("ListBookingsByEmail", mock.Anything, email).Return(nil, errors.New("connection refused")).Once()
			},
			expectedStatus: http.StatusBadGateway,
			contains:       []string{"Failed to fetch bookings"},
			notContains:    []string{"No bookings found", "Your Bookings"},
		},
		{
			name:  "Backend rejects address",
			email: email,
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("ListBookingsByEmail", mock.Anything, email).Return(nil,
					&client.RequestError{Status: http.StatusUnprocessableEntity, Message: "invalid email"}).Once()
			},
			expectedStatus: http.StatusUnprocessableEntity,
			contains:       []string{"invalid email"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getter := mocks.NewBookingsGetter(t)
			tc.mockSetup(getter)

			rr := search(newRouter(getter), tc.email)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			body := rr.Body.String()
			for _, s := range tc.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tc.notContains {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestGetUserBookingsByQuery(t *testing.T) {
	t.Parallel()

	getter := mocks.NewBookingsGetter(t)
	getter.On("ListBookingsByEmail", mock.Anything, "ada@example.com").Return([]models.Booking{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/bookings.json?email=ada@example.com", nil)
	rr := httptest.NewRecorder()

	newRouter(getter).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Status string `json:"status"`
		Page   struct {
			Data struct {
				Status   string            `json:"status"`
				Email    string            `json:"email"`
				Searched bool              `json:"searched"`
				Bookings []json.RawMessage `json:"bookings"`
			} `json:"data"`
		} `json:"page"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, "loaded", resp.Page.Data.Status)
	assert.Equal(t, "ada@example.com", resp.Page.Data.Email)
	assert.True(t, resp.Page.Data.Searched)
	assert.NotNil(t, resp.Page.Data.Bookings)
	assert.Empty(t, resp.Page.Data.Bookings)
}

func TestGetUserBookingsAbandoned(t *testing.T) {
	t.Parallel()

	getter := mocks.NewBookingsGetter(t)
	getter.On("ListBookingsByEmail", mock.Anything, "ada@example.com").Return(nil, context.Canceled).Once()

	rr := search(newRouter(getter), "ada@example.com")

	assert.Empty(t, rr.Body.String())
}
