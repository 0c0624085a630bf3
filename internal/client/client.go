// Package client talks to the booking REST service.
package client

import (
	"bookmyslot/internal/lib/logger/handlers/slogdiscard"
	"bookmyslot/internal/models"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New returns a client for the API rooted at baseURL. A nil httpClient means
// http.DefaultClient and a nil logger discards output.
func New(baseURL string, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = slogdiscard.NewDiscardLogger()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

func (c *Client) ListEvents(ctx context.Context) ([]models.EventSummary, error) {
	const op = "client.ListEvents"

	var events []models.EventSummary
	if err := c.do(ctx, http.MethodGet, "/events", nil, &events); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if events == nil {
		events = []models.EventSummary{}
	}

	return events, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (*models.EventDetail, error) {
	const op = "client.GetEvent"

	var detail models.EventDetail
	if err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id), nil, &detail); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if detail.TimeSlots == nil {
		detail.TimeSlots = []models.TimeSlot{}
	}

	return &detail, nil
}

func (c *Client) CreateEvent(ctx context.Context, draft models.EventDraft) (*models.Event, error) {
	const op = "client.CreateEvent"

	var event models.Event
	if err := c.do(ctx, http.MethodPost, "/events", draft, &event); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &event, nil
}

func (c *Client) CreateBooking(ctx context.Context, eventID, slotID string, attendee models.Attendee) (*models.Booking, error) {
	const op = "client.CreateBooking"

	path := "/events/" + url.PathEscape(eventID) + "/bookings?" + url.Values{"slot_id": {slotID}}.Encode()

	var booking models.Booking
	if err := c.do(ctx, http.MethodPost, path, attendee, &booking); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &booking, nil
}

func (c *Client) ListBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	const op = "client.ListBookingsByEmail"

	var bookings []models.Booking
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(email)+"/bookings", nil, &bookings); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if bookings == nil {
		bookings = []models.Booking{}
	}

	return bookings, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("api call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp)
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return nil
}
