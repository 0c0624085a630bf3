package web

import (
	"bookmyslot/internal/client"
	"bookmyslot/internal/tz"
	"bookmyslot/internal/views"
	"context"
	"errors"
	"net/http"
)

const msgGeneric = "Something went wrong"

// StatusFor maps a failed operation to the status and message shown to the
// viewer. fallback replaces messages the viewer cannot act on.
func StatusFor(err error, fallback string) (int, string) {
	var valErr *views.ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadRequest, valErr.Message
	}

	var reqErr *client.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Status >= http.StatusInternalServerError {
			return http.StatusBadGateway, fallback
		}
		return reqErr.Status, reqErr.Message
	}

	var parseErr *tz.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusInternalServerError, msgGeneric
	}

	return http.StatusBadGateway, fallback
}

// Abandoned reports whether the viewer went away while the request was in
// flight, in which case nothing should be written.
func Abandoned(r *http.Request, err error) bool {
	return errors.Is(err, context.Canceled) || r.Context().Err() != nil
}
