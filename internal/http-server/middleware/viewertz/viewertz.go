// Package viewertz resolves the timezone of the browser making the request.
// The layout script stores the browser's IANA zone in a cookie; a ?tz= query
// parameter overrides it and refreshes the cookie.
package viewertz

import (
	"bookmyslot/internal/clock"
	"bookmyslot/internal/tz"
	"context"
	"net/http"
	"net/url"
	"time"
)

const (
	CookieName = "tz"
	QueryParam = "tz"

	cookieMaxAge = 365 * 24 * time.Hour
)

type ctxKey struct{}

// New returns middleware that stores a *tz.Converter for the viewer in the
// request context. Unknown or missing zones fall back to defaultZone, and an
// unknown defaultZone falls back to the zone of the running process.
func New(defaultZone string, c clock.Clock) func(next http.Handler) http.Handler {
	if !tz.Valid(defaultZone) {
		defaultZone = tz.New(tz.System(), c).Timezone()
	}

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			name := defaultZone

			if q := r.URL.Query().Get(QueryParam); tz.Valid(q) {
				name = q
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    url.QueryEscape(q),
					Path:     "/",
					MaxAge:   int(cookieMaxAge.Seconds()),
					SameSite: http.SameSiteLaxMode,
				})
			} else if zone, ok := fromCookie(r); ok {
				name = zone
			}

			ctx := WithConverter(r.Context(), tz.New(tz.Static(name), c))

			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}

func fromCookie(r *http.Request) (string, bool) {
	ck, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}

	zone, err := url.QueryUnescape(ck.Value)
	if err != nil || !tz.Valid(zone) {
		return "", false
	}

	return zone, true
}

func WithConverter(ctx context.Context, conv *tz.Converter) context.Context {
	return context.WithValue(ctx, ctxKey{}, conv)
}

// Converter returns the viewer's converter, or a UTC one when the middleware
// did not run.
func Converter(ctx context.Context) *tz.Converter {
	if conv, ok := ctx.Value(ctxKey{}).(*tz.Converter); ok {
		return conv
	}

	return tz.New(tz.Static(tz.DefaultTimezone), nil)
}
