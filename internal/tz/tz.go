// Package tz converts between the UTC instants exchanged with the booking API
// and the viewer's local timezone.
//
// Converting a local value back to UTC is only the inverse of ToLocalInput
// when no offset transition is involved. Inside a fall-back hour two instants
// share one local value and only the earlier offset is chosen; inside a
// spring-forward gap the local value does not exist and is normalised by the
// time package. Callers must not expect a round trip in those windows.
package tz

import (
	"bookmyslot/internal/clock"
	"os"
	"strings"
	"time"
	_ "time/tzdata"
)

// DefaultTimezone is used whenever the viewer timezone cannot be resolved.
const DefaultTimezone = "UTC"

const (
	localMinuteLayout = "2006-01-02T15:04"
	localSecondLayout = "2006-01-02T15:04:05"
	dateLayout        = "2006-01-02"

	// wireLayout keeps millisecond precision and an explicit offset.
	wireLayout = "2006-01-02T15:04:05.000-07:00"
)

// Provider supplies the IANA timezone identifier of the viewer.
type Provider interface {
	Timezone() string
}

// Static is a Provider that always answers with the same identifier.
type Static string

func (s Static) Timezone() string {
	return string(s)
}

type systemProvider struct{}

// System returns a Provider reading the timezone of the running process.
func System() Provider {
	return systemProvider{}
}

func (systemProvider) Timezone() string {
	if name := strings.TrimPrefix(os.Getenv("TZ"), ":"); name != "" {
		return name
	}

	return time.Local.String()
}

// Resolve loads the location named by p. It never fails: a nil provider, an
// empty name or an unknown name all resolve to UTC.
func Resolve(p Provider) *time.Location {
	if p == nil {
		return time.UTC
	}

	name := strings.TrimSpace(p.Timezone())
	if name == "" || name == "Local" {
		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}

	return loc
}

// Valid reports whether name is a loadable IANA identifier.
func Valid(name string) bool {
	if name == "" || name == "Local" {
		return false
	}

	_, err := time.LoadLocation(name)
	return err == nil
}

// Converter performs conversions for one viewer timezone.
type Converter struct {
	loc   *time.Location
	clock clock.Clock
}

func New(p Provider, c clock.Clock) *Converter {
	if c == nil {
		c = clock.NewSystem()
	}

	return &Converter{
		loc:   Resolve(p),
		clock: c,
	}
}

// Timezone returns the resolved IANA identifier.
func (c *Converter) Timezone() string {
	return c.loc.String()
}

// Abbreviation returns the short zone name in effect right now, e.g. "PST".
func (c *Converter) Abbreviation() string {
	name, _ := c.clock.Now().In(c.loc).Zone()
	return name
}

// Format renders a wire instant in the viewer timezone.
func (c *Converter) Format(instant string, p Pattern) (string, error) {
	t, err := ParseInstant(instant)
	if err != nil {
		return "", err
	}

	return c.FormatTime(t, p), nil
}

// FormatTime renders t in the viewer timezone using the offset in effect at t.
func (c *Converter) FormatTime(t time.Time, p Pattern) string {
	return p.format(t.In(c.loc))
}

// ToLocalInput renders a wire instant as a zone-less local value suitable for
// a datetime-local input.
func (c *Converter) ToLocalInput(instant string) (string, error) {
	t, err := ParseInstant(instant)
	if err != nil {
		return "", err
	}

	return t.In(c.loc).Format(localSecondLayout), nil
}

// ParseLocal interprets a zone-less local value in the viewer timezone.
func (c *Converter) ParseLocal(local string) (time.Time, error) {
	local = strings.TrimSpace(local)
	if local == "" {
		return time.Time{}, &ParseError{Input: local, Err: ErrEmpty}
	}

	layout := localSecondLayout
	if len(local) == len(localMinuteLayout) {
		layout = localMinuteLayout
	}

	t, err := time.ParseInLocation(layout, local, c.loc)
	if err != nil {
		return time.Time{}, &ParseError{Input: local, Err: err}
	}

	return t, nil
}

// LocalToUTC converts a zone-less local value into the UTC wire format.
func (c *Converter) LocalToUTC(local string) (string, error) {
	t, err := c.ParseLocal(local)
	if err != nil {
		return "", err
	}

	return FormatWire(t), nil
}

// FormatWire renders t in UTC with millisecond precision and an explicit offset.
func FormatWire(t time.Time) string {
	return t.UTC().Round(time.Millisecond).Format(wireLayout)
}

// Offset layouts tried after RFC 3339. Fractional seconds are accepted after
// the seconds field without being spelled out.
var offsetLayouts = []string{
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04Z07",
}

// Zone-less layouts, read as UTC. A bare date is midnight UTC.
var naiveLayouts = []string{localSecondLayout, localMinuteLayout, dateLayout}

// ParseInstant parses an ISO-8601 wire timestamp. Extended and basic offsets
// are accepted at second or minute precision; timestamps without an offset
// are taken to be UTC.
func ParseInstant(instant string) (time.Time, error) {
	instant = strings.TrimSpace(instant)
	if instant == "" {
		return time.Time{}, &ParseError{Input: instant, Err: ErrEmpty}
	}

	t, err := time.Parse(time.RFC3339Nano, instant)
	if err == nil {
		return t, nil
	}

	for _, layout := range offsetLayouts {
		if t, perr := time.Parse(layout, instant); perr == nil {
			return t, nil
		}
	}

	for _, layout := range naiveLayouts {
		if naive, nerr := time.ParseInLocation(layout, instant, time.UTC); nerr == nil {
			return naive, nil
		}
	}

	return time.Time{}, &ParseError{Input: instant, Err: err}
}
