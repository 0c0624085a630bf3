package tz

import (
	"errors"
	"fmt"
	"time"
)

// Pattern selects how an instant is rendered for display.
type Pattern int

const (
	// PatternDate renders "January 10th, 2024".
	PatternDate Pattern = iota
	// PatternTime renders "3:00 PM".
	PatternTime
	// PatternDateTime renders "January 10th, 2024 3:00 PM".
	PatternDateTime
)

func (p Pattern) format(t time.Time) string {
	switch p {
	case PatternTime:
		return t.Format("3:04 PM")
	case PatternDateTime:
		return longDate(t) + " " + t.Format("3:04 PM")
	default:
		return longDate(t)
	}
}

func longDate(t time.Time) string {
	return fmt.Sprintf("%s %s, %d", t.Month(), ordinal(t.Day()), t.Year())
}

func ordinal(day int) string {
	suffix := "th"
	switch day % 100 {
	case 11, 12, 13:
	default:
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}

	return fmt.Sprintf("%d%s", day, suffix)
}

// ErrEmpty is wrapped by ParseError when the input is blank.
var ErrEmpty = errors.New("empty timestamp")

// ParseError reports a timestamp that could not be parsed.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed timestamp %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
