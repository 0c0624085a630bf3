// Package views holds the state of each page and the pure functions that move
// it from one state to the next. Handlers own the network calls; nothing here
// performs I/O.
package views

import (
	"bookmyslot/internal/lib/api/response"
	"errors"
	"github.com/go-playground/validator/v10"
	"reflect"
	"strings"
)

// Status is the load state of a page.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a transient message shown at the top of a page.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func Success(msg string) *Notice {
	return &Notice{Kind: NoticeSuccess, Message: msg}
}

func Failure(msg string) *Notice {
	return &Notice{Kind: NoticeError, Message: msg}
}

// ValidationError blocks a submission before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validateErr validator.ValidationErrors
	if !errors.As(err, &validateErr) || len(validateErr) == 0 {
		return err
	}

	return &ValidationError{
		Field:   validateErr[0].Field(),
		Message: response.ValidationMessage(validateErr),
	}
}

// ErrorState backs the generic error page.
type ErrorState struct {
	Status Status  `json:"status"`
	Notice *Notice `json:"notice,omitempty"`
}

func ErrorPage(msg string) ErrorState {
	return ErrorState{Status: StatusError, Notice: Failure(msg)}
}
