package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// RequestError is returned for every non-2xx response.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a RequestError with status 404.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldDetail struct {
	Msg string `json:"msg"`
}

func newRequestError(resp *http.Response) *RequestError {
	reqErr := &RequestError{
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return reqErr
	}

	if msg := detailMessage(raw); msg != "" {
		reqErr.Message = msg
	}

	return reqErr
}

// detailMessage extracts the "detail" field, which is either a string or a
// list of field errors.
func detailMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(body.Detail, &msg); err == nil {
		return msg
	}

	var fields []fieldDetail
	if err := json.Unmarshal(body.Detail, &fields); err == nil {
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			if f.Msg != "" {
				msgs = append(msgs, f.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
