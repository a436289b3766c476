package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/storefront/pkg/i18n"
)

const maxMessageLen = 512

var fallbackKeys = map[Kind]string{
	KindNetwork:      "error.network",
	KindRemote:       "error.unknown",
	KindUnknown:      "error.unknown",
	KindUnauthorized: "error.unauthorized",
	KindValidation:   "error.validation",
}

// Classify converts any error into the taxonomy using the built-in catalog
// in its default language. Already classified errors pass through.
func Classify(err error) *Error {
	return classify(i18n.Localizer{}, err)
}

// Classify converts err into the taxonomy with messages in the client's
// language.
func (c *Client) Classify(err error) *Error {
	return classify(c.Localizer(), err)
}

func classify(l i18n.Localizer, err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := AsError(err); ok {
		return e
	}
	kind := KindUnknown
	if isTransportError(err) {
		kind = KindNetwork
	}
	return &Error{Kind: kind, Message: l.T(fallbackKeys[kind]), Err: err, fallback: true}
}

func (c *Client) newError(kind Kind, status int, err error) *Error {
	return &Error{
		Kind:     kind,
		Status:   status,
		Message:  c.Localizer().T(fallbackKeys[kind]),
		Err:      err,
		fallback: true,
	}
}

// classifyResponse maps a non-2xx response. A 401 is Unauthorized only when
// the request carried credentials; otherwise it is an ordinary rejection.
func (c *Client) classifyResponse(status int, body []byte, authenticated bool) *Error {
	msg, payload := extractMessage(body)

	kind := KindRemote
	switch {
	case status == 401 && authenticated:
		kind = KindUnauthorized
	case msg == "":
		kind = KindUnknown
	}

	e := &Error{Kind: kind, Status: status, Message: msg, Payload: payload}
	if msg == "" {
		e.Message = c.Localizer().T(fallbackKeys[kind])
		e.fallback = true
	}
	return e
}

// extractMessage pulls a human readable message from an error body: a JSON
// object's message/error field, a JSON string, or plain text.
func extractMessage(body []byte) (string, json.RawMessage) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", nil
	}

	if !json.Valid(trimmed) {
		return truncate(string(trimmed)), nil
	}

	payload := json.RawMessage(bytes.Clone(trimmed))
	switch trimmed[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return "", payload
		}
		for _, key := range []string{"message", "error", "msg"} {
			var s string
			if raw, ok := obj[key]; ok && json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
				return truncate(strings.TrimSpace(s)), payload
			}
		}
		return "", payload
	case '"':
		var s string
		if json.Unmarshal(trimmed, &s) == nil {
			return truncate(strings.TrimSpace(s)), payload
		}
	}
	return "", payload
}

func jsonPayload(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil
	}
	return json.RawMessage(bytes.Clone(trimmed))
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxMessageLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxMessageLen]) + "..."
}

func isTransportError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
