package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Status is the lifecycle state of the client session.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticating  Status = "authenticating"
	StatusAuthenticated   Status = "authenticated"
)

// Event drives Status transitions.
type Event string

const (
	EventLogin          Event = "login"
	EventLogout         Event = "logout"
	EventInvalidate     Event = "invalidate"
	EventRestore        Event = "restore"
	EventValidated      Event = "validated"
	EventRejected       Event = "rejected"
	EventProfileUpdated Event = "profile_updated"
)

// User is the authenticated principal as returned by the API.
type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// RoleAdmin is the role the API grants to store administrators.
const RoleAdmin = "ADMIN"

// HasRole reports whether the user carries role.
func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

func (u User) clone() User {
	u.Roles = slices.Clone(u.Roles)
	return u
}

// Profile is the detailed account view served by the profile endpoint.
type Profile struct {
	User
	Enabled   bool      `json:"enabled"`
	CreatedAt Timestamp `json:"createdAt"`
	LastLogin Timestamp `json:"lastLogin"`
}

// Session is an immutable snapshot of the session state.
// User is non-nil exactly when Status is StatusAuthenticated, and so is Token.
type Session struct {
	Token  string
	User   *User
	Status Status
}

// IsAuthenticated reports whether the snapshot holds a validated user.
func (s Session) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil
}

// Timestamp decodes API dates that may be RFC 3339, zone-less ISO 8601 or
// null.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || len(b) == 0 {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var ms int64
		if err := json.Unmarshal(b, &ms); err != nil {
			return fmt.Errorf("session: invalid timestamp %s", b)
		}
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("session: invalid timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// RegisterRequest is the body of the registration endpoint.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// ProfileUpdate carries the editable profile fields. Empty fields are left
// unchanged by the server.
type ProfileUpdate struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// PasswordReset is the body of the password reset endpoint.
type PasswordReset struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
