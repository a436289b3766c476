package fakeapi

import (
	"encoding/json"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

type userView struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type profileView struct {
	userView
	Enabled   bool       `json:"enabled"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

func (acc *account) view() userView {
	return userView{ID: acc.ID, Username: acc.Username, Email: acc.Email, Roles: slices.Clone(acc.Roles)}
}

func (acc *account) profile() profileView {
	p := profileView{userView: acc.view(), Enabled: acc.Enabled, CreatedAt: acc.CreatedAt}
	if !acc.lastLogin.IsZero() {
		t := acc.lastLogin
		p.LastLogin = &t
	}
	return p
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed request")
		return
	}

	a.mu.RLock()
	acc, ok := a.accounts[req.Username]
	a.mu.RUnlock()
	if !ok || !acc.Enabled || bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := a.IssueToken(acc.Username, a.tokenTTL)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Login error")
		return
	}

	a.mu.Lock()
	acc.lastLogin = time.Now().UTC()
	view := acc.view()
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    view,
	})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeText(w, http.StatusBadRequest, "Malformed registration request")
		return
	}
	if !usernamePattern.MatchString(req.Username) || len(req.Password) < 6 {
		writeText(w, http.StatusBadRequest, "Invalid username or password")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if err != nil {
		writeText(w, http.StatusInternalServerError, "Registration error")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.accounts[req.Username]; exists {
		writeText(w, http.StatusBadRequest, "Username already exists, registration failed")
		return
	}
	a.nextID++
	a.accounts[req.Username] = &account{
		Account: Account{
			ID:        a.nextID,
			Username:  req.Username,
			Email:     strings.TrimSpace(req.Email),
			Phone:     req.Phone,
			Address:   req.Address,
			Roles:     []string{"USER"},
			Enabled:   true,
			CreatedAt: time.Now().UTC(),
		},
		hash: hash,
	}
	writeText(w, http.StatusOK, "Registration successful")
}

func (a *API) current(r *http.Request) (*account, bool) {
	claims := claimsFrom(r.Context())
	if claims == nil {
		return nil, false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	acc, ok := a.accounts[claims.Username]
	return acc, ok
}

func (a *API) handleProfile(w http.ResponseWriter, r *http.Request) {
	acc, ok := a.current(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "User does not exist")
		return
	}
	a.mu.RLock()
	p := acc.profile()
	a.mu.RUnlock()
	writeJSON(w, http.StatusOK, p)
}

type profileUpdate struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	acc, ok := a.current(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "User does not exist")
		return
	}
	var req profileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed request")
		return
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		writeMessage(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	a.mu.Lock()
	if req.Email != "" {
		acc.Email = req.Email
	}
	if req.Phone != "" {
		acc.Phone = req.Phone
	}
	if req.Address != "" {
		acc.Address = req.Address
	}
	view := acc.view()
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"message": "Profile updated", "data": view})
}

type passwordReset struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (a *API) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	acc, ok := a.current(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "User does not exist")
		return
	}
	var req passwordReset
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed request")
		return
	}

	a.mu.RLock()
	hash := acc.hash
	a.mu.RUnlock()
	if bcrypt.CompareHashAndPassword(hash, []byte(req.CurrentPassword)) != nil {
		writeMessage(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}
	if len(req.NewPassword) < 6 || len(req.NewPassword) > 20 {
		writeMessage(w, http.StatusBadRequest, "New password must be 6 to 20 characters")
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), a.bcryptCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Password reset error")
		return
	}
	a.mu.Lock()
	acc.hash = newHash
	a.mu.Unlock()
	writeMessage(w, http.StatusOK, "Password reset successful")
}
