package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/storefront/pkg/apiclient"
	"github.com/dmitrymomot/storefront/pkg/broadcast"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/metrics"
	"github.com/dmitrymomot/storefront/pkg/statemachine"
)

const (
	pathLogin         = "/api/user/login"
	pathRegister      = "/api/user/register"
	pathProfile       = "/api/user/profile"
	pathResetPassword = "/api/user/reset-password"
)

// Manager owns the client session: the bearer token, the current user and
// the authentication status. It keeps the transport's Authorization header in
// step with the token and logs out when an authenticated request gets a 401.
//
// Network calls never run under the internal lock. Token persistence does, so
// the stored token and the in-memory token cannot diverge.
type Manager struct {
	client  *apiclient.Client
	store   TokenStore
	logger  *slog.Logger
	metrics *metrics.Collector
	now     func() time.Time

	machine *statemachine.Machine[Status, Event]
	events  *broadcast.MemoryBroadcaster[Session]
	unwatch func()

	mu      sync.Mutex
	token   string
	pending string // persisted token awaiting validation
	user    *User
	epoch   uint64 // bumped whenever an in-flight validation must be ignored
}

// New creates a Manager on top of client. It panics if client is nil.
func New(client *apiclient.Client, opts ...Option) *Manager {
	if client == nil {
		panic("session: api client is required")
	}

	m := &Manager{
		client: client,
		store:  NewMemoryTokenStore(""),
		logger: logger.Nop(),
		now:    time.Now,
		events: broadcast.NewMemoryBroadcaster[Session](8),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("session"))
	m.machine = newMachine(m.onTransition)
	m.unwatch = client.Observe(m.observe)
	return m
}

func newMachine(observe func(from, to Status, event Event)) *statemachine.Machine[Status, Event] {
	return statemachine.MustNew(StatusUnauthenticated,
		statemachine.WithTransition[Status, Event](StatusUnauthenticated, StatusAuthenticated, EventLogin),
		statemachine.WithTransition[Status, Event](StatusAuthenticated, StatusUnauthenticated, EventLogout),
		statemachine.WithTransition[Status, Event](StatusAuthenticated, StatusUnauthenticated, EventInvalidate),
		statemachine.WithTransition[Status, Event](StatusUnauthenticated, StatusAuthenticating, EventRestore),
		statemachine.WithTransition[Status, Event](StatusAuthenticating, StatusAuthenticated, EventValidated),
		statemachine.WithTransition[Status, Event](StatusAuthenticating, StatusUnauthenticated, EventRejected),
		statemachine.WithTransition[Status, Event](StatusAuthenticated, StatusAuthenticated, EventProfileUpdated),
		statemachine.WithObserver(observe),
	)
}

func (m *Manager) onTransition(from, to Status, event Event) {
	m.metrics.SessionTransition(string(from), string(to), string(event))
	m.logger.Debug("session transition",
		logger.Transition(string(from), string(to)),
		slog.String("event", string(event)),
	)
}

// Initialize restores a persisted session. With a stored token the status
// becomes Authenticating until the profile endpoint confirms it; on any
// failure the token is discarded as on Logout. Without a stored token nothing
// happens. An expired JWT is discarded without a network round trip.
func (m *Manager) Initialize(ctx context.Context) error {
	token, err := m.store.Load(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to load persisted token", logger.Error(err))
		return nil
	}
	if token == "" {
		return nil
	}

	m.mu.Lock()
	if !m.machine.Is(StatusUnauthenticated) {
		m.mu.Unlock()
		return nil
	}
	if tokenExpired(token, m.now()) {
		m.removePersistedLocked(ctx)
		m.mu.Unlock()
		m.logger.InfoContext(ctx, "persisted token expired")
		return nil
	}
	if err := m.fireLocked(ctx, EventRestore); err != nil {
		m.mu.Unlock()
		return err
	}
	m.pending = token
	m.epoch++
	epoch := m.epoch
	m.publishLocked(ctx)
	m.mu.Unlock()

	var profile Profile
	reqErr := m.client.Get(ctx, pathProfile, &profile,
		apiclient.WithHeader(apiclient.HeaderAuthorization, apiclient.BearerValue(token)))
	if reqErr == nil && profile.Username == "" {
		reqErr = m.client.Classify(fmt.Errorf("%w: profile without username", ErrMalformedResponse))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch || !m.machine.Is(StatusAuthenticating) {
		// Superseded by logout, login or a 401; their outcome stands.
		if reqErr != nil {
			return m.failure(reqErr, "auth.profile_failed")
		}
		return nil
	}

	if reqErr != nil {
		m.rejectLocked(ctx)
		m.logger.InfoContext(ctx, "persisted session rejected", logger.Error(reqErr))
		return m.failure(reqErr, "auth.profile_failed")
	}

	if err := m.fireLocked(ctx, EventValidated); err != nil {
		return err
	}
	user := profile.User.clone()
	m.token, m.pending, m.user = token, "", &user
	m.client.SetBearer(token)
	m.publishLocked(ctx)
	m.logger.InfoContext(ctx, "session restored", logger.UserID(user.ID))
	return nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Login exchanges credentials for a token. On success token, user and status
// change together, the Authorization header is installed and the token is
// persisted. On failure the session is left untouched.
func (m *Manager) Login(ctx context.Context, username, password string) (User, error) {
	var resp loginResponse
	err := m.client.Post(ctx, pathLogin, credentials{Username: username, Password: password}, &resp,
		apiclient.WithoutAuth())
	if err == nil && resp.Token == "" {
		err = m.client.Classify(fmt.Errorf("%w: login response without token", ErrMalformedResponse))
	}
	if err != nil {
		return User{}, m.failure(err, "auth.login_failed")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.machine.Current() {
	case StatusAuthenticating:
		m.rejectLocked(ctx)
	case StatusAuthenticated:
		m.clearLocked(ctx, EventLogout)
	}

	if err := m.fireLocked(ctx, EventLogin); err != nil {
		return User{}, err
	}
	user := resp.User.clone()
	m.token, m.user = resp.Token, &user
	m.epoch++
	m.client.SetBearer(resp.Token)
	if err := m.store.Save(ctx, resp.Token); err != nil {
		m.logger.WarnContext(ctx, "failed to persist token", logger.Error(err))
	}
	m.publishLocked(ctx)
	m.logger.InfoContext(ctx, "logged in", logger.UserID(user.ID))
	return user.clone(), nil
}

// Register creates an account. It never changes the session; the caller
// logs in afterwards. The returned message is the localized confirmation.
func (m *Manager) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var body string
	if err := m.client.Post(ctx, pathRegister, req, &body, apiclient.WithoutAuth()); err != nil {
		return "", m.failure(err, "auth.register_failed")
	}
	m.logger.InfoContext(ctx, "account registered", slog.String("username", req.Username))
	return m.client.Localizer().T("auth.register_success"), nil
}

// Logout clears the session, the persisted token and the Authorization
// header. It never fails and is a no-op when already logged out.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.machine.Current() {
	case StatusAuthenticated:
		m.clearLocked(ctx, EventLogout)
		m.logger.InfoContext(ctx, "logged out")
	case StatusAuthenticating:
		m.rejectLocked(ctx)
	default:
		m.client.SetBearer("")
		m.removePersistedLocked(ctx)
	}
}

// observe forces a logout when a request sent with the current credentials
// is answered with 401.
func (m *Manager) observe(r apiclient.Response) {
	if r.Status != http.StatusUnauthorized || r.Authorization == "" {
		return
	}

	ctx := context.Background()
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.machine.Is(StatusAuthenticated) && r.Authorization == apiclient.BearerValue(m.token):
		m.clearLocked(ctx, EventInvalidate)
		m.logger.Warn("session invalidated by server", slog.String("path", r.Path))
	case m.machine.Is(StatusAuthenticating) && r.Authorization == apiclient.BearerValue(m.pending):
		m.rejectLocked(ctx)
	}
}

// Profile fetches the detailed account view.
func (m *Manager) Profile(ctx context.Context) (Profile, error) {
	if err := m.requireAuth(); err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := m.client.Get(ctx, pathProfile, &p); err != nil {
		return Profile{}, m.failure(err, "auth.profile_failed")
	}
	p.User = p.User.clone()
	return p, nil
}

type userEnvelope struct {
	Data *User `json:"data"`
}

// UpdateProfile sends the changed fields and replaces the session user with
// the server's canonical representation.
func (m *Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) (User, error) {
	token, err := m.currentToken()
	if err != nil {
		return User{}, err
	}

	var resp userEnvelope
	err = m.client.Put(ctx, pathProfile, update, &resp)
	if err == nil && resp.Data == nil {
		err = m.client.Classify(fmt.Errorf("%w: profile update without data", ErrMalformedResponse))
	}
	if err != nil {
		return User{}, m.failure(err, "auth.update_failed")
	}

	user := resp.Data.clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.machine.Is(StatusAuthenticated) || m.token != token {
		return user.clone(), nil
	}
	if err := m.fireLocked(ctx, EventProfileUpdated); err != nil {
		return User{}, err
	}
	m.user = &user
	m.publishLocked(ctx)
	return user.clone(), nil
}

// ResetPassword changes the password of the current user and returns the
// localized confirmation.
func (m *Manager) ResetPassword(ctx context.Context, req PasswordReset) (string, error) {
	if err := m.requireAuth(); err != nil {
		return "", err
	}
	if err := m.client.Post(ctx, pathResetPassword, req, nil); err != nil {
		return "", m.failure(err, "auth.reset_failed")
	}
	return m.client.Localizer().T("auth.reset_success"), nil
}

// Session returns a snapshot of the current state.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) Status() Status {
	return m.machine.Current()
}

func (m *Manager) IsAuthenticated() bool {
	return m.Session().IsAuthenticated()
}

// Token returns the validated bearer token, or "".
func (m *Manager) Token() string {
	return m.Session().Token
}

// User returns the current user and whether there is one.
func (m *Manager) User() (User, bool) {
	s := m.Session()
	if s.User == nil {
		return User{}, false
	}
	return *s.User, true
}

// Subscribe returns a subscriber receiving a snapshot after every state
// change. It ends when ctx is cancelled.
func (m *Manager) Subscribe(ctx context.Context) broadcast.Subscriber[Session] {
	return m.events.Subscribe(ctx)
}

// Close detaches the manager from the transport and ends all subscriptions.
// The session itself is left as is.
func (m *Manager) Close() error {
	m.unwatch()
	return m.events.Close()
}

func (m *Manager) requireAuth() error {
	_, err := m.currentToken()
	return err
}

func (m *Manager) currentToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.machine.Is(StatusAuthenticated) {
		return "", apiclient.NewUnauthorizedError(m.client.Localizer().T("error.unauthorized"))
	}
	return m.token, nil
}

// failure classifies err and swaps a generic message for the operation's own.
func (m *Manager) failure(err error, key string) error {
	e := m.client.Classify(err)
	if e.Kind == apiclient.KindNetwork || e.Kind == apiclient.KindUnauthorized {
		return e
	}
	return e.WithFallback(m.client.Localizer().T(key))
}

func (m *Manager) fireLocked(ctx context.Context, event Event) error {
	if err := m.machine.Fire(ctx, event); err != nil {
		return fmt.Errorf("session: %s from %s: %w", event, m.machine.Current(), err)
	}
	return nil
}

func (m *Manager) clearLocked(ctx context.Context, event Event) {
	if err := m.fireLocked(ctx, event); err != nil {
		m.logger.ErrorContext(ctx, "unexpected session transition", logger.Error(err))
	}
	m.token, m.user = "", nil
	m.epoch++
	m.client.SetBearer("")
	m.removePersistedLocked(ctx)
	m.publishLocked(ctx)
}

func (m *Manager) rejectLocked(ctx context.Context) {
	if err := m.fireLocked(ctx, EventRejected); err != nil {
		m.logger.ErrorContext(ctx, "unexpected session transition", logger.Error(err))
	}
	m.token, m.pending, m.user = "", "", nil
	m.epoch++
	m.client.SetBearer("")
	m.removePersistedLocked(ctx)
	m.publishLocked(ctx)
}

func (m *Manager) removePersistedLocked(ctx context.Context) {
	if err := m.store.Remove(ctx); err != nil && !errors.Is(err, context.Canceled) {
		m.logger.WarnContext(ctx, "failed to remove persisted token", logger.Error(err))
	}
}

func (m *Manager) snapshotLocked() Session {
	s := Session{Status: m.machine.Current()}
	if m.user != nil && s.Status == StatusAuthenticated {
		u := m.user.clone()
		s.User = &u
		s.Token = m.token
	}
	return s
}

func (m *Manager) publishLocked(ctx context.Context) {
	m.events.Publish(ctx, m.snapshotLocked())
}
