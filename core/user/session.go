package user

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/codemaster/cli/core"
)

var (
	// ErrMalformedResponse is returned by an IdentityProvider when the login
	// response carries no usable token string.
	ErrMalformedResponse = errors.New("login response contains no usable token")

	errTimeoutMsg = "the server took too long to respond; please try again"
)

// SessionState is the lifecycle position of the session.
type SessionState int

const (
	// LoggedOut: no token, no profile.
	LoggedOut SessionState = iota
	// TokenPresent: a token is stored but the profile has not been resolved
	// (fetch pending, or last attempt failed transiently).
	TokenPresent
	// Authenticated: token and resolved profile.
	Authenticated
)

// AuthErrorKind classifies login failures.
type AuthErrorKind int

const (
	AuthInvalidCredentials AuthErrorKind = iota
	AuthTimeout
	AuthServerError
	AuthMalformedResponse
)

// AuthError is a display-ready login failure. Message carries the backend
// detail string verbatim when the backend provided one.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
}

func (err AuthError) Error() string { return err.Message }

// Store owns the token/profile pair and its re-derivation.
//
// Invariant: a resolved profile implies a stored token; the converse does
// not hold (the token may exist while the profile fetch is pending or has
// failed transiently). Overlapping profile refreshes are serialized by a
// generation counter bumped on every token change: a stale response never
// overwrites state for a newer token (last-writer-wins by token identity,
// not by completion order).
type Store struct {
	idp    IdentityProvider
	tokens core.TokenStore
	log    core.Logger

	mu      sync.Mutex
	gen     uint64
	token   string
	profile *Profile
	loading bool
}

func NewStore(idp IdentityProvider, tokens core.TokenStore, log core.Logger) *Store {
	if log == nil {
		log = nopLogger{}
	}
	return &Store{idp: idp, tokens: tokens, log: log}
}

// Restore loads the persisted token, if any, and triggers an asynchronous
// profile refresh. A token whose JWT exp has already passed is discarded
// instead of being presented to the backend.
func (s *Store) Restore() error {
	tok, err := s.tokens.Read()
	if err != nil {
		return errors.Wrap(err, "reading persisted token")
	}
	if tok == "" {
		return nil
	}
	if TokenExpired(tok) {
		return errors.Wrap(s.tokens.Clear(), "discarding expired token")
	}
	gen := s.setToken(tok)
	go s.refresh(context.Background(), gen) //nolint:errcheck
	return nil
}

// Login exchanges credentials for a token, persists it and triggers an
// asynchronous profile refresh. It resolves once the token is stored; it
// does not wait for the profile.
func (s *Store) Login(ctx context.Context, email, password string) error {
	creds := Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return err
	}

	tok, err := s.idp.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return classifyAuthErr(err)
	}
	if tok == "" {
		return AuthError{Kind: AuthMalformedResponse, Message: ErrMalformedResponse.Error()}
	}
	if err := s.tokens.Write(tok); err != nil {
		return errors.Wrap(err, "persisting token")
	}

	gen := s.setToken(tok)
	go s.refresh(context.Background(), gen) //nolint:errcheck
	return nil
}

// Register creates a new account. It does not log the account in.
func (s *Store) Register(ctx context.Context, na NewAccount) (Profile, error) {
	if err := na.Validate(); err != nil {
		return Profile{}, err
	}
	return s.idp.Register(ctx, na)
}

// Logout clears the persisted token and in-memory session synchronously;
// no network call is involved.
func (s *Store) Logout() {
	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()
	if err := s.tokens.Clear(); err != nil {
		s.log.Error("clearing persisted token", err)
	}
}

// Refresh re-fetches the profile for the current token, synchronously.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return ErrLoginRequired
	}
	gen := s.gen
	s.mu.Unlock()
	return s.refresh(ctx, gen)
}

// EnsureProfile returns the resolved profile, refreshing it first when
// needed.
func (s *Store) EnsureProfile(ctx context.Context) (Profile, error) {
	s.mu.Lock()
	if s.profile != nil {
		p := *s.profile
		s.mu.Unlock()
		return p, nil
	}
	if s.token == "" {
		s.mu.Unlock()
		return Profile{}, ErrLoginRequired
	}
	gen := s.gen
	s.mu.Unlock()

	if err := s.refresh(ctx, gen); err != nil {
		return Profile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return Profile{}, ErrLoginRequired
	}
	return *s.profile, nil
}

// refresh resolves the profile for the token generation gen. The generation
// is compared again before every state mutation so that a response that
// raced with a newer login/logout is dropped on the floor.
func (s *Store) refresh(ctx context.Context, gen uint64) error {
	me, err := s.idp.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// a newer token change won the race; this result is stale
		return nil
	}

	if err == nil {
		p := me
		s.profile = &p
		s.loading = false
		return nil
	}

	if core.IsAuthorizationLost(err) {
		// the credential is definitely invalid: the only path that forcibly
		// logs the user out from a failed profile fetch
		s.clearLocked()
		if cerr := s.tokens.Clear(); cerr != nil {
			s.log.Error("clearing persisted token", cerr)
		}
		return err
	}

	// timeout or any other transport failure: keep the token and whatever
	// profile we had; a later token change or explicit Refresh retries
	s.loading = false
	s.log.Warn("profile refresh failed, keeping session for retry", err)
	return err
}

// setToken installs a fresh token, invalidating any in-flight refresh, and
// returns the new generation.
func (s *Store) setToken(tok string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = tok
	s.profile = nil
	s.loading = true
	s.gen++
	return s.gen
}

func (s *Store) clearLocked() {
	s.token = ""
	s.profile = nil
	s.loading = false
	s.gen++
}

// Token returns the current bearer token ("" when logged out).
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Profile returns a copy of the resolved profile, or nil.
func (s *Store) Profile() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Loading reports whether a profile fetch is pending.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.token == "":
		return LoggedOut
	case s.profile == nil:
		return TokenPresent
	default:
		return Authenticated
	}
}

func classifyAuthErr(err error) error {
	switch cause := errors.Cause(err).(type) {
	case core.TransientError:
		return AuthError{Kind: AuthTimeout, Message: errTimeoutMsg}
	case core.APIError:
		return AuthError{Kind: AuthServerError, Message: cause.Error()}
	case core.AuthorizationError:
		// non-2xx from the login endpoint means the credentials were
		// rejected; the backend detail is surfaced verbatim
		return AuthError{Kind: AuthInvalidCredentials, Message: cause.Error()}
	case *core.ValidationError:
		return AuthError{Kind: AuthInvalidCredentials, Message: cause.Error()}
	}
	if errors.Cause(err) == ErrMalformedResponse {
		return AuthError{Kind: AuthMalformedResponse, Message: err.Error()}
	}
	return AuthError{Kind: AuthServerError, Message: err.Error()}
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
