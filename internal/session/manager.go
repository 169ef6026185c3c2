// Package session holds authentication state and the catalog that belongs to the signed-in user.
package session

import (
	"context"
	"errors"

	"applestore-clone/internal/actor"
	"applestore-clone/internal/catalog"
	"applestore-clone/internal/domain"
	"applestore-clone/internal/service/identity"
	"go.uber.org/zap"
)

// State of the session.
type State string

const (
	Unauthenticated State = "unauthenticated"
	Authenticating  State = "authenticating"
	Authenticated   State = "authenticated"
)

var (
	// ErrMissingClientConfig means no OAuth client id is configured. Nothing can sign in.
	ErrMissingClientConfig = errors.New("no client id configured for federated sign-in")
	// ErrNoPresentationContext means there is no surface to run the provider flow on.
	ErrNoPresentationContext = errors.New("no presentation context for federated sign-in")
	// ErrMissingIDToken means the provider finished without issuing an ID token.
	ErrMissingIDToken = errors.New("provider returned no id token")
)

// FederatedTokens are issued by the external sign-in flow.
type FederatedTokens struct {
	IDToken     string
	AccessToken string
}

// FederatedProvider runs the external OAuth-style sign-in flow for clientID.
type FederatedProvider interface {
	SignIn(ctx context.Context, clientID string) (FederatedTokens, error)
}

// Authenticator exchanges a provider credential for a signed-in user.
type Authenticator interface {
	SignIn(ctx context.Context, cred identity.Credential) (*domain.User, error)
}

// CatalogFactory builds the catalog owned by a new session.
type CatalogFactory func() *catalog.Store

// Manager is the session's state machine. Its fields are confined to its loop goroutine.
type Manager struct {
	clientID   string
	auth       Authenticator
	newCatalog CatalogFactory
	logger     *zap.Logger
	loop       *actor.Loop

	state   State
	user    *domain.User
	errMsg  string
	catalog *catalog.Store
}

// NewManager returns an unauthenticated Manager. newCatalog is called once per successful sign-in.
func NewManager(clientID string, auth Authenticator, newCatalog CatalogFactory, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		clientID:   clientID,
		auth:       auth,
		newCatalog: newCatalog,
		logger:     logger,
		loop:       actor.Start(),
		state:      Unauthenticated,
	}
}

// Configured reports whether a client id is present. Without it sign-in can never succeed.
func (m *Manager) Configured() bool {
	return m.clientID != ""
}

// SignInWithFederatedProvider runs the provider flow, exchanges the resulting token with the
// identity backend and, on success, starts a fresh catalog for the user. Failures are recorded
// in ErrorMessage and leave the manager unauthenticated; nothing is returned to the caller.
// A nil provider means there is no presentation surface for the flow.
func (m *Manager) SignInWithFederatedProvider(ctx context.Context, provider FederatedProvider) {
	if m.clientID == "" {
		m.fail(ErrMissingClientConfig)
		return
	}
	if provider == nil {
		m.fail(ErrNoPresentationContext)
		return
	}

	m.loop.Do(func() {
		m.state = Authenticating
		m.errMsg = ""
	})

	tokens, err := provider.SignIn(ctx, m.clientID)
	if err != nil {
		m.fail(err)
		return
	}
	if tokens.IDToken == "" {
		m.fail(ErrMissingIDToken)
		return
	}

	user, err := m.auth.SignIn(ctx, identity.Credential{
		Provider:    identity.ProviderGoogle,
		IDToken:     tokens.IDToken,
		AccessToken: tokens.AccessToken,
	})
	if err == nil && user == nil {
		err = errors.New("identity backend returned no user")
	}
	if err != nil {
		m.fail(err)
		return
	}

	var previous *catalog.Store
	m.loop.Do(func() {
		previous = m.catalog
		m.catalog = m.newCatalog()
		m.user = user
		m.state = Authenticated
		m.errMsg = ""
	})
	if previous != nil {
		previous.Close()
	}
	m.logger.Info("session: signed in", zap.String("user_id", user.ID))
}

// EndSession discards the session's catalog and returns to unauthenticated.
func (m *Manager) EndSession() {
	var previous *catalog.Store
	m.loop.Do(func() {
		previous = m.catalog
		m.catalog = nil
		m.user = nil
		m.state = Unauthenticated
	})
	if previous != nil {
		previous.Close()
		m.logger.Info("session: ended")
	}
}

// Close ends the session and stops the manager.
func (m *Manager) Close() {
	m.EndSession()
	m.loop.Close()
}

func (m *Manager) fail(err error) {
	var previous *catalog.Store
	m.loop.Do(func() {
		previous = m.catalog
		m.catalog = nil
		m.user = nil
		m.state = Unauthenticated
		m.errMsg = err.Error()
	})
	if previous != nil {
		previous.Close()
	}
	m.logger.Warn("session: sign-in failed", zap.Error(err))
}

// State returns the current authentication state.
func (m *Manager) State() State {
	state := Unauthenticated
	m.loop.Do(func() { state = m.state })
	return state
}

// User returns the signed-in user, or nil.
func (m *Manager) User() *domain.User {
	var u *domain.User
	m.loop.Do(func() {
		if m.user != nil {
			clone := *m.user
			u = &clone
		}
	})
	return u
}

// ErrorMessage is the message of the last failed sign-in, empty after a success.
func (m *Manager) ErrorMessage() string {
	var msg string
	m.loop.Do(func() { msg = m.errMsg })
	return msg
}

// Catalog returns the current session's catalog, or nil when unauthenticated.
func (m *Manager) Catalog() *catalog.Store {
	var c *catalog.Store
	m.loop.Do(func() { c = m.catalog })
	return c
}
