// Package authstate owns the client-side authentication state.
//
// A Store has an explicit lifecycle: Init resolves the initial state, SignIn,
// SignOut and Refresh update it, and Close tears it down. Updates are
// serialized and subscribers observe them in order.
package authstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"hirelink/internal/access"
	"hirelink/internal/apiclient"
	"hirelink/internal/model"
)

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("auth state closed")

// Authenticator talks to the auth API.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (apiclient.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, tokens apiclient.Tokens) error
	Me(ctx context.Context, accessToken string) (*model.Session, error)
}

// TokenCache persists tokens between runs.
type TokenCache interface {
	Load() (apiclient.Tokens, error)
	Save(tokens apiclient.Tokens) error
	Clear() error
}

// Store is the process-wide auth context of a client.
type Store struct {
	auth   Authenticator
	cache  TokenCache
	logger *slog.Logger

	// op serializes state transitions and their notifications.
	op sync.Mutex

	mu        sync.RWMutex
	state     access.AuthState
	session   *model.Session
	tokens    apiclient.Tokens
	closed    bool
	listeners map[int]func(access.AuthState)
	nextID    int
}

var _ access.Observable = (*Store)(nil)

// New creates a Store in the loading state. cache may be nil.
func New(auth Authenticator, cache TokenCache, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		auth:      auth,
		cache:     cache,
		logger:    logger,
		state:     access.AuthState{IsLoading: true},
		listeners: make(map[int]func(access.AuthState)),
	}
}

// State returns the current auth state.
func (s *Store) State() access.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Session returns a copy of the signed-in session, or nil.
func (s *Store) Session() *model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	sess := *s.session
	return &sess
}

// AccessToken implements apiclient.TokenSource.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.AccessToken
}

// Subscribe registers fn for every state change. fn must not call back into
// the Store's mutating methods.
func (s *Store) Subscribe(fn func(access.AuthState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Init resolves the initial state from cached tokens.
func (s *Store) Init(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()
	if s.isClosed() {
		return ErrClosed
	}

	s.setLoading()

	var tokens apiclient.Tokens
	if s.cache != nil {
		cached, err := s.cache.Load()
		if err != nil {
			s.logger.Warn("load cached tokens", slog.Any("error", err))
		}
		tokens = cached
	}
	if tokens.AccessToken == "" && tokens.RefreshToken == "" {
		s.signedOut()
		return nil
	}

	sess, tokens, err := s.resolve(ctx, tokens)
	if err != nil {
		s.forget()
		s.signedOut()
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return nil
		}
		return fmt.Errorf("restore session: %w", err)
	}
	s.signedIn(sess, tokens)
	return nil
}

// SignIn authenticates with credentials.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	s.op.Lock()
	defer s.op.Unlock()
	if s.isClosed() {
		return ErrClosed
	}

	s.setLoading()

	tokens, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.signedOut()
		return fmt.Errorf("sign in: %w", err)
	}
	sess, err := s.auth.Me(ctx, tokens.AccessToken)
	if err != nil {
		s.signedOut()
		return fmt.Errorf("load session: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Save(tokens); err != nil {
			s.logger.Warn("save tokens", slog.Any("error", err))
		}
	}
	s.signedIn(sess, tokens)
	return nil
}

// Refresh renews the access token. A rejected refresh token signs the user out.
func (s *Store) Refresh(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()
	if s.isClosed() {
		return ErrClosed
	}

	s.mu.RLock()
	tokens := s.tokens
	s.mu.RUnlock()
	if tokens.RefreshToken == "" {
		return nil
	}

	accessToken, err := s.auth.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			s.forget()
			s.signedOut()
		}
		return fmt.Errorf("refresh: %w", err)
	}
	tokens.AccessToken = accessToken

	sess, err := s.auth.Me(ctx, accessToken)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Save(tokens); err != nil {
			s.logger.Warn("save tokens", slog.Any("error", err))
		}
	}
	s.signedIn(sess, tokens)
	return nil
}

// SignOut revokes the tokens on the server and clears local state. The local
// state is cleared even when the server call fails.
func (s *Store) SignOut(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()
	if s.isClosed() {
		return ErrClosed
	}

	s.mu.RLock()
	tokens := s.tokens
	s.mu.RUnlock()

	var err error
	if tokens.RefreshToken != "" || tokens.AccessToken != "" {
		if err = s.auth.Logout(ctx, tokens); err != nil {
			s.logger.Warn("server sign out failed", slog.Any("error", err))
		}
	}
	s.forget()
	s.signedOut()
	return err
}

// Close tears the Store down. Subscribers are dropped and later operations
// return ErrClosed.
func (s *Store) Close() {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.state = access.AuthState{}
	s.session = nil
	s.tokens = apiclient.Tokens{}
	s.listeners = make(map[int]func(access.AuthState))
}

// resolve loads the session for tokens, refreshing the access token once when
// it was rejected.
func (s *Store) resolve(ctx context.Context, tokens apiclient.Tokens) (*model.Session, apiclient.Tokens, error) {
	if tokens.AccessToken != "" {
		sess, err := s.auth.Me(ctx, tokens.AccessToken)
		if err == nil {
			return sess, tokens, nil
		}
		if !errors.Is(err, apiclient.ErrUnauthorized) || tokens.RefreshToken == "" {
			return nil, tokens, err
		}
	}

	accessToken, err := s.auth.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		return nil, tokens, err
	}
	tokens.AccessToken = accessToken
	sess, err := s.auth.Me(ctx, accessToken)
	if err != nil {
		return nil, tokens, err
	}
	if s.cache != nil {
		if err := s.cache.Save(tokens); err != nil {
			s.logger.Warn("save tokens", slog.Any("error", err))
		}
	}
	return sess, tokens, nil
}

func (s *Store) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Store) forget() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(); err != nil {
		s.logger.Warn("clear tokens", slog.Any("error", err))
	}
}

func (s *Store) setLoading() {
	s.mu.RLock()
	next := s.state
	s.mu.RUnlock()
	next.IsLoading = true
	s.publish(next, nil, nil)
}

func (s *Store) signedOut() {
	s.publish(access.AuthState{}, nil, &apiclient.Tokens{})
}

func (s *Store) signedIn(sess *model.Session, tokens apiclient.Tokens) {
	state := access.AuthState{IsAuthenticated: true, UserRole: sess.Role}
	s.publish(state, sess, &tokens)
}

// publish installs state and notifies subscribers. Callers hold s.op. A nil
// tokens pointer leaves tokens and session untouched.
func (s *Store) publish(state access.AuthState, sess *model.Session, tokens *apiclient.Tokens) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	changed := s.state != state
	s.state = state
	if tokens != nil {
		s.tokens = *tokens
		s.session = sess
	}
	listeners := make([]func(access.AuthState), 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(state)
	}
}
