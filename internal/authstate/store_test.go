package authstate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hirelink/internal/access"
	"hirelink/internal/apiclient"
	"hirelink/internal/model"
)

// MockAuthenticator is a mock implementation of Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (apiclient.Tokens, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(apiclient.Tokens), args.Error(1)
}

func (m *MockAuthenticator) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) Logout(ctx context.Context, tokens apiclient.Tokens) error {
	args := m.Called(ctx, tokens)
	return args.Error(0)
}

func (m *MockAuthenticator) Me(ctx context.Context, accessToken string) (*model.Session, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

type memCache struct {
	tokens  apiclient.Tokens
	cleared bool
}

func (c *memCache) Load() (apiclient.Tokens, error) { return c.tokens, nil }
func (c *memCache) Save(t apiclient.Tokens) error  { c.tokens = t; return nil }
func (c *memCache) Clear() error                   { c.tokens = apiclient.Tokens{}; c.cleared = true; return nil }

var unauthorized = &apiclient.StatusError{StatusCode: 401, Message: "invalid token"}

func record(s *Store) *[]access.AuthState {
	var states []access.AuthState
	s.Subscribe(func(st access.AuthState) { states = append(states, st) })
	return &states
}

func TestStore_StartsLoading(t *testing.T) {
	s := New(new(MockAuthenticator), nil, nil)
	assert.Equal(t, access.AuthState{IsLoading: true}, s.State())
}

func TestStore_InitWithoutTokensSignsOut(t *testing.T) {
	auth := new(MockAuthenticator)
	s := New(auth, &memCache{}, nil)
	states := record(s)

	require.NoError(t, s.Init(context.Background()))

	assert.Equal(t, access.AuthState{}, s.State())
	assert.Equal(t, []access.AuthState{{}}, *states)
	auth.AssertExpectations(t)
}

func TestStore_InitRestoresSession(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Me", mock.Anything, "a1").Return(&model.Session{Email: "e@x.com", Role: model.RoleEmployer}, nil)
	s := New(auth, &memCache{tokens: apiclient.Tokens{AccessToken: "a1", RefreshToken: "r1"}}, nil)

	require.NoError(t, s.Init(context.Background()))

	assert.Equal(t, access.AuthState{IsAuthenticated: true, UserRole: model.RoleEmployer}, s.State())
	assert.Equal(t, "a1", s.AccessToken())
	assert.Equal(t, "e@x.com", s.Session().Email)
	auth.AssertExpectations(t)
}

func TestStore_InitRefreshesExpiredAccessToken(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Me", mock.Anything, "stale").Return(nil, unauthorized)
	auth.On("Refresh", mock.Anything, "r1").Return("fresh", nil)
	auth.On("Me", mock.Anything, "fresh").Return(&model.Session{Role: model.RoleTalent}, nil)
	cache := &memCache{tokens: apiclient.Tokens{AccessToken: "stale", RefreshToken: "r1"}}
	s := New(auth, cache, nil)

	require.NoError(t, s.Init(context.Background()))

	assert.Equal(t, model.RoleTalent, s.State().UserRole)
	assert.Equal(t, "fresh", cache.tokens.AccessToken)
	auth.AssertExpectations(t)
}

func TestStore_InitWithRevokedTokensClearsCache(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Me", mock.Anything, "stale").Return(nil, unauthorized)
	auth.On("Refresh", mock.Anything, "r1").Return("", unauthorized)
	cache := &memCache{tokens: apiclient.Tokens{AccessToken: "stale", RefreshToken: "r1"}}
	s := New(auth, cache, nil)

	require.NoError(t, s.Init(context.Background()))

	assert.Equal(t, access.AuthState{}, s.State())
	assert.True(t, cache.cleared)
}

func TestStore_SignInTransitions(t *testing.T) {
	auth := new(MockAuthenticator)
	tokens := apiclient.Tokens{AccessToken: "a1", RefreshToken: "r1"}
	auth.On("Login", mock.Anything, "t@x.com", "secret1").Return(tokens, nil)
	auth.On("Me", mock.Anything, "a1").Return(&model.Session{Email: "t@x.com", Role: model.RoleTalent}, nil)
	cache := &memCache{}
	s := New(auth, cache, nil)
	require.NoError(t, s.Init(context.Background()))
	states := record(s)

	require.NoError(t, s.SignIn(context.Background(), "t@x.com", "secret1"))

	assert.Equal(t, []access.AuthState{
		{IsLoading: true},
		{IsAuthenticated: true, UserRole: model.RoleTalent},
	}, *states)
	assert.Equal(t, tokens, cache.tokens)
}

func TestStore_SignInFailureEndsSignedOut(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Login", mock.Anything, "t@x.com", "bad").Return(apiclient.Tokens{}, unauthorized)
	s := New(auth, nil, nil)

	err := s.SignIn(context.Background(), "t@x.com", "bad")
	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
	assert.Equal(t, access.AuthState{}, s.State())
}

func TestStore_SignOutClearsEvenWhenServerFails(t *testing.T) {
	auth := new(MockAuthenticator)
	tokens := apiclient.Tokens{AccessToken: "a1", RefreshToken: "r1"}
	auth.On("Me", mock.Anything, "a1").Return(&model.Session{Role: model.RoleEmployer}, nil)
	auth.On("Logout", mock.Anything, tokens).Return(errors.New("network"))
	cache := &memCache{tokens: tokens}
	s := New(auth, cache, nil)
	require.NoError(t, s.Init(context.Background()))

	err := s.SignOut(context.Background())

	assert.Error(t, err)
	assert.Equal(t, access.AuthState{}, s.State())
	assert.Empty(t, s.AccessToken())
	assert.Nil(t, s.Session())
	assert.True(t, cache.cleared)
}

func TestStore_RefreshRejectedSignsOut(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Me", mock.Anything, "a1").Return(&model.Session{Role: model.RoleEmployer}, nil)
	auth.On("Refresh", mock.Anything, "r1").Return("", unauthorized)
	s := New(auth, &memCache{tokens: apiclient.Tokens{AccessToken: "a1", RefreshToken: "r1"}}, nil)
	require.NoError(t, s.Init(context.Background()))

	err := s.Refresh(context.Background())

	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
	assert.False(t, s.State().IsAuthenticated)
}

func TestStore_CloseDropsSubscribers(t *testing.T) {
	auth := new(MockAuthenticator)
	s := New(auth, nil, nil)
	states := record(s)

	s.Close()

	assert.ErrorIs(t, s.Init(context.Background()), ErrClosed)
	assert.ErrorIs(t, s.SignIn(context.Background(), "a", "b"), ErrClosed)
	assert.Empty(t, *states)
	assert.Equal(t, access.AuthState{}, s.State())
}

func TestStore_DrivesRenderGuard(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Login", mock.Anything, "e@x.com", "secret1").Return(apiclient.Tokens{AccessToken: "a1"}, nil)
	auth.On("Me", mock.Anything, "a1").Return(&model.Session{Role: model.RoleEmployer}, nil)
	s := New(auth, nil, nil)

	guard := access.NewRenderGuard(s, nil, model.RoleEmployer, nil, nil)
	var outcomes []access.Outcome
	unbind := guard.Bind(s, func(d access.Decision) { outcomes = append(outcomes, d.Outcome) })
	defer unbind()

	require.NoError(t, s.Init(context.Background()))
	require.NoError(t, s.SignIn(context.Background(), "e@x.com", "secret1"))

	assert.Equal(t, []access.Outcome{
		access.Resolving,
		access.Unauthorized,
		access.Resolving,
		access.Authorized,
	}, outcomes)
}

func TestFileTokenCache(t *testing.T) {
	c := &FileTokenCache{Path: filepath.Join(t.TempDir(), "nested", "tokens.json")}

	tokens, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, apiclient.Tokens{}, tokens)

	want := apiclient.Tokens{AccessToken: "a", RefreshToken: "r"}
	require.NoError(t, c.Save(want))
	got, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, c.Clear())
	require.NoError(t, c.Clear())
	got, err = c.Load()
	require.NoError(t, err)
	assert.Equal(t, apiclient.Tokens{}, got)
}
