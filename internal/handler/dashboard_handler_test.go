package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hirelink/internal/access"
	apperrors "hirelink/internal/errors"
	"hirelink/internal/model"
	"hirelink/internal/service"
)

type stubResolver struct {
	sess *model.Session
}

func (s stubResolver) ResolveSession(context.Context, *http.Request) (*model.Session, error) {
	if s.sess == nil {
		return nil, assert.AnError
	}
	return s.sess, nil
}

func sessionContext(req *http.Request, rec *httptest.ResponseRecorder, sess *model.Session) echo.Context {
	c := newEcho().NewContext(req, rec)
	access.SetSession(c, sess)
	return c
}

func TestDashboardHandler_Home(t *testing.T) {
	t.Run("signed in", func(t *testing.T) {
		home := access.NewRedirectOnDeny(stubResolver{sess: &model.Session{Role: model.RoleEmployer}}, "", access.Paths{}, nil)
		h := NewDashboardHandler(home, nil, nil)

		rec := httptest.NewRecorder()
		require.NoError(t, h.Home(newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
		assert.Equal(t, "/employer", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("signed out", func(t *testing.T) {
		home := access.NewRedirectOnDeny(stubResolver{}, "", access.Paths{}, nil)
		h := NewDashboardHandler(home, nil, nil)

		err := h.Home(newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
		var redirect *access.Redirect
		require.ErrorAs(t, err, &redirect)
		assert.Equal(t, access.DefaultSignInPath, redirect.Location)
	})
}

func TestDashboardHandler_TalentDashboard(t *testing.T) {
	sess := &model.Session{UserID: uuid.New(), Email: "a@b.com", Role: model.RoleTalent}
	profiles := new(MockProfileService)
	profiles.On("GetProfile", mock.Anything, sess.UserID).Return(&model.TalentProfile{ResumeText: "Go engineer", Bio: "I write Go.", Embedding: []float32{1}}, nil)
	h := NewDashboardHandler(nil, profiles, nil)

	rec := httptest.NewRecorder()
	require.NoError(t, h.TalentDashboard(sessionContext(httptest.NewRequest(http.MethodGet, "/talent", nil), rec, sess)))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "Welcome, a@b.com")
	assert.Contains(t, body, "I write Go.")
	assert.Contains(t, body, "visible in employer search")
}

func TestDashboardHandler_TalentDashboardWithoutProfile(t *testing.T) {
	sess := &model.Session{UserID: uuid.New(), Email: "a@b.com", Role: model.RoleTalent}
	profiles := new(MockProfileService)
	profiles.On("GetProfile", mock.Anything, sess.UserID).Return(nil, apperrors.ErrProfileNotFound)
	h := NewDashboardHandler(nil, profiles, nil)

	rec := httptest.NewRecorder()
	require.NoError(t, h.TalentDashboard(sessionContext(httptest.NewRequest(http.MethodGet, "/talent", nil), rec, sess)))
	assert.Contains(t, rec.Body.String(), "No bio yet.")
}

func TestDashboardHandler_SaveProfile(t *testing.T) {
	sess := &model.Session{UserID: uuid.New(), Email: "a@b.com", Role: model.RoleTalent}
	profiles := new(MockProfileService)
	profiles.On("SaveProfile", mock.Anything, sess.UserID, service.ProfileInput{ResumeText: "Go engineer", LocationPreference: "Remote"}).Return(&model.TalentProfile{}, nil)
	h := NewDashboardHandler(nil, profiles, nil)

	form := url.Values{"resume_text": {"Go engineer"}, "location_preference": {"Remote"}}
	req := httptest.NewRequest(http.MethodPost, "/talent/profile", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	require.NoError(t, h.SaveProfile(sessionContext(req, rec, sess)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/talent?notice=Profile+saved", rec.Header().Get(echo.HeaderLocation))
	profiles.AssertExpectations(t)
}

func TestDashboardHandler_GenerateBioUnavailable(t *testing.T) {
	sess := &model.Session{UserID: uuid.New(), Email: "a@b.com", Role: model.RoleTalent}
	profiles := new(MockProfileService)
	profiles.On("GenerateBio", mock.Anything, sess.UserID).Return(nil, apperrors.ErrAIUnavailable)
	profiles.On("GetProfile", mock.Anything, sess.UserID).Return(&model.TalentProfile{ResumeText: "Go"}, nil)
	h := NewDashboardHandler(nil, profiles, nil)

	rec := httptest.NewRecorder()
	require.NoError(t, h.GenerateBio(sessionContext(httptest.NewRequest(http.MethodPost, "/talent/bio", nil), rec, sess)))
	assert.Contains(t, rec.Body.String(), "Bio generation is unavailable right now.")
}

func TestDashboardHandler_EmployerDashboard(t *testing.T) {
	sess := &model.Session{UserID: uuid.New(), Email: "boss@acme.com", Role: model.RoleEmployer}
	talent := new(MockTalentService)
	talent.On("ListTalent", mock.Anything, 0).Return([]model.TalentProfile{
		{Bio: "I write Go.", User: &model.User{Name: "Jane", Email: "jane@x.com"}},
	}, nil)
	h := NewDashboardHandler(nil, nil, talent)

	rec := httptest.NewRecorder()
	require.NoError(t, h.EmployerDashboard(sessionContext(httptest.NewRequest(http.MethodGet, "/employer", nil), rec, sess)))

	body := rec.Body.String()
	assert.Contains(t, body, "Welcome, boss@acme.com")
	assert.Contains(t, body, "Jane")
	assert.Contains(t, body, "I write Go.")
}

func TestDashboardHandler_EmployerSearch(t *testing.T) {
	sess := &model.Session{UserID: uuid.New(), Email: "boss@acme.com", Role: model.RoleEmployer}
	talent := new(MockTalentService)
	talent.On("Search", mock.Anything, "golang", 0).Return([]service.TalentMatch{
		{Profile: model.TalentProfile{Bio: "Gopher", User: &model.User{Name: "Jane"}}, Score: 0.9},
	}, nil)
	talent.On("Search", mock.Anything, "", 0).Return(nil, apperrors.ErrInvalidInput)
	h := NewDashboardHandler(nil, nil, talent)

	rec := httptest.NewRecorder()
	require.NoError(t, h.EmployerSearch(sessionContext(httptest.NewRequest(http.MethodGet, "/employer/search?q=golang", nil), rec, sess)))
	assert.Contains(t, rec.Body.String(), "90% match")

	rec = httptest.NewRecorder()
	require.NoError(t, h.EmployerSearch(sessionContext(httptest.NewRequest(http.MethodGet, "/employer/search", nil), rec, sess)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/employer", rec.Header().Get(echo.HeaderLocation))
}
