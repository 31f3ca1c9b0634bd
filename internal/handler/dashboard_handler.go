package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"hirelink/internal/access"
	apperrors "hirelink/internal/errors"
	"hirelink/internal/model"
	"hirelink/internal/service"
	"hirelink/internal/view"
)

// DashboardHandler serves the role-gated pages. Routes are expected behind a
// RedirectOnDeny middleware for the matching role.
type DashboardHandler struct {
	home     *access.RedirectOnDeny
	profiles service.ProfileService
	talent   service.TalentService
}

// NewDashboardHandler creates a dashboard handler. home gates "/" and only
// requires a signed-in user.
func NewDashboardHandler(home *access.RedirectOnDeny, profiles service.ProfileService, talent service.TalentService) *DashboardHandler {
	return &DashboardHandler{home: home, profiles: profiles, talent: talent}
}

// Home sends signed-in users to their dashboard.
func (h *DashboardHandler) Home(c echo.Context) error {
	sess, err := h.home.Check(c)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, homePath(sess.Role))
}

// TalentDashboard shows the profile editor.
func (h *DashboardHandler) TalentDashboard(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	return h.renderTalent(c, sess, c.QueryParam("notice"))
}

// SaveProfile stores the talent's resume and preferences.
func (h *DashboardHandler) SaveProfile(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	_, err = h.profiles.SaveProfile(c.Request().Context(), sess.UserID, service.ProfileInput{
		ResumeText:          c.FormValue("resume_text"),
		WorkStylePreference: c.FormValue("work_style_preference"),
		IndustryPreference:  c.FormValue("industry_preference"),
		LocationPreference:  c.FormValue("location_preference"),
	})
	if errors.Is(err, apperrors.ErrEmptyResume) {
		return h.renderTalent(c, sess, "Paste your resume before saving.")
	}
	if err != nil {
		return domainError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/talent?notice=Profile+saved")
}

// GenerateBio writes and stores a bio for the talent.
func (h *DashboardHandler) GenerateBio(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	_, err = h.profiles.GenerateBio(c.Request().Context(), sess.UserID)
	switch {
	case errors.Is(err, apperrors.ErrProfileNotFound):
		return h.renderTalent(c, sess, "Save your profile first.")
	case errors.Is(err, apperrors.ErrAIUnavailable):
		return h.renderTalent(c, sess, "Bio generation is unavailable right now.")
	case err != nil:
		return domainError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/talent?notice=Bio+generated")
}

func (h *DashboardHandler) renderTalent(c echo.Context, sess *model.Session, notice string) error {
	page := view.TalentPage{Email: sess.Email, Notice: notice}

	profile, err := h.profiles.GetProfile(c.Request().Context(), sess.UserID)
	switch {
	case err == nil:
		page.ResumeText = profile.ResumeText
		page.Bio = profile.Bio
		page.WorkStylePreference = profile.WorkStylePreference
		page.IndustryPreference = profile.IndustryPreference
		page.LocationPreference = profile.LocationPreference
		page.Indexed = len(profile.Embedding) > 0
	case !errors.Is(err, apperrors.ErrProfileNotFound):
		return domainError(err)
	}

	return render(c, http.StatusOK, "Talent", view.TalentDashboard(page))
}

// EmployerDashboard lists talent with bios.
func (h *DashboardHandler) EmployerDashboard(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	profiles, err := h.talent.ListTalent(c.Request().Context(), 0)
	if err != nil {
		return domainError(err)
	}

	cards := make([]view.TalentCard, 0, len(profiles))
	for _, p := range profiles {
		cards = append(cards, talentCard(p, 0))
	}
	return render(c, http.StatusOK, "Employer", view.EmployerDashboard(view.EmployerPage{Email: sess.Email, Talent: cards}))
}

// EmployerSearch ranks talent against a free-text query.
func (h *DashboardHandler) EmployerSearch(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	query := c.QueryParam("q")
	page := view.EmployerPage{Email: sess.Email, Query: query}

	matches, err := h.talent.Search(c.Request().Context(), query, 0)
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return c.Redirect(http.StatusSeeOther, "/employer")
	case errors.Is(err, apperrors.ErrAIUnavailable):
		page.Notice = "Search is unavailable right now."
	case err != nil:
		return domainError(err)
	}

	for _, m := range matches {
		page.Talent = append(page.Talent, talentCard(m.Profile, m.Score))
	}
	return render(c, http.StatusOK, "Search", view.EmployerDashboard(page))
}

func talentCard(p model.TalentProfile, score float64) view.TalentCard {
	card := view.TalentCard{Bio: p.Bio, Score: score}
	if p.User != nil {
		card.Name = p.User.Name
		card.Email = p.User.Email
	}
	return card
}
