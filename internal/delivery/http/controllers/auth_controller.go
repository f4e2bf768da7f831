package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"confsite/internal/adapters/render"
	h "confsite/internal/delivery/http/helpers"
	"confsite/internal/domain"
)

type AuthController struct {
	Logger        *slog.Logger
	Service       domain.AuthService
	Renderer      h.PageRenderer
	Flashes       *h.Flasher
	SessionTTL    time.Duration
	SecureCookies bool
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService, renderer h.PageRenderer, flashes *h.Flasher, sessionTTL time.Duration, secureCookies bool) *AuthController {
	return &AuthController{
		Logger:        logger,
		Service:       svc,
		Renderer:      renderer,
		Flashes:       flashes,
		SessionTTL:    sessionTTL,
		SecureCookies: secureCookies,
	}
}

// LoginForm renders the login page.
func (c *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	writePage(w, r, c.Logger, c.Renderer, http.StatusOK, render.PageLogin, render.Page{
		Title:   "Login",
		Flashes: c.Flashes.Pop(w, r),
	})
}

// Login checks the submitted credentials. On success it sets the session cookie and
// redirects to the dashboard; on failure it re-renders the form with a notice.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := h.FormValue(r, "username")
	token, user, err := c.Service.Login(r.Context(), username, r.FormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.Logger.InfoContext(r.Context(), "login failed", "username", username)
			writePage(w, r, c.Logger, c.Renderer, http.StatusOK, render.PageLogin, render.Page{
				Title:    "Login",
				Username: username,
				Flashes:  []render.Flash{{Category: h.FlashDanger, Message: msgInvalidLogin}},
			})
			return
		}
		logFailure(c.Logger, r, err)
		h.InternalError(w)
		return
	}

	c.Logger.InfoContext(r.Context(), "login", "user_id", user.ID, "username", user.Username)
	h.SetSessionCookie(w, token, c.SessionTTL, c.SecureCookies)
	c.Flashes.Add(w, r, h.FlashSuccess, msgLoggedIn)
	h.RedirectSeeOther(w, r, adminPath)
}

// Logout clears the session cookie and redirects home.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	h.ClearSessionCookie(w)
	c.Flashes.Add(w, r, h.FlashInfo, msgLoggedOut)
	h.RedirectSeeOther(w, r, "/")
}
