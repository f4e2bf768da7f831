package controllers

import (
	"log/slog"
	"net/http"

	"confsite/internal/delivery/http/helpers"
)

// Flash messages shown after admin actions.
const (
	msgLoggedIn       = "Logged in successfully."
	msgInvalidLogin   = "Invalid username or password."
	msgLoggedOut      = "You have been logged out."
	msgSpeakerAdded   = "Speaker added successfully!"
	msgSpeakerUpdated = "Speaker updated successfully!"
	msgSpeakerDeleted = "Speaker deleted successfully!"
	msgNameRequired   = "Speaker name is required."
	msgDateAdded      = "Date added successfully!"
	msgDateUpdated    = "Date updated successfully!"
	msgDateDeleted    = "Date deleted successfully!"
)

const adminPath = "/admin"

func logFailure(logger *slog.Logger, r *http.Request, err error) {
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}

// writePage renders page or answers 500.
func writePage(w http.ResponseWriter, r *http.Request, logger *slog.Logger, renderer helpers.PageRenderer, status int, page string, data any) {
	if err := helpers.RenderPage(w, renderer, status, page, data); err != nil {
		logFailure(logger, r, err)
		helpers.InternalError(w)
	}
}
