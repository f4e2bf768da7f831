package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"confsite/internal/adapters/render"
	"confsite/internal/delivery/http/helpers"
	"confsite/internal/delivery/http/middleware"
	"confsite/internal/domain"
)

// AdminController serves the session-guarded dashboard and its speaker and date forms.
type AdminController struct {
	Logger         *slog.Logger
	Speakers       domain.SpeakerService
	Dates          domain.ImportantDateService
	Renderer       helpers.PageRenderer
	Flashes        *helpers.Flasher
	MaxUploadBytes int64
}

func NewAdminController(logger *slog.Logger, speakers domain.SpeakerService, dates domain.ImportantDateService, renderer helpers.PageRenderer, flashes *helpers.Flasher, maxUploadBytes int64) *AdminController {
	return &AdminController{
		Logger:         logger,
		Speakers:       speakers,
		Dates:          dates,
		Renderer:       renderer,
		Flashes:        flashes,
		MaxUploadBytes: maxUploadBytes,
	}
}

// Dashboard lists every speaker and date with their edit controls.
func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	speakers, err := c.Speakers.List(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	dates, err := c.Dates.List(r.Context())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	user, _ := middleware.UserFromContext(r.Context())
	writePage(w, r, c.Logger, c.Renderer, http.StatusOK, render.PageAdmin, render.Page{
		Title:    "Dashboard",
		User:     user,
		Speakers: speakers,
		Dates:    dates,
		Flashes:  c.Flashes.Pop(w, r),
	})
}

// AddSpeaker creates a speaker from the multipart form, storing the photo if one was chosen.
func (c *AdminController) AddSpeaker(w http.ResponseWriter, r *http.Request) {
	in, closeFn, ok := c.speakerInput(w, r)
	if !ok {
		return
	}
	defer closeFn()

	sp, err := c.Speakers.Create(r.Context(), in)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "speaker created", "speaker_id", sp.ID, "image", sp.Image)
	c.Flashes.Add(w, r, helpers.FlashSuccess, msgSpeakerAdded)
	helpers.RedirectSeeOther(w, r, adminPath)
}

// EditSpeakerForm renders the edit form for one speaker.
func (c *AdminController) EditSpeakerForm(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r)
	if !ok {
		helpers.RenderNotFound(w, c.Renderer)
		return
	}
	sp, err := c.Speakers.Get(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	user, _ := middleware.UserFromContext(r.Context())
	writePage(w, r, c.Logger, c.Renderer, http.StatusOK, render.PageEditSpeaker, render.Page{
		Title:   "Edit " + sp.Name,
		User:    user,
		Speaker: sp,
		Flashes: c.Flashes.Pop(w, r),
	})
}

// EditSpeaker updates the speaker's fields. The photo is replaced only when a new file is uploaded.
func (c *AdminController) EditSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r)
	if !ok {
		helpers.RenderNotFound(w, c.Renderer)
		return
	}
	in, closeFn, ok := c.speakerInput(w, r)
	if !ok {
		return
	}
	defer closeFn()

	if _, err := c.Speakers.Update(r.Context(), id, in); err != nil {
		c.fail(w, r, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "speaker updated", "speaker_id", id, "image_replaced", !in.Image.Empty())
	c.Flashes.Add(w, r, helpers.FlashSuccess, msgSpeakerUpdated)
	helpers.RedirectSeeOther(w, r, adminPath)
}

// DeleteSpeaker removes the speaker row. The stored photo is left in place.
func (c *AdminController) DeleteSpeaker(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r)
	if !ok {
		helpers.RenderNotFound(w, c.Renderer)
		return
	}
	if err := c.Speakers.Delete(r.Context(), id); err != nil {
		c.fail(w, r, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "speaker deleted", "speaker_id", id)
	c.Flashes.Add(w, r, helpers.FlashSuccess, msgSpeakerDeleted)
	helpers.RedirectSeeOther(w, r, adminPath)
}

// AddDate inserts a date when both name and date_str are given; otherwise it redirects without a notice.
func (c *AdminController) AddDate(w http.ResponseWriter, r *http.Request) {
	if !c.parseForm(w, r) {
		return
	}
	d, created, err := c.Dates.Create(r.Context(), r.FormValue("name"), r.FormValue("date_str"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if created {
		c.Logger.InfoContext(r.Context(), "date created", "date_id", d.ID)
		c.Flashes.Add(w, r, helpers.FlashSuccess, msgDateAdded)
	}
	helpers.RedirectSeeOther(w, r, adminPath)
}

// EditDate overwrites the date label of one important date.
func (c *AdminController) EditDate(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r)
	if !ok {
		helpers.RenderNotFound(w, c.Renderer)
		return
	}
	if !c.parseForm(w, r) {
		return
	}
	if _, err := c.Dates.UpdateDate(r.Context(), id, r.FormValue("date_str")); err != nil {
		c.fail(w, r, err)
		return
	}
	c.Flashes.Add(w, r, helpers.FlashSuccess, msgDateUpdated)
	helpers.RedirectSeeOther(w, r, adminPath)
}

// DeleteDate removes one important date.
func (c *AdminController) DeleteDate(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.ParseID(r)
	if !ok {
		helpers.RenderNotFound(w, c.Renderer)
		return
	}
	if err := c.Dates.Delete(r.Context(), id); err != nil {
		c.fail(w, r, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "date deleted", "date_id", id)
	c.Flashes.Add(w, r, helpers.FlashSuccess, msgDateDeleted)
	helpers.RedirectSeeOther(w, r, adminPath)
}

func (c *AdminController) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := helpers.ParseForm(r, c.MaxUploadBytes); err != nil {
		c.Logger.WarnContext(r.Context(), "bad form", "path", r.URL.Path, "err", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}
	return true
}

func (c *AdminController) speakerInput(w http.ResponseWriter, r *http.Request) (domain.SpeakerInput, func(), bool) {
	if !c.parseForm(w, r) {
		return domain.SpeakerInput{}, nil, false
	}
	image, closeFn, err := helpers.FormUpload(r, "image")
	if err != nil {
		c.Logger.WarnContext(r.Context(), "bad upload", "path", r.URL.Path, "err", err)
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return domain.SpeakerInput{}, nil, false
	}
	return domain.SpeakerInput{
		Name:        r.FormValue("name"),
		Affiliation: r.FormValue("affiliation"),
		Bio:         r.FormValue("bio"),
		Image:       image,
	}, closeFn, true
}

// fail maps service errors onto the HTML responses.
func (c *AdminController) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.RenderNotFound(w, c.Renderer)
	case errors.Is(err, domain.ErrNameRequired):
		c.Flashes.Add(w, r, helpers.FlashWarning, msgNameRequired)
		helpers.RedirectSeeOther(w, r, adminPath)
	default:
		logFailure(c.Logger, r, err)
		helpers.InternalError(w)
	}
}
