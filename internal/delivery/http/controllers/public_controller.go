package controllers

import (
	"log/slog"
	"net/http"

	"confsite/internal/adapters/render"
	"confsite/internal/delivery/http/helpers"
	"confsite/internal/domain"
)

// SpeakerListResponse is the success envelope for GET /api/speakers.
type SpeakerListResponse struct {
	Data  []*domain.Speaker `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ImportantDateListResponse is the success envelope for GET /api/dates.
type ImportantDateListResponse struct {
	Data  []*domain.ImportantDate `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// PublicController serves the landing page and the read-only JSON API.
type PublicController struct {
	Logger   *slog.Logger
	Speakers domain.SpeakerService
	Dates    domain.ImportantDateService
	Renderer helpers.PageRenderer
	Flashes  *helpers.Flasher
}

func NewPublicController(logger *slog.Logger, speakers domain.SpeakerService, dates domain.ImportantDateService, renderer helpers.PageRenderer, flashes *helpers.Flasher) *PublicController {
	return &PublicController{
		Logger:   logger,
		Speakers: speakers,
		Dates:    dates,
		Renderer: renderer,
		Flashes:  flashes,
	}
}

// Index renders the public listing of speakers and important dates.
func (c *PublicController) Index(w http.ResponseWriter, r *http.Request) {
	speakers, err := c.Speakers.List(r.Context())
	if err != nil {
		logFailure(c.Logger, r, err)
		helpers.InternalError(w)
		return
	}
	dates, err := c.Dates.List(r.Context())
	if err != nil {
		logFailure(c.Logger, r, err)
		helpers.InternalError(w)
		return
	}
	writePage(w, r, c.Logger, c.Renderer, http.StatusOK, render.PageIndex, render.Page{
		Speakers: speakers,
		Dates:    dates,
		Flashes:  c.Flashes.Pop(w, r),
	})
}

// NotFound renders the 404 page for unmatched paths.
func (c *PublicController) NotFound(w http.ResponseWriter, r *http.Request) {
	helpers.RenderNotFound(w, c.Renderer)
}

// APINotFound answers unknown /api/ paths in the JSON envelope.
func (c *PublicController) APINotFound(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no such endpoint: "+r.URL.Path)
}

// ListSpeakers godoc
// @Summary List speakers
// @Description Returns every speaker ordered by id. image is a filename under the uploads path, a site path such as the default placeholder, or an absolute URL.
// @Tags public
// @Produce json
// @Success 200 {object} controllers.SpeakerListResponse "data contains the speakers"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/speakers [get]
func (c *PublicController) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	speakers, err := c.Speakers.List(r.Context())
	if err != nil {
		logFailure(c.Logger, r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not list speakers")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// ListDates godoc
// @Summary List important dates
// @Description Returns every important date ordered by id. date_str is free text shown verbatim.
// @Tags public
// @Produce json
// @Success 200 {object} controllers.ImportantDateListResponse "data contains the dates"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/dates [get]
func (c *PublicController) ListDates(w http.ResponseWriter, r *http.Request) {
	dates, err := c.Dates.List(r.Context())
	if err != nil {
		logFailure(c.Logger, r, err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not list dates")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dates)
}
