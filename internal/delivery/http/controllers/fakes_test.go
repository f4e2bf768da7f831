package controllers

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"confsite/internal/adapters/render"
	"confsite/internal/delivery/http/helpers"
	"confsite/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New("/static/uploads")
	require.NoError(t, err)
	return r
}

func newFlasher() *helpers.Flasher { return helpers.NewFlasher("test-secret", false) }

// fakeSpeakerService implements domain.SpeakerService for handler tests.
type fakeSpeakerService struct {
	speakers  map[int64]*domain.Speaker
	nextID    int64
	err       error
	lastInput domain.SpeakerInput
	lastBytes string
}

func newFakeSpeakerService(speakers ...*domain.Speaker) *fakeSpeakerService {
	f := &fakeSpeakerService{speakers: map[int64]*domain.Speaker{}}
	for _, s := range speakers {
		f.speakers[s.ID] = s
		if s.ID > f.nextID {
			f.nextID = s.ID
		}
	}
	return f
}

func (f *fakeSpeakerService) List(ctx context.Context) ([]*domain.Speaker, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Speaker, 0, len(f.speakers))
	for id := int64(1); id <= f.nextID; id++ {
		if s, ok := f.speakers[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSpeakerService) Get(ctx context.Context, id int64) (*domain.Speaker, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.speakers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeSpeakerService) record(in domain.SpeakerInput) {
	f.lastInput = in
	f.lastBytes = ""
	if !in.Image.Empty() {
		b, _ := io.ReadAll(in.Image.Content)
		f.lastBytes = string(b)
	}
}

func (f *fakeSpeakerService) Create(ctx context.Context, in domain.SpeakerInput) (*domain.Speaker, error) {
	f.record(in)
	if f.err != nil {
		return nil, f.err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrNameRequired
	}
	f.nextID++
	image := render.DefaultSpeakerImage
	if !in.Image.Empty() {
		image = in.Image.Filename
	}
	s := &domain.Speaker{ID: f.nextID, Name: in.Name, Affiliation: in.Affiliation, Bio: in.Bio, Image: image}
	f.speakers[s.ID] = s
	return s, nil
}

func (f *fakeSpeakerService) Update(ctx context.Context, id int64, in domain.SpeakerInput) (*domain.Speaker, error) {
	f.record(in)
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.speakers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrNameRequired
	}
	s.Name, s.Affiliation, s.Bio = in.Name, in.Affiliation, in.Bio
	if !in.Image.Empty() {
		s.Image = in.Image.Filename
	}
	return s, nil
}

func (f *fakeSpeakerService) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.speakers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.speakers, id)
	return nil
}

// fakeDateService implements domain.ImportantDateService for handler tests.
type fakeDateService struct {
	dates  map[int64]*domain.ImportantDate
	nextID int64
	err    error
}

func newFakeDateService(dates ...*domain.ImportantDate) *fakeDateService {
	f := &fakeDateService{dates: map[int64]*domain.ImportantDate{}}
	for _, d := range dates {
		f.dates[d.ID] = d
		if d.ID > f.nextID {
			f.nextID = d.ID
		}
	}
	return f
}

func (f *fakeDateService) List(ctx context.Context) ([]*domain.ImportantDate, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.ImportantDate, 0, len(f.dates))
	for id := int64(1); id <= f.nextID; id++ {
		if d, ok := f.dates[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDateService) Create(ctx context.Context, name, dateStr string) (*domain.ImportantDate, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	name, dateStr = strings.TrimSpace(name), strings.TrimSpace(dateStr)
	if name == "" || dateStr == "" {
		return nil, false, nil
	}
	f.nextID++
	d := &domain.ImportantDate{ID: f.nextID, Name: name, DateStr: dateStr}
	f.dates[d.ID] = d
	return d, true, nil
}

func (f *fakeDateService) UpdateDate(ctx context.Context, id int64, dateStr string) (*domain.ImportantDate, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.dates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	d.DateStr = strings.TrimSpace(dateStr)
	return d, nil
}

func (f *fakeDateService) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.dates[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.dates, id)
	return nil
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	username string
	password string
	err      error
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	if strings.TrimSpace(username) != f.username || password != f.password {
		return "", nil, domain.ErrInvalidCredentials
	}
	return "token-1", &domain.User{ID: 1, Username: f.username}, nil
}

func (f *fakeAuthService) CurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	if id != 1 {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: 1, Username: f.username}, nil
}

func (f *fakeAuthService) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	return false, nil
}

// formRequest builds a urlencoded POST.
func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// multipartRequest builds a multipart POST with optional image file.
func multipartRequest(t *testing.T, path string, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// withID sets the {id} path value the router would extract.
func withID(req *http.Request, id string) *http.Request {
	req.SetPathValue("id", id)
	return req
}

// popFlashes reads the flash cookie set on rr the way the next page view would.
func popFlashes(t *testing.T, rr *httptest.ResponseRecorder) []render.Flash {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range rr.Result().Cookies() {
		if c.Name == helpers.FlashCookieName && c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return newFlasher().Pop(httptest.NewRecorder(), req)
}
