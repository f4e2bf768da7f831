package http

import (
	"net/http"
	"path/filepath"
	"strings"

	_ "confsite/docs"
	"confsite/internal/adapters/render"
	"confsite/internal/delivery/http/controllers"
	"confsite/internal/delivery/http/middleware"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig carries the controllers and file locations the router mounts.
type RouterConfig struct {
	Public         *controllers.PublicController
	Auth           *controllers.AuthController
	Admin          *controllers.AdminController
	Health         *controllers.HealthController
	RequireSession func(http.HandlerFunc) http.HandlerFunc
	CORSOrigins    []string

	StaticDir string
	// UploadDir is served at /uploads/ when it lies outside StaticDir.
	UploadDir string
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()
	guard := cfg.RequireSession

	// Public site
	mux.HandleFunc("GET /{$}", cfg.Public.Index)
	mux.HandleFunc("/", cfg.Public.NotFound)

	// Auth
	mux.HandleFunc("GET /login", cfg.Auth.LoginForm)
	mux.HandleFunc("POST /login", cfg.Auth.Login)
	mux.HandleFunc("GET /logout", cfg.Auth.Logout)

	// Admin
	mux.HandleFunc("GET /admin", guard(cfg.Admin.Dashboard))
	mux.HandleFunc("POST /admin/add_speaker", guard(cfg.Admin.AddSpeaker))
	mux.HandleFunc("GET /admin/edit_speaker/{id}", guard(cfg.Admin.EditSpeakerForm))
	mux.HandleFunc("POST /admin/edit_speaker/{id}", guard(cfg.Admin.EditSpeaker))
	mux.HandleFunc("GET /admin/delete_speaker/{id}", guard(cfg.Admin.DeleteSpeaker))
	mux.HandleFunc("POST /admin/add_date", guard(cfg.Admin.AddDate))
	mux.HandleFunc("POST /admin/edit_date/{id}", guard(cfg.Admin.EditDate))
	mux.HandleFunc("GET /admin/delete_date/{id}", guard(cfg.Admin.DeleteDate))

	// API Routes
	mux.Handle("GET /api/speakers", middleware.CORS(cfg.CORSOrigins, http.HandlerFunc(cfg.Public.ListSpeakers)))
	mux.Handle("GET /api/dates", middleware.CORS(cfg.CORSOrigins, http.HandlerFunc(cfg.Public.ListDates)))
	mux.Handle("GET /api/", middleware.CORS(cfg.CORSOrigins, http.HandlerFunc(cfg.Public.APINotFound)))
	mux.Handle("OPTIONS /api/", middleware.CORS(cfg.CORSOrigins, http.NotFoundHandler()))
	mux.HandleFunc("GET /healthz", cfg.Health.Health)

	// Files
	mux.Handle("GET "+render.AssetsPath, render.Assets())
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	if uploadsURL, separate := UploadsURL(cfg.StaticDir, cfg.UploadDir); separate {
		mux.Handle("GET "+uploadsURL+"/", http.StripPrefix(uploadsURL+"/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// UploadsURL returns the public path of locally stored images. separate is true when
// uploadDir lies outside staticDir and needs its own /uploads/ mount.
func UploadsURL(staticDir, uploadDir string) (urlPath string, separate bool) {
	if staticDir != "" && uploadDir != "" {
		static, err1 := filepath.Abs(staticDir)
		upload, err2 := filepath.Abs(uploadDir)
		if err1 == nil && err2 == nil {
			rel, err := filepath.Rel(static, upload)
			if err == nil && rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				return "/static/" + filepath.ToSlash(rel), false
			}
		}
	}
	return "/uploads", true
}
