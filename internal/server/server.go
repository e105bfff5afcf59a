// Package server hosts a preview of the car admin page. The page carries the
// JSON field runtime; no endpoint formats JSON itself.
package server

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-jsonfields/internal/caradmin"
	"github.com/goliatone/go-jsonfields/pkg/model"
	"github.com/goliatone/go-jsonfields/pkg/render"
	"github.com/goliatone/go-jsonfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-jsonfields/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-jsonfields/pkg/selector"
)

const (
	// RuntimePath serves the JSON field runtime for the configured selector.
	RuntimePath = "/runtime/jsonfields.js"
	// AssetsPrefix serves the embedded stylesheet.
	AssetsPrefix = "/assets/"

	// CSRFCookieName and CSRFFieldName carry the double-submit token.
	CSRFCookieName = "csrftoken"
	CSRFFieldName  = "csrfmiddlewaretoken"

	maxFormBytes   = 1 << 20
	csrfTokenBytes = 16
)

// Config holds the server dependencies.
type Config struct {
	Selector selector.Selector
	Logger   *slog.Logger
}

// Server renders the car admin preview.
type Server struct {
	selector selector.Selector
	logger   *slog.Logger
	renderer render.Renderer
	runtime  string
	router   chi.Router
}

// New validates cfg and builds the router.
func New(cfg Config) (*Server, error) {
	if len(cfg.Selector.Suffixes) == 0 {
		cfg.Selector = selector.Default()
	}
	if err := cfg.Selector.Validate(); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	renderer, err := vanilla.New(
		vanilla.WithRuntimeScriptSrc(RuntimePath),
		vanilla.WithStylesheets(AssetsPrefix+vanilla.StylesheetName),
		vanilla.WithoutInlineStyle(),
	)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		selector: cfg.Selector,
		logger:   cfg.Logger,
		renderer: renderer,
		runtime:  components.RuntimeScript(cfg.Selector),
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Post("/", s.handleSubmit)
	r.Get(RuntimePath, s.handleRuntime)
	r.Get("/healthz", handleHealth)
	r.Handle(AssetsPrefix+"*", http.StripPrefix(AssetsPrefix, http.FileServer(http.FS(vanilla.AssetsFS()))))
	return r
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	token, err := csrfToken(w, r)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "csrf token", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.renderPage(w, r, token, nil)
}

// handleSubmit shows the page again with the posted values as sent. Stored
// data is never touched.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil || !validToken(cookie.Value, r.PostForm.Get(CSRFFieldName)) {
		s.logger.WarnContext(r.Context(), "csrf check failed", "path", r.URL.Path)
		http.Error(w, "CSRF verification failed", http.StatusForbidden)
		return
	}
	form := caradmin.Form(caradmin.SampleCar(), caradmin.SampleOrganizations())
	s.renderPage(w, r, cookie.Value, submittedValues(form, r.PostForm))
}

// submittedValues maps the posted form onto field values. Browsers leave
// unchecked checkboxes out of the body, so those read as "false".
func submittedValues(form model.FormModel, posted url.Values) map[string]string {
	values := make(map[string]string, len(posted))
	for name := range posted {
		if name == CSRFFieldName {
			continue
		}
		values[name] = posted.Get(name)
	}
	for _, field := range form.Fields() {
		if field.Widget != model.WidgetCheckbox {
			continue
		}
		if _, ok := posted[field.Name]; !ok {
			values[field.Name] = "false"
		}
	}
	return values
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, token string, values map[string]string) {
	form := caradmin.Form(caradmin.SampleCar(), caradmin.SampleOrganizations())
	sel := s.selector
	out, err := s.renderer.Render(r.Context(), form, render.RenderOptions{
		Values:       values,
		HiddenFields: []render.HiddenField{render.CSRFToken(CSRFFieldName, token)},
		Selector:     &sel,
	})
	if err != nil {
		s.logger.ErrorContext(r.Context(), "render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	_, _ = w.Write(out)
}

func (s *Server) handleRuntime(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = io.WriteString(w, s.runtime)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

// csrfToken reuses the token cookie on r or issues a new one.
func csrfToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CSRFCookieName); err == nil && len(cookie.Value) == 2*csrfTokenBytes {
		return cookie.Value, nil
	}
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

func validToken(cookie, submitted string) bool {
	if cookie == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie), []byte(submitted)) == 1
}
