// Package preview serves saved pages over HTTP so they can be viewed in a
// browser while they are being built.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/osteele/liquid"

	"github.com/brickyard/brickyard-cli/pkg/canvas"
	"github.com/brickyard/brickyard-cli/pkg/catalogue"
	"github.com/brickyard/brickyard-cli/pkg/compat"
	"github.com/brickyard/brickyard-cli/pkg/export"
	"github.com/brickyard/brickyard-cli/pkg/files"
	"github.com/brickyard/brickyard-cli/pkg/logger"
	"github.com/brickyard/brickyard-cli/pkg/models"
)

const shutdownTimeout = 5 * time.Second

// Deps holds the server's collaborators
type Deps struct {
	Catalogue *catalogue.Catalogue
	Settings  *models.Settings
	Logger    logger.Logger
}

// Server renders pages on request. Pages are read from disk for every
// request so edits show up on reload.
type Server struct {
	cat      *catalogue.Catalogue
	settings *models.Settings
	log      logger.Logger
	views    *liquid.Engine
}

func New(deps Deps) *Server {
	if deps.Catalogue == nil {
		deps.Catalogue = catalogue.Default()
	}
	if deps.Settings == nil {
		deps.Settings = models.DefaultSettings()
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	return &Server{
		cat:      deps.Catalogue,
		settings: deps.Settings,
		log:      deps.Logger.WithField("component", "preview"),
		views:    liquid.NewEngine(),
	}
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/", s.index)
	r.Get("/catalogue", s.catalogue)
	r.Route("/pages/{name}", func(r chi.Router) {
		r.Get("/", s.page)
		r.Get("/code", s.code)
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("preview server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve preview: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down preview: %w", err)
	}
	s.log.Info("preview server stopped")
	return nil
}

// render loads a page into a canvas and returns the theme to use. A ?theme=
// query overrides the saved one.
func (s *Server) render(r *http.Request) (*canvas.Canvas, string, error) {
	page, err := files.ReadPage(chi.URLParam(r, "name"))
	if err != nil {
		return nil, "", err
	}
	c := canvas.New(compat.Default())
	c.Load(page.Nodes, page.Counter)

	theme := page.Theme
	if q := r.URL.Query().Get("theme"); q != "" {
		theme = q
	}
	if theme == "" {
		theme = s.settings.Export.Theme
	}
	return c, theme, nil
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	c, theme, err := s.render(r)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	doc, err := export.Page(c, theme, s.settings.Export.Title)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondHTML(w, doc)
}

func (s *Server) code(w http.ResponseWriter, r *http.Request) {
	c, theme, err := s.render(r)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	doc, err := export.Page(c, theme, s.settings.Export.Title)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out, err := s.views.ParseAndRenderString(codeTemplate, map[string]any{
		"name": chi.URLParam(r, "name"),
		"code": export.HighlightHTML(doc),
	})
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondHTML(w, out)
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	pages, err := files.ListPages()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out, err := s.views.ParseAndRenderString(indexTemplate, map[string]any{
		"pages": pages,
		"css":   export.BootstrapCSS,
	})
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondHTML(w, out)
}

func (s *Server) catalogue(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.cat.Search(r.URL.Query().Get("search")))
}

func (s *Server) respondHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error(fmt.Sprintf("failed to encode response: %v", err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

func requestLogger(log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.WithFields(map[string]interface{}{
				"method":    r.Method,
				"path":      r.URL.Path,
				"status":    ww.Status(),
				"bytes":     ww.BytesWritten(),
				"duration":  time.Since(start).String(),
				"requestID": chimiddleware.GetReqID(r.Context()),
			}).Debug("http request")
		})
	}
}
