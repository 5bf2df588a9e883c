package server

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	chirender "github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/goliatone/go-catalog/internal/store"
	"github.com/goliatone/go-catalog/pkg/forms"
	"github.com/goliatone/go-catalog/pkg/model"
	"github.com/goliatone/go-catalog/pkg/record"
	"github.com/goliatone/go-catalog/pkg/renderers/views"
	"github.com/goliatone/go-catalog/pkg/vocab"
)

// Config collects the dependencies a Server needs. Store, Views, and Forms
// are required; everything else has a working default.
type Config struct {
	Store     *store.Store
	Views     *views.Views
	Forms     map[record.Series]model.FormModel
	Thesaurus *vocab.Thesaurus
	Logger    *zap.Logger
	// Password is the shared curator password. An empty password disables
	// sign-in, leaving the catalog read-only.
	Password string
}

// Server serves the catalog's HTML pages and JSON API.
type Server struct {
	store    *store.Store
	views    *views.Views
	forms    map[record.Series]model.FormModel
	vocab    *vocab.Thesaurus
	logger   *zap.Logger
	pipeline *forms.Pipeline
	sessions *sessionManager
	password string
	router   chi.Router
}

// New wires the server and its routes.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("server: store is required")
	}
	if cfg.Views == nil {
		return nil, errors.New("server: views renderer is required")
	}
	if len(cfg.Forms) == 0 {
		return nil, errors.New("server: form models are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		store:    cfg.Store,
		views:    cfg.Views,
		forms:    cfg.Forms,
		vocab:    cfg.Thesaurus,
		logger:   logger,
		pipeline: forms.NewPipeline(cfg.Store, cfg.Store, cfg.Thesaurus, logger),
		sessions: newSessionManager(),
		password: cfg.Password,
	}
	s.router = s.routes()
	return s, nil
}

// Handler exposes the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-CSRF-Token"},
		MaxAge:         300,
	}))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(views.AssetsFS())))

	r.Get("/", s.handleIndex)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)
	r.Get("/msc/{id}", s.handleDisplay)
	r.Get("/edit/{id}", s.handleEditForm)
	r.Post("/edit/{id}", s.handleEditSubmit)

	r.Route("/api2", func(r chi.Router) {
		r.Use(chirender.SetContentType(chirender.ContentTypeJSON))
		r.Get("/rel", s.handleAPIRelationList)
		r.Get("/rel/{item}", s.handleAPIRelationItem)
		r.Get("/{item}", s.handleAPIItem)
	})

	return r
}

// parseItem turns a path segment like "m12" into a catalog identifier.
func parseItem(raw string) (record.ID, error) {
	return record.ParseID(record.IDPrefix + raw)
}

func (s *Server) writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.All(r.Context(), record.SeriesScheme)
	if err != nil {
		s.serverError(w, err)
		return
	}
	schemes := make([]views.Link, 0, len(records))
	for _, rec := range records {
		schemes = append(schemes, views.Link{
			ID:   rec.ID().String(),
			Name: rec.Name(),
			Path: views.DisplayPath(rec.ID()),
		})
	}
	sortLinksByName(schemes)

	body, err := s.views.RenderIndex(r.Context(), views.IndexData{
		Authenticated: s.sessions.authenticated(r),
		Flashes:       s.sessions.popFlashes(r),
		Schemes:       schemes,
	})
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeHTML(w, http.StatusOK, body)
}

func sortLinksByName(links []views.Link) {
	sort.SliceStable(links, func(i, j int) bool {
		return strings.ToLower(links[i].Name) < strings.ToLower(links[j].Name)
	})
}
