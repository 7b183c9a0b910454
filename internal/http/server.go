package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"finanzas/internal/core"
	"finanzas/internal/log"
	"finanzas/internal/middleware/security"
	"finanzas/internal/middleware/trace"
	"finanzas/internal/services"
	appweb "finanzas/web"
)

// ReadyFunc probes the backing store for /readyz.
type ReadyFunc func(ctx context.Context) error

// Server wraps http.Server with the application handlers.
type Server struct {
	http.Server

	ledger    *services.Ledger
	ready     ReadyFunc
	templates *template.Template
	logger    *log.Logger
	tracer    *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, ledger *services.Ledger, ready ReadyFunc, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Discard()
	}
	s := &Server{
		ledger: ledger,
		ready:  ready,
		logger: logger.WithComponent(log.ComponentHTTP),
		tracer: trace.NewMiddleware(logger),
	}

	t, err := template.New("").Funcs(templateFuncs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.WithComponent(log.ComponentTemplate).Warn("Failed parsing templates", log.FieldError, err)
	} else {
		s.templates = t
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.tracer.Handler)
	r.Use(log.Middleware(logger))
	r.Use(log.RequestIDMiddleware(trace.RequestIDFrom))
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Handler)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.With(security.StaticAssetMiddleware(3600)).Handle("/static/*", static)
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Group(func(r chi.Router) {
		r.Use(security.NoStore)

		r.Get(ViewDashboard.Path(), s.handleDashboard)
		r.Post("/budget", s.handleSetBudget)
		r.Post("/transactions", s.handleCreateTransaction)
		r.Post("/transactions/{id}/delete", s.handleDeleteTransaction)
		r.Get("/export", s.handleExport)

		r.Get(ViewCategories.Path(), s.handleListView(ViewCategories))
		r.Post(ViewCategories.Path(), s.handleAddCategory)
		r.Post(ViewCategories.Path()+"/delete", s.handleDeleteCategory)

		r.Get(ViewUsers.Path(), s.handleListView(ViewUsers))
		r.Post(ViewUsers.Path(), s.handleAddUser)
		r.Post(ViewUsers.Path()+"/delete", s.handleDeleteUser)
	})

	s.Server = http.Server{Addr: addr, Handler: r}
	return s
}

// TotalRequests reports how many requests the server has traced.
func (s *Server) TotalRequests() int64 {
	return s.tracer.TotalRequests()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.logger.Info("Shutting down HTTP server", "requests_served", s.TotalRequests())
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": formatAmount,
		"kinds": core.Kinds,
	}
}

// render executes a named template, answering 500 when templates are
// unavailable or execution fails.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	logger := log.FromContext(r.Context()).WithComponent(log.ComponentTemplate)
	if s.templates == nil {
		logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		logger.ErrorContext(r.Context(), "Template execution failed", log.FieldError, err, "template", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness probe failed", log.FieldError, err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
