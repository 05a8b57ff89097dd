// Package web serves the browser UI: registration and login forms, the
// authenticated home screen with the stored file list, and the
// transcribe, record, upload and download actions.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/kri-sh27/s3transcribe/internal/logging"
	"github.com/kri-sh27/s3transcribe/internal/server/session"
	"github.com/kri-sh27/s3transcribe/internal/server/workflow"
)

//go:embed html/*.html
var htmlFS embed.FS

type Server struct {
	address      string
	sessions     *session.Manager
	controller   *session.Controller
	orchestrator *workflow.Orchestrator
	templates    *template.Template
	jwtSecret    []byte
	sessionTTL   time.Duration
	logger       logging.Logger
}

func NewServer(address string, sessions *session.Manager, controller *session.Controller,
	orchestrator *workflow.Orchestrator, secretKey string, sessionTTL time.Duration,
	logger logging.Logger) (*Server, error) {

	templates, err := template.ParseFS(htmlFS, "html/*.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		address:      address,
		sessions:     sessions,
		controller:   controller,
		orchestrator: orchestrator,
		templates:    templates,
		jwtSecret:    []byte(secretKey),
		sessionTTL:   sessionTTL,
		logger:       logger.With("module", "web_server"),
	}, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return s.logRequest(s.withSession(h))
	}

	mux.HandleFunc("/", wrap(s.handleIndex))
	mux.HandleFunc("/register", wrap(s.handleRegister))
	mux.HandleFunc("/login", wrap(s.handleLogin))
	mux.HandleFunc("/navigate", wrap(s.handleNavigate))
	mux.HandleFunc("/logout", wrap(s.handleLogout))

	mux.HandleFunc("/transcribe", wrap(s.requireAuth(s.handleTranscribe)))
	mux.HandleFunc("/record", wrap(s.requireAuth(s.handleRecord)))
	mux.HandleFunc("/record/persist", wrap(s.requireAuth(s.handleRecordPersist)))
	mux.HandleFunc("/record/discard", wrap(s.requireAuth(s.handleRecordDiscard)))
	mux.HandleFunc("/upload", wrap(s.requireAuth(s.handleUpload)))
	mux.HandleFunc("/download", wrap(s.requireAuth(s.handleDownload)))

	return mux
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
