// Package server initializes and runs the application: it wires the
// credential store, the object store and the speech adapters together
// and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/kri-sh27/s3transcribe/internal/logging"
	"github.com/kri-sh27/s3transcribe/internal/server/config"
	"github.com/kri-sh27/s3transcribe/internal/server/session"
	"github.com/kri-sh27/s3transcribe/internal/server/shared/db"
	"github.com/kri-sh27/s3transcribe/internal/server/speech"
	"github.com/kri-sh27/s3transcribe/internal/server/storage"
	"github.com/kri-sh27/s3transcribe/internal/server/users"
	"github.com/kri-sh27/s3transcribe/internal/server/web"
	"github.com/kri-sh27/s3transcribe/internal/server/workflow"
)

// sweepInterval is how often expired sessions are evicted.
const sweepInterval = 5 * time.Minute

type App struct {
	config       *config.Config
	logger       logging.Logger
	sessions     *session.Manager
	controller   *session.Controller
	orchestrator *workflow.Orchestrator
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	um, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := um.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := storage.NewS3Store(ctx, storage.S3Options{
		AccessKeyID:     c.S3AccessKeyID,
		SecretAccessKey: c.S3SecretAccessKey,
		Region:          c.S3Region,
		BaseEndpoint:    c.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("object store init error: %w", err)
	}

	client := openai.NewClient(c.OpenAIAPIKey)
	transcriber := speech.NewOpenAITranscriber(client, c.TranscriptionModel)
	translator := speech.NewOpenAITranslator(client, c.TranslationModel)

	orchestrator, err := workflow.NewOrchestrator(store, transcriber, translator,
		c.S3Bucket, c.TempDir, workflow.Timeouts{
			Transfer:   c.DownloadTimeout,
			Transcribe: c.TranscribeTimeout,
			Translate:  c.TranslateTimeout,
		}, logger)
	if err != nil {
		return nil, fmt.Errorf("workflow init error: %w", err)
	}

	us := users.NewService(um.Users())

	return &App{
		config:       c,
		logger:       logger,
		sessions:     session.NewManager(c.SessionValidityDuration),
		controller:   session.NewController(us),
		orchestrator: orchestrator,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := web.NewServer(app.config.EndpointAddrHTTP, app.sessions, app.controller,
		app.orchestrator, app.config.SecretKey, app.config.SessionValidityDuration, app.logger)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.sessions.Run(ctx, sweepInterval)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
