// Package webapp wires the client application together: configuration, the
// backend SDK, the session service, preference storage, and the local UI
// HTTP server.
package webapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/myc22ka/mathapp-client/internal/chat"
	"github.com/myc22ka/mathapp-client/internal/exercise"
	"github.com/myc22ka/mathapp-client/internal/prefs"
	"github.com/myc22ka/mathapp-client/internal/session"
	"github.com/myc22ka/mathapp-client/internal/verifycode"
	"github.com/myc22ka/mathapp-client/pkg/logx"
	"github.com/myc22ka/mathapp-client/pkg/mathsdk"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	// clipboardProbeInterval throttles the opportunistic clipboard probe on
	// the verification screen.
	clipboardProbeInterval = 2 * time.Second
)

// Application encapsulates the client app with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Backend SDK, owner of the single backend session.
	client *mathsdk.Client

	// Side-effect adapters between session operations and HTTP handlers.
	redirects *redirectSink
	toasts    *toastQueue

	// Services
	sessions  *session.Service
	storage   *prefs.Storage
	sidebar   *prefs.SidebarStore
	exercises *exercise.Service
	assistant *chat.Service

	// Verification flow for the current attempt, keyed by email.
	verifyMu    sync.Mutex
	verifyFlow  *verifycode.Flow
	verifyEmail string

	server *http.Server
}

// New creates the application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: logx.New(logx.Options{
			Service: "mathapp-client",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		redirects: &redirectSink{},
		toasts:    &toastQueue{},
	}

	client, err := mathsdk.NewClient(cfg.BackendBaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend client: %w", err)
	}
	app.client = client

	storage, err := prefs.OpenStorage(sqliteDSN(cfg.DatabaseFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}
	app.storage = storage

	ctx := context.Background()
	app.sidebar = prefs.OpenSidebarStore(ctx, storage, app.logger)

	app.sessions = session.New(client, app.redirects, app.toasts, downloadSaver{dir: cfg.DownloadDir})
	app.exercises = exercise.New(client)
	app.assistant = chat.New(client)

	app.initHTTP()

	return app, nil
}

// Run resolves the initial session probe, starts the UI server, and blocks
// until shutdown is requested.
func (app *Application) Run() error {
	app.sessions.Initialize(context.Background())

	app.logger.Info("mathapp client starting",
		"port", app.cfg.UIPort,
		"backend", app.cfg.BackendBaseURL(),
		"version", BuildVersion,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully stops the UI server and closes the settings database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down mathapp client...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.storage.Close(); err != nil {
		app.logger.Error("error closing settings database", "error", err)
		return err
	}

	app.logger.Info("mathapp client stopped")
	return nil
}

// initHTTP initializes the local UI router and server.
func (app *Application) initHTTP() {
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.UIPort),
		Handler:           app.routes(),
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// beginVerification installs a fresh code-entry flow for the given email,
// replacing any previous attempt.
func (app *Application) beginVerification(email string) *verifycode.Flow {
	app.verifyMu.Lock()
	defer app.verifyMu.Unlock()

	app.verifyEmail = email
	app.verifyFlow = verifycode.New(verifycode.Config{
		Submit: func(ctx context.Context, code string) error {
			return app.client.VerifyCode(ctx, email, code)
		},
		Resend: func(ctx context.Context) error {
			_, err := app.client.ResendCode(ctx, email)
			return err
		},
		OnVerified: func(ctx context.Context) {
			app.sessions.CompleteVerification(ctx)
		},
		ProbeLimit: rate.NewLimiter(rate.Every(clipboardProbeInterval), 1),
	})
	return app.verifyFlow
}

// currentVerification returns the active flow, or nil when no verification
// attempt is in progress.
func (app *Application) currentVerification() (*verifycode.Flow, string) {
	app.verifyMu.Lock()
	defer app.verifyMu.Unlock()
	return app.verifyFlow, app.verifyEmail
}

func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
}
