// main is the entry point of the bookstore API server.
//
// STARTUP SEQUENCE:
//  1. Load configuration (profile file + .env + environment overrides)
//  2. Initialise the logger
//  3. Connect to the configured database backend (sqlite or postgres)
//  4. Build the pricing client (circuit-breaker guarded)
//  5. Register all HTTP routes on a chi router
//  6. Start the HTTP server in a separate goroutine
//  7. Block until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/bookstore-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/prod.yaml go run ./cmd/bookstore-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/akshat-sharma/bookstore-api/internal/config"
	"github.com/akshat-sharma/bookstore-api/internal/http/handlers/admin"
	"github.com/akshat-sharma/bookstore-api/internal/http/handlers/book"
	"github.com/akshat-sharma/bookstore-api/internal/http/middleware"
	"github.com/akshat-sharma/bookstore-api/internal/pricing"
	"github.com/akshat-sharma/bookstore-api/internal/storage"
	"github.com/akshat-sharma/bookstore-api/internal/storage/postgres"
	"github.com/akshat-sharma/bookstore-api/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad reads the profile YAML and panics if anything is wrong.
	// If this returns, the config is guaranteed valid.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting bookstore-api",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Database.Driver),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// The rest of the code only sees the storage.Storage interface —
	// which backend is behind it is decided here and nowhere else.
	store, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	log.Info("storage initialised")

	// ── 4. Pricing client ─────────────────────────────────────────────────
	pricer := pricing.New(cfg.Pricing, log)

	// Resolve the /admin credential pair; an empty configured password
	// is replaced by a generated one printed to the log.
	adminPass := middleware.ResolveAdminPassword(log, cfg.HTTPServer.AdminUser, cfg.HTTPServer.AdminPassword)

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	// Route table:
	//   GET    /books           → list all books
	//   POST   /books           → create a book
	//   GET    /books/featured  → featured book (breaker-guarded upstream)
	//   GET    /books/{id}      → get one book
	//   PUT    /books/{id}      → replace a book
	//   DELETE /books/{id}      → delete a book
	//   GET    /admin/stats     → row counts (basic auth)
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(middleware.Logger(log))

	router.Route("/books", func(r chi.Router) {
		r.Get("/", book.GetList(store))
		r.Post("/", book.New(store))
		r.Get("/featured", book.Featured(pricer))
		r.Get("/{id}", book.GetByID(store))
		r.Put("/{id}", book.Update(store))
		r.Delete("/{id}", book.Delete(store))
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth(cfg.HTTPServer.AdminUser, adminPass))
		r.Get("/stats", admin.Stats(store))
	})

	// ── 6. Create and start the HTTP Server ───────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		// Timeouts prevent slow clients from holding connections forever.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ListenAndServe blocks, so it runs in its own goroutine; the main
	// goroutine stays free to wait for the shutdown signal below.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ErrServerClosed is the expected result of Shutdown — not an error.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered channel of size 1 so the signal is not missed if main is
	// briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	// Give in-flight requests up to 5 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStorage picks the backend named by the config profile.
// config/local.yaml selects sqlite3 (embedded file), config/prod.yaml
// selects postgres (external server).
func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return postgres.New(cfg)
	case "sqlite3", "":
		return sqlite.New(cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
