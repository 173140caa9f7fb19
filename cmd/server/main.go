package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/domain/project"
	"github.com/tallyhq/tally/internal/domain/timesheet"
	"github.com/tallyhq/tally/internal/domain/user"
	"github.com/tallyhq/tally/internal/memory"
	"github.com/tallyhq/tally/internal/sqlite"
	"github.com/tallyhq/tally/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "store", cfg.DB.Store, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	userSvc := user.NewService(repos.users, logger)
	projectSvc := project.NewService(repos.projects, logger)
	entryValidator := timesheet.NewEntryValidation(repos.entries, repos.users, repos.projects)
	userValidator := user.NewValidator(repos.users)
	timesheetSvc := timesheet.NewService(repos.entries, repos.users, repos.projects, entryValidator, userValidator, logger)

	router := transport.NewRouter(transport.Services{
		Timesheets: timesheetSvc,
		Users:      userSvc,
		Projects:   projectSvc,
	}, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "store", cfg.DB.Store)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

type repositories struct {
	users    user.Repository
	projects project.Repository
	entries  timesheet.EntryRepository
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, func(), error) {
	if cfg.DB.Store == config.StoreMemory {
		var users *memory.UserRepository
		var projects *memory.ProjectRepository
		if cfg.DB.SeedDemo {
			users = memory.NewUserRepository(memory.DemoUsers()...)
			projects = memory.NewProjectRepository(memory.DemoProjects()...)
		} else {
			users = memory.NewUserRepository()
			projects = memory.NewProjectRepository()
		}
		return repositories{
			users:    users,
			projects: projects,
			entries:  memory.NewEntryRepository(),
		}, func() {}, nil
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return repositories{}, nil, fmt.Errorf("preparing database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return repositories{}, nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return repositories{}, nil, err
	}

	if cfg.DB.SeedDemo {
		ctx := context.Background()
		var existing int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&existing); err != nil {
			db.Close()
			return repositories{}, nil, fmt.Errorf("checking for existing users: %w", err)
		}
		// Demo ids are generated fresh each run; only seed an empty store.
		if existing == 0 {
			if err := db.SeedUsers(ctx, memory.DemoUsers()); err != nil {
				db.Close()
				return repositories{}, nil, err
			}
			if err := db.SeedProjects(ctx, memory.DemoProjects()); err != nil {
				db.Close()
				return repositories{}, nil, err
			}
			logger.Info("seeded demo users and projects")
		}
	}

	return repositories{
		users:    sqlite.NewUserRepository(db),
		projects: sqlite.NewProjectRepository(db),
		entries:  sqlite.NewEntryRepository(db),
	}, func() { db.Close() }, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
