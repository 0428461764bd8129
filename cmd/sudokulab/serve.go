package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	httpadapter "svw.info/sudokulab/internal/adapters/http"
	"svw.info/sudokulab/internal/generator"
	"svw.info/sudokulab/internal/infrastructure/config"
	"svw.info/sudokulab/internal/infrastructure/storage"
	"svw.info/sudokulab/internal/ports"
	"svw.info/sudokulab/internal/propagate"
	"svw.info/sudokulab/internal/solver"
	"svw.info/sudokulab/internal/usecase"
	"svw.info/sudokulab/internal/validator"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

func newServeCommand() *cobra.Command {
	var (
		addr       string
		dataDir    string
		levelStr   string
		solverKind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if addr != "" {
				cfg.Addr = addr
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if levelStr != "" {
				cfg.LogLevel = levelStr
			}

			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: parseLevel(cfg.LogLevel),
			}))

			bt := solver.NewBacktracking()
			var s ports.Solver = solver.NewDLX()
			if strings.ToLower(strings.TrimSpace(solverKind)) == "backtrack" {
				s = bt
			}

			var st ports.Storage
			if cfg.UsePocketBase() {
				pb, err := storage.NewPocketBase(cfg.PocketBaseURL, cfg.PocketBaseEmail, cfg.PocketBasePassword)
				if err != nil {
					return err
				}
				st = pb
				logger.Info("storage", "backend", "pocketbase", "url", cfg.PocketBaseURL)
			} else {
				if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
					return err
				}
				st = storage.NewFS(cfg.DataDir)
				logger.Info("storage", "backend", "fs", "dir", cfg.DataDir)
			}

			uc := usecase.New(s, bt, bt, propagate.New(), generator.NewUnique(bt), validator.New(), st)
			h := httpadapter.New(uc)

			mux := http.NewServeMux()
			h.Register(mux)

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           requestLogger(logger, mux),
				ReadHeaderTimeout: 5 * time.Second,
			}
			logger.Info("listening", "addr", cfg.Addr, "solver", solverKind)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from env, :8080)")
	cmd.Flags().StringVar(&dataDir, "data", "", "save directory (default from env, ./data)")
	cmd.Flags().StringVar(&levelStr, "log-level", "", "debug|info|warn|error")
	cmd.Flags().StringVar(&solverKind, "solver", "dlx", "solver for /api/solve: dlx|backtrack")
	return cmd
}
