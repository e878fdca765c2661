// Command publigo serves the document mail-merge API and its static UI.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/publigo-project/publigo"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	configPath := flag.StringP("config", "c", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	slots := flag.IntP("slots", "w", 0, "concurrent converter processes (0 = auto)")
	verbose := flag.BoolP("verbose", "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug("maxprocs: " + format)
	}))

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			logger.Error("loading config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.applyEnv()
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *slots > 0 {
		cfg.Slots = *slots
	}

	// The converter binary is a startup requirement: refuse to start
	// rather than fail every request individually.
	sofficePath := cfg.SofficePath
	if sofficePath == "" {
		resolved, err := publigo.ResolveSofficePath()
		if err != nil {
			logger.Error("LibreOffice not found; install it or set SOFFICE_PATH", "error", err)
			os.Exit(1)
		}
		sofficePath = resolved
	}

	slotCount := publigo.ResolveSlotCount(cfg.Slots)
	engine, err := publigo.NewSofficeEngine(sofficePath, publigo.NewConvertSlots(slotCount))
	if err != nil {
		logger.Error("creating conversion engine", "error", err)
		os.Exit(1)
	}
	logger.Info("using LibreOffice", "path", sofficePath, "slots", slotCount)

	svc := publigo.New(engine,
		publigo.WithTimeout(time.Duration(cfg.TimeoutSec)*time.Second),
		publigo.WithLogger(logger),
	)

	h := newHandler(svc, sofficePath, cfg.MaxUploadMB<<20)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /merge", h.handleMerge)
	mux.HandleFunc("GET /health", h.handleHealth)
	if cfg.PublicDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.PublicDir)))
	}

	// Middleware chain: recovery -> logging -> mux
	var handler http.Handler = mux
	handler = logMiddleware(handler)
	handler = recoveryMiddleware(handler)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Minute, // large batches convert synchronously
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
