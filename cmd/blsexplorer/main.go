package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blsexplorer/blsapi"
	"blsexplorer/config"
	"blsexplorer/loader"
	"blsexplorer/server"
	"blsexplorer/session"
)

func main() {
	defaultCfg := config.DefaultConfig()
	addrDefault := defaultCfg.ListenAddr
	if value, ok := config.EnvString("EXPLORER_ADDR"); ok {
		addrDefault = value
	}
	apiBaseDefault := defaultCfg.APIBaseURL
	if value, ok := config.EnvString("EXPLORER_API_BASE"); ok {
		apiBaseDefault = value
	}
	siteBaseDefault := defaultCfg.SiteBaseURL
	if value, ok := config.EnvString("EXPLORER_SITE_BASE"); ok {
		siteBaseDefault = value
	}
	cacheDefault := defaultCfg.MetadataCacheSize
	if value, ok, err := config.EnvInt("EXPLORER_METADATA_CACHE"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid EXPLORER_METADATA_CACHE: %v\n", err)
		os.Exit(1)
	} else if ok {
		cacheDefault = value
	}

	addr := flag.String("addr", addrDefault, "HTTP listen address")
	apiBase := flag.String("api-base", apiBaseDefault, "BLS API base URL")
	siteBase := flag.String("site-base", siteBaseDefault, "bls.gov base URL for survey pages")
	timeoutSec := flag.Int("timeout", int(defaultCfg.Timeout/time.Second), "Upstream request timeout (seconds)")
	cacheSize := flag.Int("metadata-cache", cacheDefault, "Metadata cache entries")
	previewRows := flag.Int("preview-rows", defaultCfg.PreviewRows, "Rows shown in the data preview")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := defaultCfg
	cfg.ListenAddr = *addr
	cfg.APIBaseURL = *apiBase
	cfg.SiteBaseURL = *siteBase
	cfg.Timeout = time.Duration(*timeoutSec) * time.Second
	cfg.MetadataCacheSize = *cacheSize
	cfg.PreviewRows = *previewRows
	cfg.Verbose = *verbose

	// The one configuration secret: the shared demo API key. Absent means
	// requests run unkeyed at the API's lower limits.
	if value, ok := config.EnvString("BLS_API_KEY"); ok {
		cfg.DemoAPIKey = value
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	client, err := blsapi.NewClient(cfg)
	if err != nil {
		slog.Error("initialising API client", slog.Any("error", err))
		os.Exit(1)
	}

	loaders, err := loader.New(client, cfg.MetadataCacheSize)
	if err != nil {
		slog.Error("initialising loaders", slog.Any("error", err))
		os.Exit(1)
	}

	srv := server.New(cfg, loaders, client, session.NewStore(), client.Metrics.Registry)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("explorer listening",
			slog.String("addr", cfg.ListenAddr),
			slog.String("api_base", cfg.APIBaseURL),
			slog.Bool("demo_key", cfg.DemoAPIKey != ""),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", slog.Any("error", err))
	}
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
