package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperspot/fileparser/internal/api"
	"github.com/hyperspot/fileparser/internal/config"
	"github.com/hyperspot/fileparser/internal/ocr"
	"github.com/hyperspot/fileparser/internal/parser"
	"github.com/hyperspot/fileparser/internal/pathguard"
	"github.com/hyperspot/fileparser/internal/service"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// The base directory must canonicalize at startup; refusing to start
	// beats running without the path restriction.
	resolver, err := pathguard.NewResolver(cfg.AllowedLocalBaseDir)
	if err != nil {
		log.Error("invalid allowed_local_base_dir", "error", err)
		os.Exit(1)
	}

	// OCR is optional: without the ocr build tag (or Tesseract) image
	// inputs degrade to placeholder blocks.
	ocrClient, err := ocr.New()
	if err != nil {
		log.Info("ocr unavailable, image text extraction disabled", "reason", err)
		ocrClient = nil
	} else {
		defer ocrClient.Close()
		if err := ocrClient.SetLanguages(cfg.OCRLanguages); err != nil {
			log.Warn("failed to set ocr languages", "languages", cfg.OCRLanguages, "error", err)
		}
	}

	registry := parser.NewRegistry(parser.Options{
		OCR:          ocrClient,
		OCRPDFImages: cfg.OCRPDFImages,
	})
	svc := service.New(cfg, resolver, registry, log)
	srv := api.NewServer(svc, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting fileparser",
		"port", cfg.Port,
		"base_dir", resolver.Base(),
		"max_file_size_mb", cfg.MaxFileSizeMB,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
