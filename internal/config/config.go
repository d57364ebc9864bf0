// Package config loads service configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// MaxFileSizeMB caps input size before any content is parsed.
	MaxFileSizeMB int64 `yaml:"max_file_size_mb"`

	// AllowedLocalBaseDir is the only directory local-path parsing may
	// read from. Required; the process refuses to start if it is missing
	// or cannot be canonicalized.
	AllowedLocalBaseDir string `yaml:"allowed_local_base_dir"`

	// OCRPDFImages routes raster images embedded in PDFs through OCR.
	OCRPDFImages bool `yaml:"ocr_pdf_images"`

	// OCRLanguages is the Tesseract language string, e.g. "eng" or "eng+fra".
	OCRLanguages string `yaml:"ocr_languages"`
}

// Load reads the YAML file named by FILEPARSER_CONFIG (when set), then
// applies environment overrides on top.
func Load() (Config, error) {
	cfg := Config{
		Port:          "8087",
		MaxFileSizeMB: 100,
		OCRLanguages:  "eng",
	}

	if path := os.Getenv("FILEPARSER_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.MaxFileSizeMB = envInt64("MAX_FILE_SIZE_MB", cfg.MaxFileSizeMB)
	cfg.AllowedLocalBaseDir = envOr("ALLOWED_LOCAL_BASE_DIR", cfg.AllowedLocalBaseDir)
	cfg.OCRPDFImages = envBool("OCR_PDF_IMAGES", cfg.OCRPDFImages)
	cfg.OCRLanguages = envOr("OCR_LANGUAGES", cfg.OCRLanguages)

	return cfg, nil
}

// Validate enforces the startup contract. Base-directory resolution is
// checked separately by the path resolver at startup.
func (c Config) Validate() error {
	if c.MaxFileSizeMB <= 0 {
		return fmt.Errorf("max_file_size_mb must be a positive integer, got %d", c.MaxFileSizeMB)
	}
	if c.AllowedLocalBaseDir == "" {
		return fmt.Errorf("allowed_local_base_dir is required")
	}
	return nil
}

// MaxFileSizeBytes converts the configured ceiling to bytes.
func (c Config) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
