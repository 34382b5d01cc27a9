package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vk/viewbind/internal/config"
	"github.com/vk/viewbind/internal/diagnostics"
	"github.com/vk/viewbind/internal/hcl"
	"github.com/vk/viewbind/internal/yamlconfig"
)

// Config holds everything an App needs to be constructed. Values set here
// take precedence over the configuration file.
type Config struct {
	ConfigPath   string // .hcl, .yaml/.yml, or a directory of .hcl files
	TemplateRoot string
	TypePackages []string
	Workers      int

	LogFormat string
	LogLevel  string

	// History receives the report of every pass. When nil the App keeps its
	// own history of diagnostics.DefaultCapacity reports.
	History *diagnostics.History
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" && cfg.TemplateRoot == "" {
		return nil, errors.New("either a configuration file or a template root is required")
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: %d", config.ErrInvalidWorkers, cfg.Workers)
	}
	return &cfg, nil
}

// LoaderFor picks the configuration loader for path by its extension.
// Directories are read as a set of HCL files.
func LoaderFor(path string) (config.Loader, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return hcl.NewLoader(), nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == hcl.Extension:
		return hcl.NewLoader(), nil
	case slices.Contains(yamlconfig.Extensions, ext):
		return yamlconfig.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported configuration format %q for %s", ext, path)
	}
}

// buildModel loads the configuration file, if any, overlays the values
// given in cfg and applies defaults.
func buildModel(ctx context.Context, cfg *Config) (*config.Model, error) {
	model := config.New()
	if cfg.ConfigPath != "" {
		loader, err := LoaderFor(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		loaded, err := loader.Load(ctx, cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		model = loaded
	}

	if cfg.TemplateRoot != "" {
		root, err := filepath.Abs(cfg.TemplateRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve template root: %w", err)
		}
		model.Templates.Root = root
	}
	if len(cfg.TypePackages) > 0 {
		model.Types.Packages = cfg.TypePackages
	}
	if cfg.Workers > 0 {
		model.Binding.Workers = cfg.Workers
	}

	model.ApplyDefaults()
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return model, nil
}
