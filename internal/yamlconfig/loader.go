// Package yamlconfig provides the YAML implementation of config.Loader.
//
//	templates:
//	  root: views
//	binding:
//	  master_fallback: Site
//	views:
//	  Home/Index.spark:
//	    model: example.com/shop/views.HomeModel
//	    master: ""      # no master; omit or use null for the default
package yamlconfig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vk/viewbind/internal/config"
	"github.com/vk/viewbind/internal/ctxlog"
)

// Extensions are the file extensions handled by this loader.
var Extensions = []string{".yaml", ".yml"}

type file struct {
	Templates struct {
		Root       string   `yaml:"root"`
		Extensions []string `yaml:"extensions"`
		Ignore     []string `yaml:"ignore"`
	} `yaml:"templates"`
	Binding struct {
		MasterFallback string   `yaml:"master_fallback"`
		BindingsFile   string   `yaml:"bindings_file"`
		SharedDirs     []string `yaml:"shared_dirs"`
		Workers        int      `yaml:"workers"`
	} `yaml:"binding"`
	Types struct {
		Packages []string `yaml:"packages"`
		Dir      string   `yaml:"dir"`
	} `yaml:"types"`
	Views map[string]view `yaml:"views"`
}

type view struct {
	Model      string   `yaml:"model"`
	Master     *string  `yaml:"master"`
	Namespaces []string `yaml:"namespaces"`
}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a single YAML document from path. Unknown keys are errors.
// Relative paths are resolved against the file's directory.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing config path %s: %w", path, err)
	}
	defer f.Close()

	var raw file
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	model := config.New()
	model.Templates = config.Templates{
		Root:       raw.Templates.Root,
		Extensions: raw.Templates.Extensions,
		Ignore:     raw.Templates.Ignore,
	}
	model.Binding = config.Binding{
		MasterFallback: raw.Binding.MasterFallback,
		BindingsFile:   raw.Binding.BindingsFile,
		SharedDirs:     raw.Binding.SharedDirs,
		Workers:        raw.Binding.Workers,
	}
	model.Types = config.Types{Packages: raw.Types.Packages, Dir: raw.Types.Dir}
	for p, v := range raw.Views {
		override := &config.ViewOverride{Path: p, Model: v.Model, Master: v.Master, Namespaces: v.Namespaces}
		if err := model.AddView(override); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	model.ResolvePaths(filepath.Dir(path))

	logger.Debug("YAML loading complete.", "views", len(model.Views))
	return model, nil
}
