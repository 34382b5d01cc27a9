package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/viewbind/internal/config"
	"github.com/vk/viewbind/internal/ctxlog"
	"github.com/vk/viewbind/internal/fsutil"
	"github.com/vk/viewbind/internal/schema"
)

// Extension is the file extension of HCL configuration files.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a single .hcl file, or every .hcl file below a directory, and
// merges them in lexical order. Relative paths inside a file are resolved
// against that file's directory.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := l.findFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := config.New()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		fileModel, err := translateFile(&root)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		fileModel.ResolvePaths(filepath.Dir(file))
		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}

	logger.Debug("HCL loading complete.", "files", len(files), "views", len(model.Views))
	return model, nil
}

func (l *Loader) findFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing config path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := fsutil.FindFilesByExtension(path, Extension)
	if err != nil {
		return nil, fmt.Errorf("failed to list HCL files in %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", Extension, path)
	}
	return files, nil
}
