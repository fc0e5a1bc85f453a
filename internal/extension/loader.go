package extension

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/woxQAQ/boundary-probe/internal/wasm"
	"go.uber.org/zap"
)

// Loader handles loading extensions from disk.
type Loader struct {
	moduleLoader *wasm.ModuleLoader
	logger       *zap.Logger
}

// NewLoader creates a new extension loader.
func NewLoader(runtime *wasm.Runtime, logger *zap.Logger) *Loader {
	return &Loader{
		moduleLoader: wasm.NewModuleLoader(runtime, logger),
		logger:       logger.With(zap.String("component", "extension-loader")),
	}
}

// LoadExtension loads a single extension from a directory.
func (l *Loader) LoadExtension(ctx context.Context, dir string) (*Extension, error) {
	manifest, err := ParseManifest(dir)
	if err != nil {
		return nil, err
	}

	l.logger.Info("Loading extension",
		zap.String("name", manifest.Name),
		zap.String("version", manifest.Version),
	)

	// Compiled modules are cached under the extension name so the manager
	// can instantiate them by name.
	data, err := os.ReadFile(manifest.WasmPath())
	if err != nil {
		return nil, &LoadError{Name: manifest.Name, Err: err}
	}

	compiled, err := l.moduleLoader.LoadModuleFromMemory(ctx, manifest.Name, data)
	if err != nil {
		return nil, &LoadError{Name: manifest.Name, Err: err}
	}

	ext := &Extension{
		Manifest: manifest,
		Compiled: compiled,
		LoadedAt: time.Now(),
	}

	l.logger.Info("Extension loaded successfully",
		zap.String("name", manifest.Name),
		zap.Int64("size_bytes", compiled.SizeBytes),
	)

	return ext, nil
}

// DiscoverExtensions scans directories for extensions.
func (l *Loader) DiscoverExtensions(ctx context.Context, paths []string) ([]*Extension, error) {
	var extensions []*Extension
	var errs []error

	for _, basePath := range paths {
		l.logger.Debug("Scanning extension directory", zap.String("path", basePath))

		entries, err := os.ReadDir(basePath)
		if err != nil {
			if os.IsNotExist(err) {
				l.logger.Warn("Extension path does not exist", zap.String("path", basePath))
				continue
			}
			return nil, fmt.Errorf("failed to read directory '%s': %w", basePath, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			dir := filepath.Join(basePath, entry.Name())

			ext, err := l.LoadExtension(ctx, dir)
			if err != nil {
				l.logger.Error("Failed to load extension",
					zap.String("dir", dir),
					zap.Error(err),
				)
				errs = append(errs, err)
				continue
			}

			extensions = append(extensions, ext)
		}
	}

	if len(extensions) > 0 && len(errs) > 0 {
		l.logger.Warn("Some extensions failed to load",
			zap.Int("loaded", len(extensions)),
			zap.Int("failed", len(errs)),
		)
	}

	if len(extensions) == 0 {
		return nil, &NoExtensionsFoundError{Paths: paths}
	}

	return extensions, nil
}
