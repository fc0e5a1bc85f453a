package extension

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/woxQAQ/boundary-probe/internal/config"
	"github.com/woxQAQ/boundary-probe/internal/inspect"
	"github.com/woxQAQ/boundary-probe/internal/wasm"
	"go.uber.org/zap"
)

// Manager manages extension lifecycle.
type Manager struct {
	cfg         *config.Config
	runtime     *wasm.Runtime
	loader      *Loader
	registry    *Registry
	instanceMgr *wasm.InstanceManager
	logger      *zap.Logger

	mu     sync.RWMutex
	loaded bool
}

// NewManager creates a new extension manager.
func NewManager(
	cfg *config.Config,
	runtime *wasm.Runtime,
	hostFuncs *wasm.HostFunctionsImpl,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		cfg:         cfg,
		runtime:     runtime,
		loader:      NewLoader(runtime, logger),
		registry:    NewRegistry(logger),
		instanceMgr: wasm.NewInstanceManager(runtime, hostFuncs, logger),
		logger:      logger.With(zap.String("component", "extension-manager")),
	}
}

// LoadAll discovers and loads all extensions from configured paths.
func (m *Manager) LoadAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loaded {
		return fmt.Errorf("extensions already loaded")
	}

	m.logger.Info("Loading extensions",
		zap.Strings("paths", m.cfg.ExtensionPaths),
	)

	extensions, err := m.loader.DiscoverExtensions(ctx, m.cfg.ExtensionPaths)
	if err != nil {
		var notFound *NoExtensionsFoundError
		if errors.As(err, &notFound) {
			m.logger.Warn("No extensions found in configured paths",
				zap.Strings("paths", m.cfg.ExtensionPaths),
			)
			m.loaded = true
			return nil
		}
		return err
	}

	for _, ext := range extensions {
		if err := m.registry.Register(ext); err != nil {
			m.logger.Error("Failed to register extension",
				zap.String("name", ext.Manifest.Name),
				zap.Error(err),
			)
			continue
		}
	}

	m.loaded = true

	m.logger.Info("Extensions loaded successfully",
		zap.Int("count", m.registry.Count()),
	)

	return nil
}

// Get retrieves an extension by name.
func (m *Manager) Get(name string) (*Extension, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ext, ok := m.registry.Get(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	return ext, nil
}

// List returns every registered extension.
func (m *Manager) List() []*Extension {
	return m.registry.List()
}

// Instantiate creates a new instance of an extension.
func (m *Manager) Instantiate(ctx context.Context, name string) (*wasm.Instance, error) {
	ext, err := m.Get(name)
	if err != nil {
		return nil, err
	}

	return m.instanceMgr.Instantiate(ctx, &wasm.InstanceConfig{
		ModuleName: ext.Manifest.Name,
	})
}

// Greet passes text to the extension's entry export in a fresh instance.
// The text must be valid UTF-8; it is rejected before any guest code runs.
func (m *Manager) Greet(ctx context.Context, name, text string) error {
	if _, err := inspect.DecodeString(text); err != nil {
		return err
	}

	ext, err := m.Get(name)
	if err != nil {
		return err
	}

	instance, err := m.Instantiate(ctx, name)
	if err != nil {
		return err
	}
	defer instance.Close(ctx)

	if !instance.HasExport(ext.Entry()) {
		return &wasm.FunctionNotFoundError{
			FunctionName: ext.Entry(),
			ModuleName:   ext.Name(),
		}
	}

	ptr, length, err := instance.Memory().WriteString(ctx, text)
	if err != nil {
		return err
	}

	m.logger.Debug("Calling extension entry",
		zap.String("extension", ext.Name()),
		zap.String("entry", ext.Entry()),
		zap.Uint32("ptr", ptr),
		zap.Uint32("len", length),
	)

	if _, err := instance.Call(ctx, ext.Entry(), uint64(ptr), uint64(length)); err != nil {
		return fmt.Errorf("extension '%s': %w", ext.Name(), err)
	}

	return nil
}

// IsLoaded returns true if extensions have been loaded.
func (m *Manager) IsLoaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.loaded
}

// Registry returns the extension registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Shutdown closes the runtime and every instance it tracks.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.logger.Info("Shutting down extension manager")

	if err := m.runtime.Close(ctx); err != nil {
		m.logger.Error("Failed to shutdown runtime", zap.Error(err))
		return err
	}

	return nil
}
