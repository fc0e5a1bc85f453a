package extension

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry manages loaded extensions.
type Registry struct {
	sync.RWMutex
	extensions map[string]*Extension
	logger     *zap.Logger
}

// NewRegistry creates a new extension registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		extensions: make(map[string]*Extension),
		logger:     logger.With(zap.String("component", "extension-registry")),
	}
}

// Register adds an extension to the registry.
func (r *Registry) Register(ext *Extension) error {
	r.Lock()
	defer r.Unlock()

	name := ext.Manifest.Name

	if _, exists := r.extensions[name]; exists {
		return &AlreadyRegisteredError{Name: name}
	}

	r.extensions[name] = ext

	r.logger.Info("Extension registered",
		zap.String("name", name),
		zap.String("version", ext.Manifest.Version),
	)

	return nil
}

// Get retrieves an extension by name.
func (r *Registry) Get(name string) (*Extension, bool) {
	r.RLock()
	defer r.RUnlock()

	ext, ok := r.extensions[name]
	return ext, ok
}

// List returns all registered extensions sorted by name.
func (r *Registry) List() []*Extension {
	r.RLock()
	defer r.RUnlock()

	result := make([]*Extension, 0, len(r.extensions))
	for _, ext := range r.extensions {
		result = append(result, ext)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Manifest.Name < result[j].Manifest.Name
	})
	return result
}

// Unregister removes an extension from the registry.
func (r *Registry) Unregister(name string) {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.extensions[name]; !ok {
		return
	}
	delete(r.extensions, name)

	r.logger.Info("Extension unregistered", zap.String("name", name))
}

// Count returns the number of registered extensions.
func (r *Registry) Count() int {
	r.RLock()
	defer r.RUnlock()

	return len(r.extensions)
}
