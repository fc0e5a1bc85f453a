package wasm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	guestapi "github.com/woxQAQ/boundary-probe/api/wasm"
	"go.uber.org/zap"
)

// InstanceManager creates and manages guest instances.
type InstanceManager struct {
	runtime   *Runtime
	logger    *zap.Logger
	hostFuncs *HostFunctionsImpl

	hostOnce sync.Once
	hostErr  error
}

// NewInstanceManager creates a new instance manager.
func NewInstanceManager(runtime *Runtime, hostFuncs *HostFunctionsImpl, logger *zap.Logger) *InstanceManager {
	return &InstanceManager{
		runtime:   runtime,
		hostFuncs: hostFuncs,
		logger:    logger.With(zap.String("component", "wasm-instance")),
	}
}

// InstanceConfig holds configuration for creating instances.
type InstanceConfig struct {
	// Module name to instantiate.
	ModuleName string

	// Instance ID (if empty, one is generated).
	InstanceID string
}

// Instance represents an instantiated guest module.
type Instance struct {
	module  api.Module
	runtime *Runtime
	memory  *Memory

	ID        string
	Name      string
	CreatedAt int64

	// Exported functions (cached for performance).
	exports map[string]api.Function
}

// Instantiate creates a new instance from a compiled module.
// The "hello" host module is registered on first use.
func (m *InstanceManager) Instantiate(ctx context.Context, config *InstanceConfig) (*Instance, error) {
	compiled, ok := m.runtime.GetCompiledModule(config.ModuleName)
	if !ok {
		return nil, &ModuleNotFoundError{ModuleName: config.ModuleName}
	}

	instanceID := config.InstanceID
	if instanceID == "" {
		instanceID = generateInstanceID()
	}

	if err := m.ensureHostModule(ctx); err != nil {
		return nil, err
	}

	m.logger.Info("Instantiating guest module",
		zap.String("module", config.ModuleName),
		zap.String("instance_id", instanceID),
	)

	moduleConfig := wazero.NewModuleConfig().
		WithName(instanceID).
		WithStartFunctions() // no implicit _start

	module, err := m.runtime.runtime.InstantiateModule(ctx, compiled.Module, moduleConfig)
	if err != nil {
		return nil, &InstantiationError{
			ModuleName: config.ModuleName,
			InstanceID: instanceID,
			Err:        err,
		}
	}

	instance := &Instance{
		module:    module,
		runtime:   m.runtime,
		memory:    NewMemory(module),
		ID:        instanceID,
		Name:      config.ModuleName,
		CreatedAt: time.Now().Unix(),
		exports:   cacheExportedFunctions(module),
	}

	if err := m.runtime.StoreInstance(instance); err != nil {
		_ = module.Close(ctx)
		return nil, &InstantiationError{
			ModuleName: config.ModuleName,
			InstanceID: instanceID,
			Err:        err,
		}
	}

	m.logger.Info("Module instantiated successfully",
		zap.String("instance_id", instanceID),
		zap.Int("exported_functions", len(instance.exports)),
	)

	return instance, nil
}

// ensureHostModule instantiates the host module exactly once per manager.
func (m *InstanceManager) ensureHostModule(ctx context.Context) error {
	m.hostOnce.Do(func() {
		if m.runtime.runtime.Module(HostModuleName) != nil {
			m.logger.Debug("Host module already registered", zap.String("module", HostModuleName))
			return
		}

		builder := m.runtime.runtime.NewHostModuleBuilder(HostModuleName)
		m.exportHostFunctions(builder)

		if _, err := builder.Instantiate(ctx); err != nil {
			m.hostErr = &HostFunctionError{FunctionName: HostModuleName, Err: err}
			return
		}

		m.logger.Debug("Host module instantiated", zap.String("module", HostModuleName))
	})
	return m.hostErr
}

// exportHostFunctions registers Go functions for import by guests.
func (m *InstanceManager) exportHostFunctions(builder wazero.HostModuleBuilder) {
	impl := m.hostFuncs

	// Guests call greet with a text argument; it is written to the sink.
	builder.NewFunctionBuilder().
		WithFunc(impl.greet).
		WithParameterNames("ptr", "length").
		Export(guestapi.GreetFunc)

	builder.NewFunctionBuilder().
		WithFunc(impl.compactWidth).
		WithParameterNames("ptr", "length").
		WithResultNames("width").
		Export(guestapi.CompactWidthFunc)
}

// Call invokes an exported function, applying the runtime's execution timeout.
func (i *Instance) Call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	fn, ok := i.exports[name]
	if !ok {
		return nil, &FunctionNotFoundError{ModuleName: i.Name, FunctionName: name}
	}

	timeout := i.runtime.config.ExecutionTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	results, err := fn.Call(ctx, params...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{Duration: timeout}
		}
		return nil, fmt.Errorf("call %s.%s: %w", i.Name, name, err)
	}
	return results, nil
}

// HasExport reports whether the instance exports function name.
func (i *Instance) HasExport(name string) bool {
	_, ok := i.exports[name]
	return ok
}

// Memory returns the instance's memory helper.
func (i *Instance) Memory() *Memory {
	return i.memory
}

// Close closes the instance and releases resources.
func (i *Instance) Close(ctx context.Context) error {
	i.runtime.DeleteInstance(i.ID)
	return i.module.Close(ctx)
}

// cacheExportedFunctions caches references to all exported functions.
func cacheExportedFunctions(module api.Module) map[string]api.Function {
	exports := make(map[string]api.Function)
	for name := range module.ExportedFunctionDefinitions() {
		if fn := module.ExportedFunction(name); fn != nil {
			exports[name] = fn
		}
	}
	return exports
}

var instanceSeq atomic.Uint64

// generateInstanceID generates a unique instance ID.
func generateInstanceID() string {
	return fmt.Sprintf("inst-%d-%d", time.Now().UnixNano(), instanceSeq.Add(1))
}
