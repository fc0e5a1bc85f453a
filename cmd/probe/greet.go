package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	guestapi "github.com/woxQAQ/boundary-probe/api/wasm"
	"github.com/woxQAQ/boundary-probe/internal/extension"
	"github.com/woxQAQ/boundary-probe/internal/inspect"
	"github.com/woxQAQ/boundary-probe/internal/wasm"
	"go.uber.org/zap"
)

func greetCommand(p *probe) *cli.Command {
	return &cli.Command{
		Name:      "greet",
		Usage:     "call the hello.greet host function from a guest module",
		ArgsUsage: "NAME",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "wasm",
				Usage: "guest module file exporting memory and run(ptr, len)",
			},
			&cli.StringFlag{
				Name:    "extension",
				Aliases: []string{"e"},
				Usage:   "extension name discovered under extension_paths",
			},
		},
		Action: p.greet,
	}
}

func (p *probe) greet(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("greet takes exactly one NAME argument, got %d", c.Args().Len())
	}
	name := c.Args().First()
	if _, err := inspect.DecodeString(name); err != nil {
		return err
	}

	ctx := c.Context
	runtime, err := wasm.NewRuntime(ctx, p.logger, runtimeConfig(p.cfg.Wasm))
	if err != nil {
		return err
	}
	defer runtime.Close(ctx)

	hostFuncs := wasm.NewHostFunctions(p.logger, c.App.Writer)

	if ext := c.String("extension"); ext != "" {
		manager := extension.NewManager(p.cfg, runtime, hostFuncs, p.logger)
		if err := manager.LoadAll(ctx); err != nil {
			return err
		}
		return manager.Greet(ctx, ext, name)
	}

	loader := wasm.NewModuleLoader(runtime, p.logger)
	var compiled *wasm.CompiledModule
	if path := c.String("wasm"); path != "" {
		compiled, err = loader.LoadModuleFromFile(ctx, path)
	} else {
		compiled, err = loader.LoadDemoModule(ctx)
	}
	if err != nil {
		return err
	}

	instance, err := wasm.NewInstanceManager(runtime, hostFuncs, p.logger).
		Instantiate(ctx, &wasm.InstanceConfig{ModuleName: compiled.Name})
	if err != nil {
		return err
	}
	defer instance.Close(ctx)

	ptr, length, err := instance.Memory().WriteString(ctx, name)
	if err != nil {
		return err
	}

	p.logger.Debug("Calling guest",
		zap.String("module", compiled.Name),
		zap.Uint32("ptr", ptr),
		zap.Uint32("len", length),
	)

	_, err = instance.Call(ctx, guestapi.EntryFunc, uint64(ptr), uint64(length))
	return err
}
