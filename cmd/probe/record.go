package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
	"github.com/woxQAQ/boundary-probe/internal/record"
	"github.com/woxQAQ/boundary-probe/internal/wasm"
)

func recordCommand(p *probe) *cli.Command {
	return &cli.Command{
		Name:  "record",
		Usage: "allocate the default record in guest memory and print it",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "also dump the value read back from guest memory",
			},
		},
		Action: p.record,
	}
}

func (p *probe) record(c *cli.Context) error {
	ctx := c.Context
	out := c.App.Writer

	runtime, err := wasm.NewRuntime(ctx, p.logger, runtimeConfig(p.cfg.Wasm))
	if err != nil {
		return err
	}
	defer runtime.Close(ctx)

	if _, err := wasm.NewModuleLoader(runtime, p.logger).LoadDemoModule(ctx); err != nil {
		return err
	}
	instance, err := wasm.NewInstanceManager(runtime, wasm.NewHostFunctions(p.logger, out), p.logger).
		Instantiate(ctx, &wasm.InstanceConfig{ModuleName: wasm.DemoModuleName})
	if err != nil {
		return err
	}
	defer instance.Close(ctx)

	handle, err := record.NewAllocator(instance.Memory(), p.logger).Create(ctx, record.Default())
	if err != nil {
		return err
	}

	rec, err := handle.Load()
	if err != nil {
		_ = handle.Release(ctx)
		return err
	}

	fmt.Fprintf(out, "%s at 0x%08x (%d bytes)\n", rec, handle.Addr(), record.RecordLayout.Size)
	if c.Bool("dump") {
		spew.Fdump(out, rec)
	}

	return handle.Release(ctx)
}
