package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
	"github.com/woxQAQ/boundary-probe/internal/inspect"
	"go.uber.org/zap"
)

func inspectCommand(p *probe) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print the compact and wide byte layout of one code point",
		ArgsUsage: "TEXT [INDEX]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output format (text or json), overrides inspect.output",
			},
		},
		Action: p.inspect,
	}
}

func (p *probe) inspect(c *cli.Context) error {
	args := c.Args()
	if args.Len() < 1 || args.Len() > 2 {
		return fmt.Errorf("inspect takes TEXT and an optional INDEX, got %d arguments", args.Len())
	}

	index := 0
	if args.Len() == 2 {
		n, err := strconv.Atoi(args.Get(1))
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args.Get(1), err)
		}
		index = n
	}

	output := p.cfg.Inspect.Output
	if c.IsSet("output") {
		output = c.String("output")
	}

	report, err := inspect.Inspect([]byte(args.First()), index)
	if err != nil {
		return err
	}

	p.logger.Debug("Inspected text",
		zap.Int("code_points", report.CodePoints),
		zap.Int("compact_width", report.CompactWidth),
		zap.Int("index", index),
	)

	switch output {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintln(c.App.Writer, string(data))
		return err
	case "text":
		return renderReport(c.App.Writer, report)
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
