// Command brsdump inspects and builds brs buffers.
//
//	brsdump dump [--schema schema.yaml] [--json] file.brs
//	brsdump digest file.brs...
//	brsdump encode --out file.brs doc.yaml
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	st := &state{stdout: stdout, stderr: stderr}

	return &cli.Command{
		Name:      "brsdump",
		Usage:     "Inspect and build brs buffers",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the YAML config file",
				Value: configPath(),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
				Value: "warn",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format (text, json)",
				Value: "text",
			},
			&cli.StringFlag{
				Name:  "byte-order",
				Usage: "byte order of the buffers (native, little, big)",
				Value: "native",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "deepest sub-buffer nesting to decode",
				Value: defaultMaxDepth,
			},
		},
		Before: st.setup,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			dumpCmd(st),
			digestCmd(st),
			encodeCmd(st),
		},
	}
}
