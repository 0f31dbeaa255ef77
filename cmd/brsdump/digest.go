package main

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/brs/codec"
)

type digestResult struct {
	path  string
	sum   uint64
	count int
	size  int
}

func digestCmd(st *state) *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Print the xxHash64 fingerprint of the hunks of each buffer",
		ArgsUsage: "<file|->...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return fmt.Errorf("digest needs at least one input")
			}

			d, err := st.decoder()
			if err != nil {
				return err
			}

			results, err := digestAll(ctx, st, d, cmd.Args().Slice())
			if err != nil {
				return err
			}

			for _, r := range results {
				_, _ = fmt.Fprintf(st.stdout, "%016x  hunks=%d size=%d  %s\n", r.sum, r.count, r.size, r.path)
			}

			return nil
		},
	}
}

// digestAll fingerprints every input concurrently. Results keep the order of paths.
func digestAll(ctx context.Context, st *state, d *codec.Decoder, paths []string) ([]digestResult, error) {
	if stdin := slices.Index(paths, "-"); stdin >= 0 && slices.Contains(paths[stdin+1:], "-") {
		return nil, fmt.Errorf("stdin (-) may be given only once")
	}

	results := make([]digestResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := st.readInput(path)
			if err != nil {
				return err
			}

			sum, count, err := codec.Fingerprint(d, data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = digestResult{path: path, sum: sum, count: count, size: len(data)}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
