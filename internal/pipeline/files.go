package pipeline

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// NormalizeFiles normalizes each resume file concurrently. Results are in
// path order. Reading a file is the only failure; malformed content still
// produces a Result.
func NormalizeFiles(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read resume %s: %w", path, err)
			}

			opts := opts
			opts.Logger = opts.Logger.With().Str("path", path).Logger()
			results[i] = Normalize(Input{Resume: data}, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
