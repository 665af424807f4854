package pathfind

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Compare runs each algorithm on its own clone of g concurrently and returns
// the results in the order requested. No algorithms means all of them.
// g itself is left untouched.
func Compare(ctx context.Context, g *Grid, algorithms []Algorithm, opts ...Option) ([]Result, error) {
	if len(algorithms) == 0 {
		algorithms = Algorithms()
	}
	for _, a := range algorithms {
		if _, err := ParseAlgorithm(string(a)); err != nil {
			return nil, err
		}
	}

	results := make([]Result, len(algorithms))
	eg, ctx := errgroup.WithContext(ctx)
	for i, a := range algorithms {
		i, a := i, a
		clone := g.Clone()
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Run(a, clone, opts...)
			if err != nil {
				return err
			}
			results[i] = res
			log.Debugf("%s: success=%t length=%d explored=%d in %v",
				a.Title(), res.Success, res.PathLength, res.CellsExplored, res.Duration)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
