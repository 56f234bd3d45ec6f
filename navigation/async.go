package navigation

import (
	"github.com/gravitas-015/hexcore/hex"
	"golang.org/x/sync/errgroup"
)

// The engine has no internal parallelism within one search; a single
// call owns its scratch outright. What it does support is dispatching
// whole searches off the caller's goroutine. True cancellation does
// not exist mid-search, only the node ceiling: a caller wanting to
// abandon a search runs it async and discards the result.

// FindPathAsync dispatches FindPath to a background goroutine and
// returns a channel that delivers the single result. Configuration
// errors are folded into a NullEndpoint-style failure so the channel
// always yields exactly one value
func (mgr *Manager) FindPathAsync(start, goal hex.Axial, ctx *Context) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		r, err := mgr.FindPath(start, goal, ctx)
		if err != nil {
			r = failure(ReasonNullEndpoint, 0)
		}
		ch <- r
	}()
	return ch
}

// findPathsParallel fans one start out across many goals, one
// goroutine per goal under an errgroup. Safe because every FindPath
// call allocates its own scratch; the shared cache handles its own
// locking
func (mgr *Manager) findPathsParallel(start hex.Axial, goals []hex.Axial, ctx *Context) ([]Result, error) {
	results := make([]Result, len(goals))
	var g errgroup.Group
	for i, goal := range goals {
		i, goal := i, goal
		g.Go(func() error {
			r, err := mgr.FindPath(start, goal, ctx)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
