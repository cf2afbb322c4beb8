package container

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// prefetch resolves deps concurrently and memoizes them on the view so the
// factory's own Resolve calls return immediately. The first error wins.
// Each branch runs as its own task so builds it waits on can see it.
func (v *view) prefetch(ctx context.Context, deps []string) error {
	seen := make(map[string]struct{}, len(deps))
	unique := make([]string, 0, len(deps))
	for _, dep := range deps {
		if _, dup := seen[dep]; dup {
			continue
		}
		seen[dep] = struct{}{}
		unique = append(unique, dep)
	}

	var (
		mu      sync.Mutex
		results = make(map[string]any, len(unique))
		g       errgroup.Group
	)

	children := make([]*task, len(unique))
	for i := range children {
		children[i] = &task{}
	}
	builds := v.container.builds
	builds.waitOn(v.task, children)
	defer builds.stopWaiting(v.task)

	for i, dep := range unique {
		branch := *v
		branch.task = children[i]
		g.Go(func() error {
			instance, err := branch.Resolve(ctx, dep)
			if err != nil {
				return err
			}
			mu.Lock()
			results[dep] = instance
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	v.prefetched = results
	return nil
}
