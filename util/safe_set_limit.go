package util

import "golang.org/x/sync/errgroup"

// SafeSetLimit sets the concurrency limit on an errgroup.Group, panicking
// with a clear message when the limit is 0 rather than letting
// errgroup.SetLimit panic further down.
func SafeSetLimit(g *errgroup.Group, limit int) {
	if limit == 0 {
		panic("limit cannot be 0")
	}

	g.SetLimit(limit)
}
