package run

import "golang.org/x/sync/errgroup"

// Concurrent calls all functions at once and returns the first error.
func Concurrent(fs ...func() error) error {
	g := new(errgroup.Group)
	for _, f := range fs {
		g.Go(f)
	}
	return g.Wait()
}
