package mock

import "github.com/fwojciec/filechat"

var _ filechat.Discoverer = (*Discoverer)(nil)

// Discoverer is a mock implementation of filechat.Discoverer.
type Discoverer struct {
	DiscoverFn func(roots []string, opts filechat.DiscoveryOptions) (*filechat.DiscoveryResult, error)
}

func (d *Discoverer) Discover(roots []string, opts filechat.DiscoveryOptions) (*filechat.DiscoveryResult, error) {
	return d.DiscoverFn(roots, opts)
}
