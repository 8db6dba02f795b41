package provider

import "errors"

var ErrNoProvider = errors.New("no provider supports this partner")

// Registry holds providers in registration order. Dispatch selects the first
// provider whose Supports predicate matches, so registration order is part of
// the contract. The registry is built once at startup and read-only after.
type Registry struct {
	providers []Provider
}

func NewRegistry(providers ...Provider) *Registry {
	items := make([]Provider, len(providers))
	copy(items, providers)
	return &Registry{providers: items}
}

func (r *Registry) ForPartner(partnerID int64) (Provider, error) {
	for _, p := range r.providers {
		if p.Supports(partnerID) {
			return p, nil
		}
	}
	return nil, ErrNoProvider
}
