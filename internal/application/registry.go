package application

import (
	"log/slog"
	"sync"

	"github.com/ericfisherdev/wifivault/internal/codec"
	"github.com/ericfisherdev/wifivault/internal/domain/port/driven"
)

// NetworkServices hands out one NetworkService per owner. A synchronizer's
// local collection is scoped to a single owner's record set, so sharing one
// instance across users would mix collections.
type NetworkServices struct {
	store   driven.NetworkStore
	encoder driven.QREncoder
	codec   *codec.Codec
	logger  *slog.Logger

	mu      sync.Mutex
	byOwner map[string]*NetworkService
}

// NewNetworkServices creates the registry.
func NewNetworkServices(store driven.NetworkStore, encoder driven.QREncoder, c *codec.Codec, logger *slog.Logger) *NetworkServices {
	return &NetworkServices{
		store:   store,
		encoder: encoder,
		codec:   c,
		logger:  logger,
		byOwner: make(map[string]*NetworkService),
	}
}

// ForOwner returns the owner's synchronizer, creating it on first use.
func (r *NetworkServices) ForOwner(ownerID string) *NetworkService {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.byOwner[ownerID]
	if !ok {
		svc = NewNetworkService(r.store, r.encoder, r.codec, r.logger)
		r.byOwner[ownerID] = svc
	}
	return svc
}
