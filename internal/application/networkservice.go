package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/wifivault/internal/codec"
	"github.com/ericfisherdev/wifivault/internal/domain/model"
	"github.com/ericfisherdev/wifivault/internal/domain/port/driven"
)

// NetworkService is the record synchronizer: it owns the authoritative
// in-memory view of one owner's credential records and keeps it consistent
// with the record store. Each operation performs exactly one remote call and,
// only on success, applies a local reconciliation step; on failure the local
// view is left untouched and the error is surfaced.
//
// A single mutex is held across each operation, so concurrent callers are
// serialized and at most one mutation is ever in flight.
type NetworkService struct {
	store   driven.NetworkStore
	encoder driven.QREncoder
	codec   *codec.Codec
	logger  *slog.Logger

	mu       sync.Mutex
	networks []model.Network // Ordered by CreatedAt descending.
}

// NewNetworkService creates a NetworkService with an empty local collection.
func NewNetworkService(store driven.NetworkStore, encoder driven.QREncoder, c *codec.Codec, logger *slog.Logger) *NetworkService {
	return &NetworkService{
		store:   store,
		encoder: encoder,
		codec:   c,
		logger:  logger,
	}
}

// AddNetworkInput carries the caller-supplied fields for Add. Location and
// Notes are optional.
type AddNetworkInput struct {
	Name     string
	Password string
	Location string
	Notes    string
}

// UpdateNetworkInput is a partial update for Update. Nil fields are left
// unchanged; a non-nil Password is re-encoded before submission.
type UpdateNetworkInput struct {
	Name     *string
	Password *string
	Location *string
	Notes    *string
}

// List fetches every record for ownerID from the store, decodes each password,
// and replaces the whole local collection with the result. A record whose
// password cannot be decoded is logged and dropped rather than failing the
// fetch; a store failure keeps the prior local collection and is returned.
func (s *NetworkService) List(ctx context.Context, ownerID string) ([]model.Network, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	remote, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}

	networks := make([]model.Network, 0, len(remote))
	for _, n := range remote {
		plaintext, err := s.codec.Decode(n.EncryptedPassword)
		if err != nil {
			s.logger.Warn("dropping network with undecodable password",
				"network_id", n.ID,
				"name", n.Name,
				"error", err,
			)
			continue
		}
		n.Password = plaintext
		networks = append(networks, n)
	}

	s.networks = networks
	return s.snapshot(), nil
}

// Add validates the input, encodes the password, submits one creation request,
// and on success inserts the merged record at the head of the local collection.
func (s *NetworkService) Add(ctx context.Context, ownerID string, in AddNetworkInput) (*model.Network, error) {
	if in.Name == "" {
		return nil, validationErr("name", "must not be empty")
	}
	if in.Password == "" {
		return nil, validationErr("password", "must not be empty")
	}

	encoded, err := s.codec.Encode(in.Password)
	if err != nil {
		return nil, fmt.Errorf("encode password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	remote, err := s.store.Create(ctx, driven.NewNetwork{
		OwnerID:           ownerID,
		Name:              in.Name,
		EncryptedPassword: encoded,
		Location:          in.Location,
		Notes:             in.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create network: %w", err)
	}

	merged := mergeCreated(*remote, in.Password)
	s.networks = append([]model.Network{merged}, s.networks...)
	return &merged, nil
}

// Update applies a partial update to the record with the given id. The record
// must be present in the local view (its prior plaintext is needed for the
// merge); a remote not-found also surfaces as ErrNetworkNotFound, distinct
// from generic store failure. On success the entry is replaced in place:
// ordering follows creation time, which updates never change.
func (s *NetworkService) Update(ctx context.Context, id string, in UpdateNetworkInput) (*model.Network, error) {
	if in.Name != nil && *in.Name == "" {
		return nil, validationErr("name", "must not be empty")
	}
	if in.Password != nil && *in.Password == "" {
		return nil, validationErr("password", "must not be empty")
	}
	if in.Name == nil && in.Password == nil && in.Location == nil && in.Notes == nil {
		return nil, validationErr("update", "no fields to update")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, driven.ErrNetworkNotFound
	}

	patch := driven.NetworkPatch{
		Name:     in.Name,
		Location: in.Location,
		Notes:    in.Notes,
	}
	if in.Password != nil {
		// Only the encoded form crosses the store boundary.
		encoded, err := s.codec.Encode(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("encode password: %w", err)
		}
		patch.EncryptedPassword = &encoded
	}

	remote, err := s.store.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, driven.ErrNetworkNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update network %q: %w", id, err)
	}

	merged := mergeUpdated(*remote, in.Password, s.networks[idx].Password)
	s.networks[idx] = merged
	return &merged, nil
}

// Delete issues one delete request and, on success, removes the entry from
// the local collection. Like Update, the record must be present in the
// owner-scoped local view: ids belonging to other owners are never in it, so
// they fail here without reaching the store.
func (s *NetworkService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return driven.ErrNetworkNotFound
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, driven.ErrNetworkNotFound) {
			return err
		}
		return fmt.Errorf("delete network %q: %w", id, err)
	}

	s.networks = append(s.networks[:idx], s.networks[idx+1:]...)
	return nil
}

// Networks returns a snapshot copy of the local collection.
func (s *NetworkService) Networks() []model.Network {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// ShareQR renders the record's Wi-Fi connection string as a PNG QR code.
// The record is resolved from the local view; encoder failure is returned to
// the caller, never fatal.
func (s *NetworkService) ShareQR(id string, size int) ([]byte, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	var name, password string
	if idx >= 0 {
		name = s.networks[idx].Name
		password = s.networks[idx].Password
	}
	s.mu.Unlock()

	if idx < 0 {
		return nil, driven.ErrNetworkNotFound
	}

	png, err := s.encoder.EncodePNG(model.WifiQRPayload(name, password), size)
	if err != nil {
		return nil, fmt.Errorf("render qr for network %q: %w", id, err)
	}
	return png, nil
}

// indexOf returns the position of id in the local collection, or -1.
// Records are keyed by id; duplicate names coexist.
func (s *NetworkService) indexOf(id string) int {
	for i := range s.networks {
		if s.networks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *NetworkService) snapshot() []model.Network {
	out := make([]model.Network, len(s.networks))
	copy(out, s.networks)
	return out
}

// mergeCreated builds the local record for a successful create: the store
// response carries everything except plaintext, which the caller already
// knows and the response cannot echo.
func mergeCreated(remote model.Network, plaintext string) model.Network {
	remote.Password = plaintext
	return remote
}

// mergeUpdated builds the local record for a successful update: the new
// plaintext wins if the password was patched, otherwise the record keeps the
// plaintext it had before.
func mergeUpdated(remote model.Network, patched *string, previous string) model.Network {
	if patched != nil {
		remote.Password = *patched
	} else {
		remote.Password = previous
	}
	return remote
}
