package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/wifivault/internal/domain/model"
)

// ErrNetworkNotFound is returned by NetworkStore.Update and Delete when no
// record with the given id exists. Distinct from generic store failures so
// callers can react differently (e.g. refresh their list).
var ErrNetworkNotFound = errors.New("network not found")

// NewNetwork carries the caller-supplied fields for a creation request. The
// password crosses this boundary only in encrypted form.
type NewNetwork struct {
	OwnerID           string
	Name              string
	EncryptedPassword string
	Location          string
	Notes             string
}

// NetworkPatch is a partial update. Nil fields are left unchanged. A patched
// password is always the encrypted form, never plaintext.
type NetworkPatch struct {
	Name              *string
	EncryptedPassword *string
	Location          *string
	Notes             *string
}

// IsEmpty reports whether the patch changes nothing.
func (p NetworkPatch) IsEmpty() bool {
	return p.Name == nil && p.EncryptedPassword == nil && p.Location == nil && p.Notes == nil
}

// NetworkStore defines the driven port for credential record persistence.
// Returned records never carry plaintext (Password is empty); the application
// layer merges plaintext back in from what the caller already knew.
type NetworkStore interface {
	// Create persists a new record, assigning its id and timestamps, and
	// returns the stored row.
	Create(ctx context.Context, n NewNetwork) (*model.Network, error)

	// ListByOwner returns every record belonging to ownerID, ordered by
	// creation time descending (most recent first).
	ListByOwner(ctx context.Context, ownerID string) ([]model.Network, error)

	// Update applies the patch to the record with the given id, refreshes its
	// update timestamp, and returns the stored row. Returns
	// ErrNetworkNotFound when the id does not exist.
	Update(ctx context.Context, id string, patch NetworkPatch) (*model.Network, error)

	// Delete removes the record with the given id. Returns
	// ErrNetworkNotFound when the id does not exist.
	Delete(ctx context.Context, id string) error
}
