package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/wifivault/internal/domain/model"
	"github.com/ericfisherdev/wifivault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.NetworkStore = (*NetworkRepo)(nil)

// NetworkRepo is the SQLite implementation of the NetworkStore port. It only
// ever sees encrypted passwords; records it returns carry an empty Password.
type NetworkRepo struct {
	db *DB
}

// NewNetworkRepo creates a new NetworkRepo.
func NewNetworkRepo(db *DB) *NetworkRepo {
	return &NetworkRepo{db: db}
}

// Create persists a new record with a store-assigned uuid and timestamps.
func (r *NetworkRepo) Create(ctx context.Context, n driven.NewNetwork) (*model.Network, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	const query = `INSERT INTO networks (id, owner_id, name, encrypted_password, location, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Writer.ExecContext(ctx, query,
		id, n.OwnerID, n.Name, n.EncryptedPassword, n.Location, n.Notes,
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("insert network %q: %w", n.Name, err)
	}

	return &model.Network{
		ID:                id,
		OwnerID:           n.OwnerID,
		Name:              n.Name,
		EncryptedPassword: n.EncryptedPassword,
		Location:          n.Location,
		Notes:             n.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// ListByOwner returns the owner's records ordered by creation time descending.
func (r *NetworkRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Network, error) {
	const query = `SELECT id, owner_id, name, encrypted_password, location, notes, created_at, updated_at
		FROM networks WHERE owner_id = ? ORDER BY created_at DESC, id`
	rows, err := r.db.Reader.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list networks for owner %q: %w", ownerID, err)
	}
	defer rows.Close()

	var networks []model.Network
	for rows.Next() {
		n, err := scanNetwork(rows)
		if err != nil {
			return nil, err
		}
		networks = append(networks, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate networks: %w", err)
	}

	return networks, nil
}

// Update applies the patch to the record and refreshes its update timestamp.
func (r *NetworkRepo) Update(ctx context.Context, id string, patch driven.NetworkPatch) (*model.Network, error) {
	sets := []string{"updated_at = ?"}
	args := []any{formatTime(time.Now().UTC())}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.EncryptedPassword != nil {
		sets = append(sets, "encrypted_password = ?")
		args = append(args, *patch.EncryptedPassword)
	}
	if patch.Location != nil {
		sets = append(sets, "location = ?")
		args = append(args, *patch.Location)
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE networks SET %s WHERE id = ?", strings.Join(sets, ", "))
	res, err := r.db.Writer.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update network %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update network %q: rows affected: %w", id, err)
	}
	if affected == 0 {
		return nil, driven.ErrNetworkNotFound
	}

	return r.getByID(ctx, id)
}

// Delete removes the record with the given id.
func (r *NetworkRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM networks WHERE id = ?`
	res, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete network %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete network %q: rows affected: %w", id, err)
	}
	if affected == 0 {
		return driven.ErrNetworkNotFound
	}
	return nil
}

// getByID reads the row back on the writer connection so an immediately
// preceding mutation is always visible.
func (r *NetworkRepo) getByID(ctx context.Context, id string) (*model.Network, error) {
	const query = `SELECT id, owner_id, name, encrypted_password, location, notes, created_at, updated_at
		FROM networks WHERE id = ?`
	row := r.db.Writer.QueryRowContext(ctx, query, id)

	n, err := scanNetwork(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, driven.ErrNetworkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanNetwork(row rowScanner) (model.Network, error) {
	var n model.Network
	var createdAt, updatedAt string

	err := row.Scan(&n.ID, &n.OwnerID, &n.Name, &n.EncryptedPassword, &n.Location, &n.Notes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Network{}, err
		}
		return model.Network{}, fmt.Errorf("scan network: %w", err)
	}

	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Network{}, fmt.Errorf("parse created_at for network %q: %w", n.ID, err)
	}
	if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Network{}, fmt.Errorf("parse updated_at for network %q: %w", n.ID, err)
	}
	return n, nil
}

// timeLayout is RFC 3339 UTC with fixed-width nanoseconds. Fixed width (not
// RFC3339Nano, which trims trailing zeros) so that lexicographic column order
// matches chronological order; the created_at ORDER BY relies on this.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
