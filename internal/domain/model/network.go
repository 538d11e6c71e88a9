package model

import (
	"fmt"
	"time"
)

// Network represents one stored Wi-Fi network credential. The record store
// only ever sees EncryptedPassword; Password is the decoded plaintext held in
// memory after the codec boundary (populated from the caller's input on
// create/update, or by decoding on list).
type Network struct {
	ID                string // Assigned by the record store on creation.
	OwnerID           string // Authenticated principal owning this record. Immutable.
	Name              string
	Password          string // Plaintext; never persisted.
	EncryptedPassword string
	Location          string
	Notes             string
	CreatedAt         time.Time // Immutable.
	UpdatedAt         time.Time // Refreshed by the store on every mutation.
}

// WifiQRPayload formats the standard Wi-Fi network config QR payload used by
// phone cameras to join a network.
func WifiQRPayload(name, password string) string {
	return fmt.Sprintf("WIFI:T:WPA;S:%s;P:%s;;", name, password)
}
