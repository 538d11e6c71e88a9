package model

import "time"

// User is the authenticated principal handle returned by the identity
// provider. The rest of the system only ever uses ID as the record owner key.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
