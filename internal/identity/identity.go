package identity

import "github.com/google/uuid"

// Generator produces opaque identifiers. Services hold one so tests can
// substitute deterministic ids for NewID.
type Generator func() string

// NewID returns a random (version 4) UUID string. Used for both user and order ids.
func NewID() string {
	return uuid.New().String()
}
