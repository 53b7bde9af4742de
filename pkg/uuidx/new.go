package uuidx

import "github.com/google/uuid"

// New returns a time-ordered (version 7) UUID. Registration IDs sort by creation
// time which keeps snapshots and logs readable. When the v7 generator fails the
// random (version 4) generator is used instead.
func New() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
