package entity

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the signed-in caller, resolved once per request from the
// bearer token and handed explicitly to the services that need it.
type Identity struct {
	Profile      *Profile
	SessionID    uuid.UUID
	SessionToken uuid.UUID
	ExpiresAt    time.Time
}

func (i *Identity) UserID() uuid.UUID {
	if i == nil || i.Profile == nil {
		return uuid.Nil
	}
	return i.Profile.ID
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Profile != nil && i.Profile.IsAdmin
}
