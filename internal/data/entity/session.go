package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session backs one issued JWT. Revoking the row logs the token out even
// before it expires.
type Session struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
	CreatedAt time.Time  `db:"created_at"`
}

func NewSession(userID uuid.UUID, userAgent, ipAddress *string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     uuid.New(),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}
