package utils

import (
	"context"

	"taxi-booking/internal/data/entity"

	"github.com/google/uuid"
)

type contextKey string

const IdentityKey contextKey = "identity"

func SetIdentityContext(ctx context.Context, identity *entity.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func GetIdentityFromContext(ctx context.Context) (*entity.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*entity.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	identity, ok := GetIdentityFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return identity.UserID(), identity.UserID() != uuid.Nil
}
