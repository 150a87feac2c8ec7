package repository

import (
	"context"

	"github.com/google/uuid"
)

// TrustRepository reads the mutual-acknowledgment relationship between two
// users. The relationship itself is managed by the social collaborator; the
// swap core only needs the existence check before accepting a proposal.
type TrustRepository interface {
	// TrustExists reports whether a mutual trust relationship exists between
	// the two users.
	TrustExists(ctx context.Context, userA, userB uuid.UUID) (bool, error)
}
