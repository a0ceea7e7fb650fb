package driving

import (
	"context"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
)

// PermissionService resolves a requester's access tier.
type PermissionService interface {
	// Level returns the requester's permission tier.
	Level(ctx context.Context, userID string) (domain.PermissionLevel, error)

	// Require returns domain.ErrNotAuthorized unless the requester
	// meets the minimum tier.
	Require(ctx context.Context, userID string, minimum domain.PermissionLevel) error
}
