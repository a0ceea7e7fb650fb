package services

import (
	"context"
	"fmt"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driven"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driving"
)

// Ensure PermissionService implements the interface.
var _ driving.PermissionService = (*PermissionService)(nil)

// PermissionService resolves access tiers from the owner identity and
// the whitelist store.
type PermissionService struct {
	ownerID   string
	whitelist driven.WhitelistStore
}

// NewPermissionService creates a permission service.
func NewPermissionService(ownerID string, whitelist driven.WhitelistStore) *PermissionService {
	return &PermissionService{
		ownerID:   ownerID,
		whitelist: whitelist,
	}
}

// Level returns the requester's permission tier.
func (s *PermissionService) Level(ctx context.Context, userID string) (domain.PermissionLevel, error) {
	if userID == "" {
		return domain.PermissionNone, nil
	}
	if s.ownerID != "" && userID == s.ownerID {
		return domain.PermissionOwner, nil
	}

	listed, err := s.whitelist.IsWhitelisted(ctx, userID)
	if err != nil {
		return domain.PermissionNone, fmt.Errorf("check whitelist: %w", err)
	}
	if listed {
		return domain.PermissionWhitelisted, nil
	}

	return domain.PermissionMember, nil
}

// Require returns domain.ErrNotAuthorized unless the requester meets
// the minimum tier.
func (s *PermissionService) Require(ctx context.Context, userID string, minimum domain.PermissionLevel) error {
	level, err := s.Level(ctx, userID)
	if err != nil {
		return err
	}
	if !level.AtLeast(minimum) {
		return fmt.Errorf("%w: %s requires %s access", domain.ErrNotAuthorized, userID, minimum)
	}
	return nil
}
