package service

import (
	"errors"

	"kinderpost/internal/authz"
	"kinderpost/internal/models"
)

// Sentinel errors shared across services. Handlers map them to HTTP
// statuses; ErrNotFound doubles as the masked form of a denial for actors
// who must not learn that the entity exists.
var (
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
)

// maskDenied picks the error surfaced when a visibility check fails.
// Parents are told the record does not exist so the API never confirms a
// foreign id; staff reaching outside their scope get a plain denial.
func maskDenied(actor authz.Actor) error {
	if actor.Role == models.RoleParent {
		return ErrNotFound
	}
	return ErrAccessDenied
}
