package auth

import (
	"errors"

	"stayhub/internal/domain"
)

// ErrForbidden indicates an authenticated identity that does not own the
// resource it tried to mutate.
var ErrForbidden = errors.New("not the resource owner")

// AuthorizeOwner allows the operation iff the identity is the resource
// owner. Ids are compared as typed values, never as formatted strings.
func AuthorizeOwner(ownerID int64, identity domain.Identity) error {
	if ownerID != identity.UserID {
		return ErrForbidden
	}
	return nil
}
