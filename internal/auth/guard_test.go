package auth

import (
	"errors"
	"testing"

	"stayhub/internal/domain"
)

func TestAuthorizeOwner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ownerID  int64
		identity domain.Identity
		allow    bool
	}{
		{"owner", 10, domain.Identity{UserID: 10}, true},
		{"other user", 10, domain.Identity{UserID: 11}, false},
		{"zero identity", 10, domain.Identity{}, false},
		{"zero owner", 0, domain.Identity{UserID: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeOwner(tt.ownerID, tt.identity)
			if tt.allow && err != nil {
				t.Fatalf("expected allow, got %v", err)
			}
			if !tt.allow && !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}
