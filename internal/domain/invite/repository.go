package invite

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, invite *Invite) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*Invite, error)
	Update(ctx context.Context, invite *Invite) error
	// ConsumeByTokenHash atomically marks an unconsumed invite accepted and
	// reports whether this call won. Concurrent accepts of one token must see
	// exactly one true.
	ConsumeByTokenHash(ctx context.Context, tokenHash string, userID uint, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	ListByOrganization(ctx context.Context, organizationID uint) ([]*Invite, error)
}
