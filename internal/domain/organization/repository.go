package organization

import "context"

type Repository interface {
	Create(ctx context.Context, org *Organization) error
	GetByID(ctx context.Context, id uint) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	Update(ctx context.Context, org *Organization) error
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ListActiveIDs(ctx context.Context) ([]uint, error)
}
