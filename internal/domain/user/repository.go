package user

import "context"

// Repository defines the interface for user data operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ListFilter represents filtering and pagination options for user list
type ListFilter struct {
	OrganizationID uint   `json:"organization_id"`
	Role           string `json:"role,omitempty"`
	Email          string `json:"email,omitempty"`
	Page           int    `json:"page"`
	PageSize       int    `json:"page_size"`
	OrderBy        string `json:"order_by,omitempty"`
	Order          string `json:"order,omitempty"`
}
