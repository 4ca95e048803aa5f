package organization

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"autocrm/internal/shared/biztime"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Organization is the tenancy boundary. Every user, ticket, and invite belongs
// to exactly one organization.
type Organization struct {
	id        uint
	name      string
	slug      string
	active    bool
	version   int
	createdAt time.Time
	updatedAt time.Time
}

func NewOrganization(name, slug string) (*Organization, error) {
	name = strings.TrimSpace(name)
	slug = strings.ToLower(strings.TrimSpace(slug))

	if len(name) == 0 {
		return nil, fmt.Errorf("organization name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("organization name exceeds maximum length of 100 characters")
	}
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("invalid organization slug: %s", slug)
	}

	now := biztime.NowUTC()
	return &Organization{
		name:      name,
		slug:      slug,
		active:    true,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructOrganization(
	id uint,
	name string,
	slug string,
	active bool,
	version int,
	createdAt, updatedAt time.Time,
) (*Organization, error) {
	if id == 0 {
		return nil, fmt.Errorf("organization ID cannot be zero")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("organization name is required")
	}

	return &Organization{
		id:        id,
		name:      name,
		slug:      slug,
		active:    active,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (o *Organization) ID() uint {
	return o.id
}

func (o *Organization) Name() string {
	return o.name
}

func (o *Organization) Slug() string {
	return o.slug
}

func (o *Organization) Active() bool {
	return o.active
}

func (o *Organization) Version() int {
	return o.version
}

func (o *Organization) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Organization) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Organization) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("organization ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("organization ID cannot be zero")
	}
	o.id = id
	return nil
}

func (o *Organization) Rename(name string) error {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return fmt.Errorf("organization name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("organization name exceeds maximum length of 100 characters")
	}
	o.name = name
	o.touch()
	return nil
}

func (o *Organization) Deactivate() {
	if !o.active {
		return
	}
	o.active = false
	o.touch()
}

func (o *Organization) touch() {
	o.updatedAt = biztime.NowUTC()
	o.version++
}
