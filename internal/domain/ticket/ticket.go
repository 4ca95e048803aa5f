package ticket

import (
	"fmt"
	"time"

	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/biztime"

	vo "autocrm/internal/domain/ticket/valueobjects"
)

// Ticket is the aggregate root for a support request. It belongs to exactly one
// organization; the organization never changes after creation.
type Ticket struct {
	id             uint
	number         string
	title          string
	description    string
	category       vo.Category
	priority       vo.Priority
	status         vo.TicketStatus
	customerID     uint
	assigneeID     *uint
	organizationID uint
	tags           []string
	slaDueTime     *time.Time
	resolvedTime   *time.Time
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	closedAt       *time.Time
}

func NewTicket(
	title string,
	description string,
	category vo.Category,
	priority vo.Priority,
	customerID uint,
	organizationID uint,
) (*Ticket, error) {
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if priority == "" {
		priority = vo.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if customerID == 0 {
		return nil, fmt.Errorf("customer ID is required")
	}
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}

	now := biztime.NowUTC()
	slaDueTime := now.Add(time.Duration(priority.GetSLAHours()) * time.Hour)

	t := &Ticket{
		title:          title,
		description:    description,
		category:       category,
		priority:       priority,
		status:         vo.StatusOpen,
		customerID:     customerID,
		organizationID: organizationID,
		tags:           []string{},
		slaDueTime:     &slaDueTime,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}

	return t, nil
}

func ReconstructTicket(
	id uint,
	number string,
	title string,
	description string,
	category vo.Category,
	priority vo.Priority,
	status vo.TicketStatus,
	customerID uint,
	assigneeID *uint,
	organizationID uint,
	tags []string,
	slaDueTime *time.Time,
	resolvedTime *time.Time,
	version int,
	createdAt, updatedAt time.Time,
	closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}

	if tags == nil {
		tags = []string{}
	}

	return &Ticket{
		id:             id,
		number:         number,
		title:          title,
		description:    description,
		category:       category,
		priority:       priority,
		status:         status,
		customerID:     customerID,
		assigneeID:     assigneeID,
		organizationID: organizationID,
		tags:           tags,
		slaDueTime:     slaDueTime,
		resolvedTime:   resolvedTime,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		closedAt:       closedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Number() string {
	return t.number
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Category() vo.Category {
	return t.category
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) CustomerID() uint {
	return t.customerID
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) OrganizationID() uint {
	return t.organizationID
}

func (t *Ticket) Tags() []string {
	tagsCopy := make([]string, len(t.tags))
	copy(tagsCopy, t.tags)
	return tagsCopy
}

func (t *Ticket) SLADueTime() *time.Time {
	return t.slaDueTime
}

func (t *Ticket) ResolvedTime() *time.Time {
	return t.resolvedTime
}

func (t *Ticket) Version() int {
	return t.version
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

func (t *Ticket) AssignTo(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}

	t.assigneeID = &assigneeID
	t.touch()

	if t.status.IsOpen() {
		t.status = vo.StatusInProgress
	}

	return nil
}

func (t *Ticket) Unassign() {
	if t.assigneeID == nil {
		return
	}
	t.assigneeID = nil
	t.touch()
}

func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}

	if t.status == newStatus {
		return nil
	}

	if !t.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, newStatus)
	}

	t.status = newStatus
	t.touch()

	if newStatus.IsResolved() && t.resolvedTime == nil {
		now := biztime.NowUTC()
		t.resolvedTime = &now
	}

	if newStatus.IsClosed() && t.closedAt == nil {
		now := biztime.NowUTC()
		t.closedAt = &now
	}

	if newStatus.IsOpen() || newStatus.IsInProgress() {
		t.closedAt = nil
		t.resolvedTime = nil
	}

	return nil
}

func (t *Ticket) ChangePriority(newPriority vo.Priority) error {
	if !newPriority.IsValid() {
		return fmt.Errorf("invalid priority: %s", newPriority)
	}

	if t.priority == newPriority {
		return nil
	}

	t.priority = newPriority
	t.touch()

	if !t.createdAt.IsZero() {
		newSLADueTime := t.createdAt.Add(time.Duration(newPriority.GetSLAHours()) * time.Hour)
		t.slaDueTime = &newSLADueTime
	}

	return nil
}

func (t *Ticket) ChangeCategory(newCategory vo.Category) error {
	if !newCategory.IsValid() {
		return fmt.Errorf("invalid category: %s", newCategory)
	}

	if t.category == newCategory {
		return nil
	}

	t.category = newCategory
	t.touch()

	return nil
}

func (t *Ticket) UpdateDetails(title, description string, tags []string) error {
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return fmt.Errorf("description exceeds maximum length of 5000 characters")
	}

	t.title = title
	t.description = description
	if tags != nil {
		t.tags = tags
	}
	t.touch()

	return nil
}

func (t *Ticket) IsOverdue() bool {
	if t.slaDueTime == nil {
		return false
	}

	if t.status.IsClosed() || t.status.IsResolved() {
		return false
	}

	return biztime.NowUTC().After(*t.slaDueTime)
}

// CanBeViewedBy reports whether the given profile may read this ticket.
// Staff are scoped to their organization; customers only see their own tickets.
func (t *Ticket) CanBeViewedBy(userID, organizationID uint, role authorization.UserRole) bool {
	if t.organizationID != organizationID {
		return false
	}

	if role.IsStaff() {
		return true
	}

	return t.customerID == userID
}

func (t *Ticket) Validate() error {
	if len(t.title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(t.description) == 0 {
		return fmt.Errorf("description is required")
	}
	if !t.category.IsValid() {
		return fmt.Errorf("invalid category")
	}
	if !t.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if t.customerID == 0 {
		return fmt.Errorf("customer ID is required")
	}
	if t.organizationID == 0 {
		return fmt.Errorf("organization ID is required")
	}
	return nil
}

// touch bumps the update counter. The change feed uses the counter to discard
// stale events, so every mutation must come through here.
func (t *Ticket) touch() {
	t.updatedAt = biztime.NowUTC()
	t.version++
}
