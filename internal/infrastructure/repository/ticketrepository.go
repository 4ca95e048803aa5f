package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"autocrm/internal/domain/ticket"
	"autocrm/internal/infrastructure/persistence/mappers"
	"autocrm/internal/infrastructure/persistence/models"
	"autocrm/internal/shared/db"
)

// allowedTicketOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedTicketOrderByFields = map[string]bool{
	"id":          true,
	"number":      true,
	"title":       true,
	"status":      true,
	"priority":    true,
	"category":    true,
	"customer_id": true,
	"assignee_id": true,
	"sla_due_time": true,
	"created_at":  true,
	"updated_at":  true,
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// organization_id, customer_id and number are fixed at creation and are
	// deliberately absent from the update column set.
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":         model.Title,
			"description":   model.Description,
			"category":      model.Category,
			"priority":      model.Priority,
			"status":        model.Status,
			"assignee_id":   model.AssigneeID,
			"tags":          model.Tags,
			"sla_due_time":  model.SLADueTime,
			"resolved_time": model.ResolvedTime,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
			"closed_at":     model.ClosedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.TicketModel{}, ticketID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ticket not found")
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, ticketID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("ticket not found")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(
	ctx context.Context,
	filter ticket.TicketFilter,
) ([]*ticket.Ticket, int64, error) {
	if filter.OrganizationID == 0 {
		return nil, 0, fmt.Errorf("organization ID is required")
	}

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{}).
		Where("organization_id = ?", filter.OrganizationID)

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR number LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortBy := strings.ToLower(filter.SortBy)
	if sortBy != "" && allowedTicketOrderByFields[sortBy] {
		order := strings.ToUpper(filter.SortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		tickets[i] = t
	}

	return tickets, total, nil
}

func (r *TicketRepository) GetOverdueTickets(ctx context.Context, organizationID uint) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.TicketModel{}).
		Where("sla_due_time IS NOT NULL AND sla_due_time < (UNIX_TIMESTAMP() * 1000)").
		Where("status NOT IN ?", []string{"resolved", "closed"})

	if organizationID != 0 {
		query = query.Where("organization_id = ?", organizationID)
	}

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find overdue tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		tickets[i] = t
	}

	return tickets, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context, organizationID uint) (map[string]int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	if err := tx.Model(&models.TicketModel{}).
		Select("status, COUNT(*) as count").
		Where("organization_id = ?", organizationID).
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by status: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
