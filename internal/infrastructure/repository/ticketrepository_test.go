package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"autocrm/internal/domain/ticket"
	vo "autocrm/internal/domain/ticket/valueobjects"
	"autocrm/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.TicketModel{}, &models.MessageModel{})
	require.NoError(t, err)

	return db
}

func createTestTicket(t *testing.T, title string, category vo.Category, priority vo.Priority, customerID, orgID uint) *ticket.Ticket {
	tk, err := ticket.NewTicket(title, "Test description", category, priority, customerID, orgID)
	require.NoError(t, err)
	return tk
}

func saveTicket(t *testing.T, repo *TicketRepository, tk *ticket.Ticket, number string) *ticket.Ticket {
	require.NoError(t, tk.SetNumber(number))
	require.NoError(t, repo.Save(context.Background(), tk))
	return tk
}

func TestTicketRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	t.Run("save new ticket assigns ID", func(t *testing.T) {
		tk := createTestTicket(t, "Login broken", vo.CategoryTechnical, vo.PriorityHigh, 1, 1)
		require.NoError(t, tk.SetNumber("T-20260101-0001"))

		err := repo.Save(ctx, tk)
		assert.NoError(t, err)
		assert.NotZero(t, tk.ID())
	})

	t.Run("duplicate number rejected", func(t *testing.T) {
		tk := createTestTicket(t, "Another ticket", vo.CategoryBilling, vo.PriorityMedium, 2, 1)
		require.NoError(t, tk.SetNumber("T-20260101-0001"))

		err := repo.Save(ctx, tk)
		assert.Error(t, err)
	})
}

func TestTicketRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, "Invoice question", vo.CategoryBilling, vo.PriorityLow, 5, 3)
	saveTicket(t, repo, tk, "T-20260101-0002")

	t.Run("round-trips a persisted ticket", func(t *testing.T) {
		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)

		assert.Equal(t, tk.ID(), found.ID())
		assert.Equal(t, "T-20260101-0002", found.Number())
		assert.Equal(t, "Invoice question", found.Title())
		assert.Equal(t, vo.CategoryBilling, found.Category())
		assert.Equal(t, vo.PriorityLow, found.Priority())
		assert.Equal(t, vo.StatusOpen, found.Status())
		assert.Equal(t, uint(5), found.CustomerID())
		assert.Equal(t, uint(3), found.OrganizationID())
		require.NotNil(t, found.SLADueTime())
	})

	t.Run("missing ticket returns error", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99999)
		assert.Error(t, err)
	})
}

func TestTicketRepository_GetByNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, "Export fails", vo.CategoryTechnical, vo.PriorityUrgent, 7, 2)
	saveTicket(t, repo, tk, "T-20260102-0001")

	found, err := repo.GetByNumber(ctx, "T-20260102-0001")
	require.NoError(t, err)
	assert.Equal(t, tk.ID(), found.ID())

	_, err = repo.GetByNumber(ctx, "T-00000000-0000")
	assert.Error(t, err)
}

func TestTicketRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, "Slow dashboard", vo.CategoryTechnical, vo.PriorityMedium, 4, 2)
	saveTicket(t, repo, tk, "T-20260103-0001")

	require.NoError(t, tk.AssignTo(11))
	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	require.NoError(t, repo.Update(ctx, tk))

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgress, found.Status())
	require.NotNil(t, found.AssigneeID())
	assert.Equal(t, uint(11), *found.AssigneeID())
	assert.Equal(t, tk.Version(), found.Version())
}

func TestTicketRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, "To be removed", vo.CategoryOther, vo.PriorityLow, 2, 1)
	saveTicket(t, repo, tk, "T-20260104-0001")

	require.NoError(t, repo.Delete(ctx, tk.ID()))

	_, err := repo.GetByID(ctx, tk.ID())
	assert.Error(t, err)

	err = repo.Delete(ctx, tk.ID())
	assert.Error(t, err)
}

func TestTicketRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	seed := []struct {
		title    string
		category vo.Category
		priority vo.Priority
		customer uint
		org      uint
	}{
		{"Password reset loop", vo.CategoryTechnical, vo.PriorityHigh, 1, 1},
		{"Wrong invoice total", vo.CategoryBilling, vo.PriorityMedium, 2, 1},
		{"Feature: dark mode", vo.CategoryFeature, vo.PriorityLow, 1, 1},
		{"Other org ticket", vo.CategoryTechnical, vo.PriorityHigh, 9, 2},
	}
	for i, s := range seed {
		tk := createTestTicket(t, s.title, s.category, s.priority, s.customer, s.org)
		saveTicket(t, repo, tk, fmt.Sprintf("T-20260105-%04d", i+1))
	}

	t.Run("scoped to organization", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{OrganizationID: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 3)
		for _, tk := range tickets {
			assert.Equal(t, uint(1), tk.OrganizationID())
		}
	})

	t.Run("missing organization rejected", func(t *testing.T) {
		_, _, err := repo.List(ctx, ticket.TicketFilter{})
		assert.Error(t, err)
	})

	t.Run("filter by category", func(t *testing.T) {
		cat := vo.CategoryBilling
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{
			OrganizationID: 1,
			Category:       &cat,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		assert.Equal(t, "Wrong invoice total", tickets[0].Title())
	})

	t.Run("filter by customer", func(t *testing.T) {
		customerID := uint(1)
		_, total, err := repo.List(ctx, ticket.TicketFilter{
			OrganizationID: 1,
			CustomerID:     &customerID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("search matches title", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{
			OrganizationID: 1,
			Search:         "invoice",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		assert.Equal(t, "Wrong invoice total", tickets[0].Title())
	})

	t.Run("pagination caps page size", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{
			OrganizationID: 1,
			Page:           1,
			PageSize:       2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 2)
	})

	t.Run("sort by priority ascending", func(t *testing.T) {
		tickets, _, err := repo.List(ctx, ticket.TicketFilter{
			OrganizationID: 1,
			SortBy:         "priority",
			SortOrder:      "asc",
		})
		require.NoError(t, err)
		require.Len(t, tickets, 3)
		assert.Equal(t, vo.PriorityHigh, tickets[0].Priority())
	})
}

func TestTicketRepository_CountByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		tk := createTestTicket(t, fmt.Sprintf("Open ticket %d", i), vo.CategoryTechnical, vo.PriorityMedium, 1, 1)
		saveTicket(t, repo, tk, fmt.Sprintf("T-20260106-%04d", i+1))
	}
	resolved := createTestTicket(t, "Already handled", vo.CategoryAccount, vo.PriorityLow, 2, 1)
	saveTicket(t, repo, resolved, "T-20260106-0099")
	require.NoError(t, resolved.ChangeStatus(vo.StatusInProgress))
	require.NoError(t, resolved.ChangeStatus(vo.StatusResolved))
	require.NoError(t, repo.Update(ctx, resolved))

	counts, err := repo.CountByStatus(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts["open"])
	assert.Equal(t, int64(1), counts["resolved"])
	assert.Zero(t, counts["closed"])
}
