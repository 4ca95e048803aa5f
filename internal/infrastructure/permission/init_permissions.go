package permission

import (
	"fmt"

	"autocrm/internal/shared/logger"
)

// InitTicketPermissions seeds the role policies for the ticket surface.
// Idempotent: AddPolicy is a no-op for existing rules.
func InitTicketPermissions(enforcer *Enforcer, log logger.Interface) error {
	policies := [][]string{
		// Admins manage everything in their organization.
		{"admin", "ticket", "create"},
		{"admin", "ticket", "read"},
		{"admin", "ticket", "update"},
		{"admin", "ticket", "delete"},
		{"admin", "ticket", "assign"},
		{"admin", "ticket", "change_status"},
		{"admin", "ticket", "change_priority"},
		{"admin", "ticket", "change_category"},
		{"admin", "message", "create"},
		{"admin", "message", "read"},
		{"admin", "attachment", "create"},
		{"admin", "attachment", "read"},
		{"admin", "invite", "create"},
		{"admin", "stats", "read"},

		// Agents work tickets but cannot delete them or mint invites.
		{"agent", "ticket", "create"},
		{"agent", "ticket", "read"},
		{"agent", "ticket", "update"},
		{"agent", "ticket", "assign"},
		{"agent", "ticket", "change_status"},
		{"agent", "ticket", "change_priority"},
		{"agent", "ticket", "change_category"},
		{"agent", "message", "create"},
		{"agent", "message", "read"},
		{"agent", "attachment", "create"},
		{"agent", "attachment", "read"},
		{"agent", "stats", "read"},

		// Customers only touch their own tickets; row-level checks happen in
		// the use cases.
		{"customer", "ticket", "create"},
		{"customer", "ticket", "read"},
		{"customer", "ticket", "update"},
		{"customer", "ticket", "change_status"},
		{"customer", "message", "create"},
		{"customer", "message", "read"},
		{"customer", "attachment", "create"},
		{"customer", "attachment", "read"},
	}

	for _, policy := range policies {
		if err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			log.Errorw("failed to add ticket permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	log.Info("ticket permissions initialized successfully")
	return nil
}
