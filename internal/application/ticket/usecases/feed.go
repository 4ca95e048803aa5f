package usecases

import (
	"context"
	"encoding/json"

	"autocrm/internal/application/ticket/dto"
	"autocrm/internal/domain/ticket"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/shared/logger"
)

// publishTicketChange pushes a ticket row change onto the feed bus. Delivery
// is best effort: clients recover from a missed event on their next refetch,
// so a publish failure is logged and swallowed.
func publishTicketChange(
	ctx context.Context,
	bus pubsub.TicketFeedPublisher,
	log logger.Interface,
	changeType pubsub.ChangeType,
	t *ticket.Ticket,
) {
	if bus == nil {
		return
	}

	var row json.RawMessage
	if changeType != pubsub.ChangeDelete {
		data, err := json.Marshal(dto.ToTicketListItemDTO(t))
		if err != nil {
			log.Errorw("failed to marshal ticket row for feed", "ticket_id", t.ID(), "error", err)
			return
		}
		row = data
	}

	event := pubsub.TicketChangeEvent{
		Type:           changeType,
		Table:          pubsub.TableTickets,
		RowID:          t.ID(),
		TicketID:       t.ID(),
		Row:            row,
		Version:        t.Version(),
		OrganizationID: t.OrganizationID(),
		CustomerID:     t.CustomerID(),
	}

	if err := bus.PublishChange(ctx, event); err != nil {
		log.Warnw("failed to publish ticket change", "ticket_id", t.ID(), "error", err)
	}
}

// publishMessageChange pushes a ticket message change onto the feed bus.
// The parent ticket supplies the scoping fields the fan-out filters on.
func publishMessageChange(
	ctx context.Context,
	bus pubsub.TicketFeedPublisher,
	log logger.Interface,
	changeType pubsub.ChangeType,
	t *ticket.Ticket,
	m *ticket.Message,
) {
	if bus == nil {
		return
	}

	var row json.RawMessage
	if changeType != pubsub.ChangeDelete {
		data, err := json.Marshal(dto.ToMessageDTO(m))
		if err != nil {
			log.Errorw("failed to marshal message row for feed", "message_id", m.ID(), "error", err)
			return
		}
		row = data
	}

	event := pubsub.TicketChangeEvent{
		Type:           changeType,
		Table:          pubsub.TableMessages,
		RowID:          m.ID(),
		TicketID:       t.ID(),
		Row:            row,
		Version:        t.Version(),
		OrganizationID: t.OrganizationID(),
		CustomerID:     t.CustomerID(),
		Internal:       m.Internal(),
	}

	if err := bus.PublishChange(ctx, event); err != nil {
		log.Warnw("failed to publish message change", "message_id", m.ID(), "error", err)
	}
}
