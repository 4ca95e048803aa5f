package services

import (
	"encoding/json"
	"sort"
	"sync"

	"autocrm/internal/application/ticket/dto"
	"autocrm/internal/infrastructure/pubsub"
)

// TicketListCache keeps a keyed, versioned snapshot of the ticket list and
// the message threads under it. Feed events merge into the snapshot by row
// ID instead of forcing a refetch; a change event whose version is not newer
// than the cached row is stale and gets discarded.
//
// Full refetches are sequenced: a fetch takes a sequence number before it
// starts and its Replace is rejected when a newer fetch already landed, so a
// slow response can never clobber fresher data.
type TicketListCache struct {
	mu sync.RWMutex

	fetchSeq   uint64
	appliedSeq uint64

	tickets  map[uint]versionedTicket
	messages map[uint]map[uint]dto.MessageDTO
}

type versionedTicket struct {
	version int
	row     dto.TicketListItemDTO
}

func NewTicketListCache() *TicketListCache {
	return &TicketListCache{
		tickets:  make(map[uint]versionedTicket),
		messages: make(map[uint]map[uint]dto.MessageDTO),
	}
}

// BeginFetch reserves a sequence number for a full refetch. Call it before
// issuing the query and pass the result to Replace.
func (c *TicketListCache) BeginFetch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchSeq++
	return c.fetchSeq
}

// Replace swaps the cached ticket list for the fetched rows. It reports
// false when a fetch started later has already been applied.
func (c *TicketListCache) Replace(seq uint64, rows []dto.TicketListItemDTO) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.appliedSeq {
		return false
	}
	c.appliedSeq = seq

	fresh := make(map[uint]versionedTicket, len(rows))
	for _, row := range rows {
		fresh[row.ID] = versionedTicket{version: row.Version, row: row}
	}
	c.tickets = fresh

	// Message threads for tickets that vanished go with them.
	for ticketID := range c.messages {
		if _, ok := c.tickets[ticketID]; !ok {
			delete(c.messages, ticketID)
		}
	}

	return true
}

// ReplaceMessages swaps the cached thread for one ticket, typically after a
// detail fetch.
func (c *TicketListCache) ReplaceMessages(ticketID uint, msgs []dto.MessageDTO) {
	c.mu.Lock()
	defer c.mu.Unlock()

	thread := make(map[uint]dto.MessageDTO, len(msgs))
	for _, m := range msgs {
		thread[m.ID] = m
	}
	c.messages[ticketID] = thread
}

// Apply merges one feed event into the cache and reports whether anything
// changed. Stale ticket events (version not newer than the cached row) and
// duplicate message inserts are no-ops.
func (c *TicketListCache) Apply(event pubsub.TicketChangeEvent) bool {
	switch event.Table {
	case pubsub.TableTickets:
		return c.applyTicket(event)
	case pubsub.TableMessages:
		return c.applyMessage(event)
	default:
		return false
	}
}

func (c *TicketListCache) applyTicket(event pubsub.TicketChangeEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if event.Type == pubsub.ChangeDelete {
		if _, ok := c.tickets[event.RowID]; !ok {
			return false
		}
		delete(c.tickets, event.RowID)
		delete(c.messages, event.RowID)
		return true
	}

	var row dto.TicketListItemDTO
	if err := json.Unmarshal(event.Row, &row); err != nil {
		return false
	}

	if existing, ok := c.tickets[event.RowID]; ok && event.Version <= existing.version {
		return false
	}

	c.tickets[event.RowID] = versionedTicket{version: event.Version, row: row}
	return true
}

func (c *TicketListCache) applyMessage(event pubsub.TicketChangeEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	var msg dto.MessageDTO
	if event.Type != pubsub.ChangeDelete {
		if err := json.Unmarshal(event.Row, &msg); err != nil {
			return false
		}
	}

	if event.Type == pubsub.ChangeDelete {
		for _, thread := range c.messages {
			if _, ok := thread[event.RowID]; ok {
				delete(thread, event.RowID)
				return true
			}
		}
		return false
	}

	thread, ok := c.messages[msg.TicketID]
	if !ok {
		thread = make(map[uint]dto.MessageDTO)
		c.messages[msg.TicketID] = thread
	}

	if _, exists := thread[msg.ID]; exists && event.Type == pubsub.ChangeInsert {
		// Duplicate delivery of the same insert.
		return false
	}

	thread[msg.ID] = msg
	return true
}

// Snapshot returns the cached ticket rows ordered newest first.
func (c *TicketListCache) Snapshot() []dto.TicketListItemDTO {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows := make([]dto.TicketListItemDTO, 0, len(c.tickets))
	for _, vt := range c.tickets {
		rows = append(rows, vt.row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})

	return rows
}

// Messages returns the cached thread for a ticket in chronological order.
func (c *TicketListCache) Messages(ticketID uint) []dto.MessageDTO {
	c.mu.RLock()
	defer c.mu.RUnlock()

	thread, ok := c.messages[ticketID]
	if !ok {
		return nil
	}

	msgs := make([]dto.MessageDTO, 0, len(thread))
	for _, m := range thread {
		msgs = append(msgs, m)
	}

	sort.Slice(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].ID < msgs[j].ID
		}
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})

	return msgs
}

// Len reports the number of cached ticket rows.
func (c *TicketListCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tickets)
}
