// Package services holds application services for the realtime ticket feed.
package services

import (
	"context"
	"sync"

	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/logger"
)

// subscriberBuffer is the per-subscriber channel depth. A subscriber that
// falls this far behind loses events; it recovers on its next full refetch.
const subscriberBuffer = 64

// FeedScope describes who is listening. Events outside the scope are
// filtered before delivery. A non-zero TicketID narrows the stream to one
// ticket's changes for detail views.
type FeedScope struct {
	OrganizationID uint
	UserID         uint
	Role           authorization.UserRole
	TicketID       uint
}

type feedSubscription struct {
	scope FeedScope
	ch    chan pubsub.TicketChangeEvent
}

// TicketFeed fans ticket change events out to local subscribers. One feed
// per process bridges the cross-instance bus to the SSE handlers.
type TicketFeed struct {
	subscriber pubsub.TicketFeedSubscriber
	logger     logger.Interface

	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]*feedSubscription
}

func NewTicketFeed(subscriber pubsub.TicketFeedSubscriber, logger logger.Interface) *TicketFeed {
	return &TicketFeed{
		subscriber: subscriber,
		logger:     logger,
		subs:       make(map[uint64]*feedSubscription),
	}
}

// Start attaches the feed to the bus. It returns once the subscription is
// established; delivery continues until ctx is cancelled.
func (f *TicketFeed) Start(ctx context.Context) error {
	return f.subscriber.SubscribeChanges(ctx, f.dispatch)
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away; the channel is closed by it.
func (f *TicketFeed) Subscribe(scope FeedScope) (<-chan pubsub.TicketChangeEvent, func()) {
	sub := &feedSubscription{
		scope: scope,
		ch:    make(chan pubsub.TicketChangeEvent, subscriberBuffer),
	}

	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.subs[id] = sub
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub.ch)
		}
		f.mu.Unlock()
	}

	return sub.ch, cancel
}

// SubscriberCount reports the number of attached listeners.
func (f *TicketFeed) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}

func (f *TicketFeed) dispatch(event pubsub.TicketChangeEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, sub := range f.subs {
		if !eventVisibleTo(event, sub.scope) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			f.logger.Warnw("dropping feed event for slow subscriber",
				"table", event.Table,
				"row_id", event.RowID,
				"user_id", sub.scope.UserID)
		}
	}
}

// eventVisibleTo applies the same visibility rules the read endpoints do:
// events never cross organizations, customers only see their own tickets,
// and internal notes stay with staff.
func eventVisibleTo(event pubsub.TicketChangeEvent, scope FeedScope) bool {
	if event.OrganizationID != scope.OrganizationID {
		return false
	}
	if scope.TicketID != 0 && event.TicketID != scope.TicketID {
		return false
	}
	if scope.Role.IsStaff() {
		return true
	}
	if event.CustomerID != scope.UserID {
		return false
	}
	return !event.Internal
}
