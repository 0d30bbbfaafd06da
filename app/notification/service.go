package notification

import (
	"context"

	"github.com/TestingSDK2/marketplace-notifier/model"
)

// Store - the notifications collection
type Store interface {
	Insert(ctx context.Context, notification *model.Notification) error
}

// Counter - per seller unread counter
type Counter interface {
	IncrementUnread(ctx context.Context, sellerID string) error
}

// Publisher - realtime channel to open seller dashboards
type Publisher interface {
	Publish(channel string, val string) error
}

// Service - defines notification service
type Service interface {
	Create(ctx context.Context, notification *model.Notification) error
}

type service struct {
	store     Store
	counter   Counter
	publisher Publisher
}

// NewService - creates new notification service. counter and publisher are
// optional.
func NewService(store Store, counter Counter, publisher Publisher) Service {
	return &service{
		store:     store,
		counter:   counter,
		publisher: publisher,
	}
}

func (s *service) Create(ctx context.Context, notification *model.Notification) error {
	return createNotification(ctx, s.store, s.counter, s.publisher, notification)
}
