package trigger

import (
	"context"

	"github.com/TestingSDK2/marketplace-notifier/app/notification"
	"github.com/TestingSDK2/marketplace-notifier/app/push"
	"github.com/TestingSDK2/marketplace-notifier/model"
)

// SellerLister - enumerates every seller account
type SellerLister interface {
	ListSellerIDs(ctx context.Context) ([]string, error)
}

// Service - the "on create" triggers
type Service interface {
	OrderCreated(ctx context.Context, orderID string, order *model.Order) Result
	ReviewCreated(ctx context.Context, productID, reviewID string, review *model.Review) Result
	AnnouncementCreated(ctx context.Context, announcementID string, announcement *model.Announcement) Result
	Dispatch(ctx context.Context, event model.Event) Result
}

type service struct {
	notifications notification.Service
	pusher        push.Service
	sellers       SellerLister
	concurrency   int
}

// NewService - creates new trigger service
func NewService(notifications notification.Service, pusher push.Service, sellers SellerLister, concurrency int) Service {
	return &service{
		notifications: notifications,
		pusher:        pusher,
		sellers:       sellers,
		concurrency:   concurrency,
	}
}

func (s *service) OrderCreated(ctx context.Context, orderID string, order *model.Order) Result {
	return orderCreated(ctx, s, orderID, order)
}

func (s *service) ReviewCreated(ctx context.Context, productID, reviewID string, review *model.Review) Result {
	return reviewCreated(ctx, s, productID, reviewID, review)
}

func (s *service) AnnouncementCreated(ctx context.Context, announcementID string, announcement *model.Announcement) Result {
	return announcementCreated(ctx, s, announcementID, announcement)
}

func (s *service) Dispatch(ctx context.Context, event model.Event) Result {
	return dispatch(ctx, s, event)
}
