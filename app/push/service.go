package push

import (
	"context"

	"github.com/TestingSDK2/marketplace-notifier/messaging"
	"github.com/TestingSDK2/marketplace-notifier/model"
)

// Status is the outcome of a push attempt that did not fail.
type Status string

const (
	StatusSent    Status = "sent"
	StatusNoToken Status = "no_token"
)

// TokenStore - seller push registrations
type TokenStore interface {
	Get(ctx context.Context, sellerID string) (*model.SellerToken, error)
	Delete(ctx context.Context, sellerID string) error
}

// Service - delivers a persisted notification to one seller's device
type Service interface {
	Send(ctx context.Context, sellerID string, notification *model.Notification) (Status, error)
}

type service struct {
	tokens TokenStore
	sender messaging.Sender
}

// NewService - creates new push service
func NewService(tokens TokenStore, sender messaging.Sender) Service {
	return &service{
		tokens: tokens,
		sender: sender,
	}
}

func (s *service) Send(ctx context.Context, sellerID string, notification *model.Notification) (Status, error) {
	return sendPush(ctx, s.tokens, s.sender, sellerID, notification)
}
