package messaging

import (
	"context"

	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
)

// ErrTokenNotRegistered is returned by a Sender when the push service no
// longer accepts the registration token.
var ErrTokenNotRegistered = errors.New("registration token not registered")

// Message is one push: the notification block and the data block.
type Message struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Sender submits one push to one device. It never retries.
type Sender interface {
	Send(ctx context.Context, token model.SellerToken, msg Message) error
}

func IsTokenNotRegistered(err error) bool {
	return errors.Is(err, ErrTokenNotRegistered)
}
