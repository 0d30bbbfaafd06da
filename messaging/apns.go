package messaging

import (
	"context"
	"net/http"

	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// APNSSender delivers to iOS devices with a .p8 token key.
type APNSSender struct {
	client *apns2.Client
	topic  string
}

func NewAPNSSender(conf *APNSConfig) (*APNSSender, error) {
	authKey, err := token.AuthKeyFromFile(conf.KeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read apns auth key")
	}
	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   conf.KeyID,
		TeamID:  conf.TeamID,
	})
	if conf.Production {
		client = client.Production()
	} else {
		client = client.Development()
	}
	return &APNSSender{client: client, topic: conf.Topic}, nil
}

func (s *APNSSender) Send(ctx context.Context, tok model.SellerToken, msg Message) error {
	p := payload.NewPayload().AlertTitle(msg.Title).AlertBody(msg.Body).Sound("default")
	for k, v := range msg.Data {
		p.Custom(k, v)
	}

	res, err := s.client.PushWithContext(ctx, &apns2.Notification{
		DeviceToken: tok.Token,
		Topic:       s.topic,
		Payload:     p,
	})
	if err != nil {
		return errors.Wrap(err, "apns push failed")
	}
	return apnsError(res)
}

func apnsError(res *apns2.Response) error {
	if res.Sent() {
		return nil
	}
	switch {
	case res.StatusCode == http.StatusGone,
		res.Reason == apns2.ReasonUnregistered,
		res.Reason == apns2.ReasonBadDeviceToken:
		return errors.Wrapf(ErrTokenNotRegistered, "apns rejected token: %s", res.Reason)
	}
	return errors.Errorf("apns push rejected: %d %s", res.StatusCode, res.Reason)
}
