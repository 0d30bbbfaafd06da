package messaging

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
)

const defaultWebPushTTL = 60 * 60 * 24

// WebPushSender delivers to browser subscriptions with VAPID keys.
type WebPushSender struct {
	options    webpush.Options
	httpClient *http.Client
}

func NewWebPushSender(conf *WebPushConfig) *WebPushSender {
	ttl := conf.TTL
	if ttl <= 0 {
		ttl = defaultWebPushTTL
	}
	return &WebPushSender{
		options: webpush.Options{
			Subscriber:      conf.Subscriber,
			VAPIDPublicKey:  conf.VAPIDPublicKey,
			VAPIDPrivateKey: conf.VAPIDPrivateKey,
			TTL:             ttl,
		},
		httpClient: http.DefaultClient,
	}
}

// contextClient binds outgoing web push requests to the caller's context.
type contextClient struct {
	ctx    context.Context
	client *http.Client
}

func (c contextClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req.WithContext(c.ctx))
}

func (s *WebPushSender) Send(ctx context.Context, tok model.SellerToken, msg Message) error {
	sub := &webpush.Subscription{}
	if err := json.Unmarshal([]byte(tok.Token), sub); err != nil {
		return errors.Wrap(err, "invalid web push subscription")
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "unable to encode web push message")
	}

	opts := s.options
	opts.HTTPClient = contextClient{ctx: ctx, client: s.httpClient}
	resp, err := webpush.SendNotification(body, sub, &opts)
	if err != nil {
		return errors.Wrap(err, "web push failed")
	}
	defer resp.Body.Close()
	return webPushError(resp.StatusCode)
}

func webPushError(statusCode int) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusNotFound, statusCode == http.StatusGone:
		return errors.Wrapf(ErrTokenNotRegistered, "web push subscription expired: %d", statusCode)
	}
	return errors.Errorf("web push rejected: %d", statusCode)
}
