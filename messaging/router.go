package messaging

import (
	"context"

	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Router picks a Sender by the platform of the token. An empty platform
// means FCM.
type Router struct {
	senders map[string]Sender
}

func NewRouter(senders map[string]Sender) *Router {
	return &Router{senders: senders}
}

// New builds a Router with every transport present in conf.
func New(ctx context.Context, conf *Config) (*Router, error) {
	senders := map[string]Sender{}
	if conf.FCM != nil {
		s, err := NewFCMSender(ctx, conf.FCM)
		if err != nil {
			return nil, err
		}
		senders[consts.PlatformFCM] = s
	}
	if conf.APNS != nil && conf.APNS.KeyFile != "" {
		s, err := NewAPNSSender(conf.APNS)
		if err != nil {
			return nil, err
		}
		senders[consts.PlatformAPNS] = s
	}
	if conf.WebPush != nil && conf.WebPush.VAPIDPrivateKey != "" {
		senders[consts.PlatformWeb] = NewWebPushSender(conf.WebPush)
	}
	if len(senders) == 0 {
		return nil, errors.New("no push transport configured")
	}
	for platform := range senders {
		logrus.Infof("push transport %s enabled", platform)
	}
	return NewRouter(senders), nil
}

func (r *Router) Send(ctx context.Context, token model.SellerToken, msg Message) error {
	platform := token.Platform
	if platform == "" {
		platform = consts.PlatformFCM
	}
	sender, ok := r.senders[platform]
	if !ok {
		return errors.Errorf("no push transport configured for platform %q", platform)
	}
	return sender.Send(ctx, token, msg)
}
