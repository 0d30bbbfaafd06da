package messaging

import (
	"context"

	firebase "firebase.google.com/go/v4"
	fcm "firebase.google.com/go/v4/messaging"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// FCMSender delivers through Firebase Cloud Messaging.
type FCMSender struct {
	client *fcm.Client
}

func NewFCMSender(ctx context.Context, conf *FCMConfig) (*FCMSender, error) {
	var opts []option.ClientOption
	if conf.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(conf.CredentialsFile))
	}
	var fbConf *firebase.Config
	if conf.ProjectID != "" {
		fbConf = &firebase.Config{ProjectID: conf.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConf, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to initialise firebase app")
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to initialise firebase messaging")
	}
	return &FCMSender{client: client}, nil
}

func (s *FCMSender) Send(ctx context.Context, token model.SellerToken, msg Message) error {
	_, err := s.client.Send(ctx, &fcm.Message{
		Token: token.Token,
		Notification: &fcm.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	})
	if err == nil {
		return nil
	}
	if fcm.IsUnregistered(err) {
		return errors.Wrap(ErrTokenNotRegistered, err.Error())
	}
	return errors.Wrap(err, "fcm send failed")
}
