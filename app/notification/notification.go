package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/sirupsen/logrus"
)

// createNotification fails only when the insert fails. The unread counter
// and the realtime publish follow an insert that already happened.
func createNotification(ctx context.Context, store Store, counter Counter, publisher Publisher, notification *model.Notification) error {
	if notification.Status == "" {
		notification.Status = consts.Unread
	}
	if err := store.Insert(ctx, notification); err != nil {
		return err
	}

	logger := logrus.WithFields(logrus.Fields{
		"seller_id":       notification.ReceiverID,
		"notification_id": notification.ID.Hex(),
	})

	if counter != nil {
		if err := counter.IncrementUnread(ctx, notification.ReceiverID); err != nil {
			logger.WithError(err).Error("unable to bump unread notification count")
		}
	}

	if publisher != nil {
		data, err := json.Marshal(notification)
		if err != nil {
			logger.WithError(err).Error("unable to encode notification for realtime delivery")
			return nil
		}
		channel := fmt.Sprintf(consts.RealtimeChannelName, notification.ReceiverID)
		if err := publisher.Publish(channel, string(data)); err != nil {
			logger.WithError(err).Error("unable to publish notification")
		}
	}
	return nil
}
