package push

import (
	"context"
	"strconv"

	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/messaging"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// sendPush makes at most one send attempt. A token the push service reports
// as not registered is deleted, and the failure is still returned.
func sendPush(ctx context.Context, tokens TokenStore, sender messaging.Sender, sellerID string, notification *model.Notification) (Status, error) {
	logger := logrus.WithFields(logrus.Fields{
		"seller_id": sellerID,
		"type":      notification.Type,
	})

	token, err := tokens.Get(ctx, sellerID)
	if err != nil {
		return "", errors.Wrap(err, "unable to load seller token")
	}
	if token == nil || token.Token == "" {
		logger.Info("no push token for seller, skipping push")
		return StatusNoToken, nil
	}

	err = sender.Send(ctx, *token, buildMessage(notification))
	if err == nil {
		logger.Debug("push sent")
		return StatusSent, nil
	}

	if messaging.IsTokenNotRegistered(err) {
		logger.WithError(err).Warn("push token no longer registered, removing it")
		if delErr := tokens.Delete(ctx, sellerID); delErr != nil {
			logger.WithError(delErr).Error("unable to remove stale push token")
		}
	}
	return "", errors.Wrapf(err, "push to seller %s failed", sellerID)
}

func buildMessage(notification *model.Notification) messaging.Message {
	data := map[string]string{
		"type": notification.Type,
	}
	switch notification.Type {
	case consts.OrderType:
		data["orderId"] = notification.OrderID
	case consts.ReviewType:
		data["productId"] = notification.ProductID
		if notification.Rating != nil {
			data["rating"] = strconv.Itoa(*notification.Rating)
		}
	case consts.AdminType:
		data["announcementId"] = notification.AnnouncementID
	}
	return messaging.Message{
		Title: notification.Title,
		Body:  notification.Message,
		Data:  data,
	}
}
