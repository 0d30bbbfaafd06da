package trigger

import (
	"context"
	"fmt"

	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/TestingSDK2/marketplace-notifier/util"
	"github.com/sirupsen/logrus"
)

const (
	orderTitle      = "New Order Received!"
	orderShortIDLen = 8
)

func orderCreated(ctx context.Context, s *service, orderID string, order *model.Order) Result {
	result := newResult(consts.OrderCreated, orderID)
	if order == nil || len(order.SellerGroups) == 0 {
		result.Skipped = "order has no seller groups"
		return result
	}

	jobs := make([]job, 0, len(order.SellerGroups))
	for i, group := range order.SellerGroups {
		if group.SellerID == "" {
			logrus.WithFields(logrus.Fields{
				"trigger":  consts.OrderCreated,
				"event_id": orderID,
			}).Warnf("seller group %d has no seller, skipping", i)
			result.Ignored++
			continue
		}
		jobs = append(jobs, job{
			sellerID:     group.SellerID,
			notification: orderNotification(orderID, group),
		})
	}
	if len(jobs) == 0 {
		result.Skipped = "order has no seller groups with a seller"
		return result
	}
	s.fanOut(ctx, &result, jobs)
	return result
}

func orderNotification(orderID string, group model.SellerGroup) *model.Notification {
	itemCount := group.ItemCount()
	total := group.Subtotal
	return &model.Notification{
		ReceiverID:  group.SellerID,
		Type:        consts.OrderType,
		Title:       orderTitle,
		Message:     fmt.Sprintf("You have a new order with %d item(s). Order #%s", itemCount, util.ShortID(orderID, orderShortIDLen)),
		Status:      consts.Unread,
		Link:        fmt.Sprintf(consts.SellerOrderLink, orderID),
		OrderID:     orderID,
		ItemCount:   &itemCount,
		TotalAmount: &total,
	}
}
