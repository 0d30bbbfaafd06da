package trigger

import (
	"context"
	"fmt"

	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/model"
)

const (
	defaultCustomerName = "A customer"
	defaultProductName  = "your product"
)

func reviewCreated(ctx context.Context, s *service, productID, reviewID string, review *model.Review) Result {
	result := newResult(consts.ReviewCreated, reviewID)
	if review == nil {
		result.Skipped = "review event carried no data"
		return result
	}
	if review.SellerID == "" {
		result.Skipped = "review has no seller"
		return result
	}
	if productID == "" {
		productID = review.ProductID
	}

	s.fanOut(ctx, &result, []job{{
		sellerID:     review.SellerID,
		notification: reviewNotification(productID, reviewID, review),
	}})
	return result
}

func reviewNotification(productID, reviewID string, review *model.Review) *model.Notification {
	rating := review.ClampedRating()
	customer := review.DisplayName
	if customer == "" {
		customer = defaultCustomerName
	}
	product := review.ProductName
	if product == "" {
		product = defaultProductName
	}
	return &model.Notification{
		ReceiverID:   review.SellerID,
		Type:         consts.ReviewType,
		Title:        fmt.Sprintf("%d/5 Star Review!", rating),
		Message:      fmt.Sprintf("%s rated \"%s\" %s", customer, product, review.Stars()),
		Status:       consts.Unread,
		Link:         fmt.Sprintf(consts.SellerProductReviewsLink, productID),
		ReviewID:     reviewID,
		ProductID:    productID,
		Rating:       &rating,
		CustomerName: customer,
		ProductName:  product,
	}
}
