package debug

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/TestingSDK2/marketplace-notifier/app"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/TestingSDK2/marketplace-notifier/util"
)

const (
	testSellerID    = "test-seller"
	testRating      = 5
	testProductName = "Test Product"
	testDisplayName = "Test Customer"
)

type reviewReplay struct {
	SellerID    string `json:"sellerId"`
	ProductID   string `json:"productId"`
	Rating      *int   `json:"rating"`
	ProductName string `json:"productName"`
	DisplayName string `json:"displayName"`
}

// ReplayReviewNotification runs the review trigger with synthetic data.
// Fields present in the body override the synthetic ones.
func (a *api) ReplayReviewNotification(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	req := reviewReplay{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		return &app.ValidationError{Message: "invalid request body: " + err.Error()}
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		return &app.ValidationError{Message: "rating must be between 0 and 5"}
	}

	review := &model.Review{
		ID:          util.NewID(),
		ProductID:   req.ProductID,
		SellerID:    req.SellerID,
		Rating:      testRating,
		DisplayName: req.DisplayName,
		ProductName: req.ProductName,
	}
	if review.ProductID == "" {
		review.ProductID = util.NewID()
	}
	if review.SellerID == "" {
		review.SellerID = testSellerID
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if review.DisplayName == "" {
		review.DisplayName = testDisplayName
	}
	if review.ProductName == "" {
		review.ProductName = testProductName
	}

	ctx.Logger.WithField("seller_id", review.SellerID).Info("replaying review notification")
	result := a.triggerService.ReviewCreated(r.Context(), review.ProductID, review.ID, review)
	result.Log(ctx.Logger)

	if result.Failed() {
		json.NewEncoder(w).Encode(util.SetResponse(result, 0, "review notification replay finished with errors"))
		return nil
	}
	json.NewEncoder(w).Encode(util.SetResponse(result, 1, "review notification replayed"))
	return nil
}
