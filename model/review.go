package model

import "strings"

const (
	maxRating  = 5
	filledStar = "⭐"
	openStar   = "☆"
)

// Review is a product review; SellerID is optional.
type Review struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	ProductID   string `bson:"productId,omitempty" json:"productId,omitempty"`
	SellerID    string `bson:"sellerId,omitempty" json:"sellerId,omitempty"`
	Rating      int    `bson:"rating" json:"rating"`
	DisplayName string `bson:"displayName,omitempty" json:"displayName,omitempty"`
	ProductName string `bson:"productName,omitempty" json:"productName,omitempty"`
}

// ClampedRating keeps the rating inside 0..5.
func (r Review) ClampedRating() int {
	switch {
	case r.Rating < 0:
		return 0
	case r.Rating > maxRating:
		return maxRating
	}
	return r.Rating
}

// Stars renders the rating as filled glyphs followed by open glyphs.
func (r Review) Stars() string {
	rating := r.ClampedRating()
	return strings.Repeat(filledStar, rating) + strings.Repeat(openStar, maxRating-rating)
}
