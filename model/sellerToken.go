package model

import "time"

// SellerToken holds the current push registration of a seller, keyed by
// seller id. For the web platform Token is the JSON encoded subscription.
type SellerToken struct {
	SellerID  string    `bson:"_id" json:"sellerId"`
	Token     string    `bson:"token" json:"token"`
	Platform  string    `bson:"platform,omitempty" json:"platform,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
