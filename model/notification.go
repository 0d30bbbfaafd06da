package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is one seller's copy of a triggering event. Type specific
// fields are left empty for the other types.
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID string             `bson:"receiverId" json:"receiverId"`
	Type       string             `bson:"type" json:"type"`
	Title      string             `bson:"title" json:"title"`
	Message    string             `bson:"message" json:"message"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	Link       string             `bson:"link" json:"link"`

	// order
	OrderID     string   `bson:"orderId,omitempty" json:"orderId,omitempty"`
	ItemCount   *int     `bson:"itemCount,omitempty" json:"itemCount,omitempty"`
	TotalAmount *float64 `bson:"totalAmount,omitempty" json:"totalAmount,omitempty"`

	// review
	ReviewID     string `bson:"reviewId,omitempty" json:"reviewId,omitempty"`
	ProductID    string `bson:"productId,omitempty" json:"productId,omitempty"`
	Rating       *int   `bson:"rating,omitempty" json:"rating,omitempty"`
	CustomerName string `bson:"customerName,omitempty" json:"customerName,omitempty"`
	ProductName  string `bson:"productName,omitempty" json:"productName,omitempty"`

	// admin
	AnnouncementID string `bson:"announcementId,omitempty" json:"announcementId,omitempty"`
}
