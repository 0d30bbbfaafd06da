package mongodatabase

import (
	"context"

	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo struct {
	Collection *mongo.Collection
}

func NewNotificationRepo(db *DB) *NotificationRepo {
	return &NotificationRepo{Collection: db.Database.Collection(consts.Notifications)}
}

// RegisterIndexes creates the seller inbox index
func (r *NotificationRepo) RegisterIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "receiverId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("receiver_created_index"),
		},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// Insert stores a new notification. createdAt comes from the database
// server clock and is read back into notification with the stored document.
func (r *NotificationRepo) Insert(ctx context.Context, notification *model.Notification) error {
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	update, err := insertUpdate(notification)
	if err != nil {
		return err
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err = r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": notification.ID}, update, opts).Decode(notification)
	if err != nil {
		return errors.Wrapf(err, "unable to insert notification for seller %s", notification.ReceiverID)
	}
	return nil
}

// insertUpdate writes every field on insert only and lets $currentDate set
// createdAt.
func insertUpdate(notification *model.Notification) (bson.D, error) {
	raw, err := bson.Marshal(notification)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode notification")
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "unable to encode notification")
	}

	fields := make(bson.D, 0, len(doc))
	for _, e := range doc {
		if e.Key == "_id" || e.Key == "createdAt" {
			continue
		}
		fields = append(fields, e)
	}
	return bson.D{
		{Key: "$setOnInsert", Value: fields},
		{Key: "$currentDate", Value: bson.D{{Key: "createdAt", Value: bson.D{{Key: "$type", Value: "date"}}}}},
	}, nil
}
