package mongodatabase

import (
	"context"

	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SellerRepo struct {
	Collection *mongo.Collection
}

func NewSellerRepo(db *DB) *SellerRepo {
	return &SellerRepo{Collection: db.Database.Collection(consts.Sellers)}
}

// ListSellerIDs scans the whole sellers collection. No status filter is
// applied: every registered seller is returned.
func (r *SellerRepo) ListSellerIDs(ctx context.Context) ([]string, error) {
	findOptions := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.Collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list sellers")
	}
	defer cur.Close(ctx)

	ids := []string{}
	for cur.Next(ctx) {
		var doc struct {
			ID interface{} `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "unable to decode seller")
		}
		ids = append(ids, IDString(doc.ID))
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(err, "seller cursor failed")
	}
	return ids, nil
}
