package mongodatabase

import (
	"context"

	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SellerTokenRepo struct {
	Collection *mongo.Collection
}

func NewSellerTokenRepo(db *DB) *SellerTokenRepo {
	return &SellerTokenRepo{Collection: db.Database.Collection(consts.SellerTokens)}
}

// Get returns nil and no error when the seller has no token.
func (r *SellerTokenRepo) Get(ctx context.Context, sellerID string) (*model.SellerToken, error) {
	var token model.SellerToken
	err := r.Collection.FindOne(ctx, bson.M{"_id": sellerID}).Decode(&token)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to fetch token of seller %s", sellerID)
	}
	return &token, nil
}

func (r *SellerTokenRepo) Delete(ctx context.Context, sellerID string) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": sellerID})
	if err != nil {
		return errors.Wrapf(err, "unable to delete token of seller %s", sellerID)
	}
	return nil
}
