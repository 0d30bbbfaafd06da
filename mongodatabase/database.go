package mongodatabase

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB holds one client for the lifetime of the process.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// New connects to MongoDB with retries
func New(ctx context.Context, config *DBConfig) (*DB, error) {
	clientOptions := options.Client().ApplyURI(config.Host).
		SetRetryReads(true).
		SetRetryWrites(true).
		SetConnectTimeout(30 * time.Second)

	var lastErr error
	for attempt := 1; attempt <= config.ConnectAttempts; attempt++ {
		client, err := mongo.Connect(ctx, clientOptions)
		if err == nil {
			err = client.Ping(ctx, nil)
			if err == nil {
				logrus.Infof("connected to mongo database %s", config.DBName)
				return &DB{Client: client, Database: client.Database(config.DBName)}, nil
			}
			_ = client.Disconnect(ctx)
		}
		lastErr = err
		logrus.Warnf("attempt %d to connect to MongoDB failed: %v", attempt, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(config.RetryInterval):
		}
	}
	return nil, errors.Wrapf(lastErr, "failed to connect to MongoDB after %d attempts", config.ConnectAttempts)
}

// Close DB
func (db *DB) Close() error {
	return db.Client.Disconnect(context.TODO())
}

// IDString renders a document _id, which may be an ObjectID or a plain
// string, as a string.
func IDString(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
