package repo

import (
	"github.com/TestingSDK2/marketplace-notifier/cache"
	"github.com/TestingSDK2/marketplace-notifier/database"
	"github.com/TestingSDK2/marketplace-notifier/messaging"
	"github.com/TestingSDK2/marketplace-notifier/mongodatabase"
)

// Repos container to hold handles for cache / db repos
type Repos struct {
	MongoDB       *mongodatabase.DB
	Cache         *cache.Cache
	MasterDB      *database.Database // nil when no SQL database is configured
	Notifications *mongodatabase.NotificationRepo
	SellerTokens  *mongodatabase.SellerTokenRepo
	Sellers       *mongodatabase.SellerRepo
	Push          *messaging.Router
}
