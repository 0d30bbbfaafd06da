package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/TestingSDK2/marketplace-notifier/app/config"
	"github.com/TestingSDK2/marketplace-notifier/app/notification"
	"github.com/TestingSDK2/marketplace-notifier/app/push"
	"github.com/TestingSDK2/marketplace-notifier/app/trigger"

	"github.com/TestingSDK2/marketplace-notifier/cache"
	"github.com/TestingSDK2/marketplace-notifier/database"
	"github.com/TestingSDK2/marketplace-notifier/messaging"
	"github.com/TestingSDK2/marketplace-notifier/mongodatabase"
	"github.com/TestingSDK2/marketplace-notifier/repo"
)

// App our application
type App struct {
	Config              *config.Config
	Repos               *repo.Repos
	NotificationService notification.Service
	PushService         push.Service
	TriggerService      trigger.Service
	claims              EventClaimer
}

// NewContext create new request context
func (a *App) NewContext() *Context {
	return &Context{
		Logger: logrus.StandardLogger(),
	}
}

// New create a new app
func New(ctx context.Context) (app *App, err error) {
	appConf, err := config.InitConfig()
	if err != nil {
		return nil, err
	}

	cacheConf, err := cache.InitConfig()
	if err != nil {
		return nil, err
	}

	dbConf, err := database.InitConfig()
	if err != nil {
		return nil, err
	}

	mongoDBConf, err := mongodatabase.InitConfig()
	if err != nil {
		return nil, err
	}

	pushConf, err := messaging.InitConfig()
	if err != nil {
		return nil, err
	}

	mongoDB, err := mongodatabase.New(ctx, mongoDBConf)
	if err != nil {
		return nil, err
	}

	var masterDB *database.Database
	if dbConf != nil {
		masterDB, err = database.New(dbConf.Master)
		if err != nil {
			mongoDB.Close()
			return nil, err
		}
	}

	router, err := messaging.New(ctx, pushConf)
	if err != nil {
		mongoDB.Close()
		return nil, err
	}

	repos := &repo.Repos{
		MongoDB:       mongoDB,
		Cache:         cache.New(cacheConf),
		MasterDB:      masterDB,
		Notifications: mongodatabase.NewNotificationRepo(mongoDB),
		SellerTokens:  mongodatabase.NewSellerTokenRepo(mongoDB),
		Sellers:       mongodatabase.NewSellerRepo(mongoDB),
		Push:          router,
	}

	if err := repos.Cache.Ping(); err != nil {
		logrus.WithError(err).Warn("cache unreachable, duplicate suppression and realtime publish may fail")
	}
	if err := repos.Notifications.RegisterIndexes(ctx); err != nil {
		logrus.WithError(err).Warn("unable to register notification indexes")
	}

	return NewWithRepos(appConf, repos), nil
}

// NewWithRepos wires the services on top of already opened repos.
func NewWithRepos(appConf *config.Config, repos *repo.Repos) *App {
	var counter notification.Counter
	if repos.MasterDB != nil {
		counter = repos.MasterDB
	}
	var publisher notification.Publisher
	if appConf.RealtimePublish && repos.Cache != nil {
		publisher = repos.Cache
	}

	notificationService := notification.NewService(repos.Notifications, counter, publisher)
	pushService := push.NewService(repos.SellerTokens, repos.Push)

	a := &App{
		Config:              appConf,
		Repos:               repos,
		NotificationService: notificationService,
		PushService:         pushService,
		TriggerService:      trigger.NewService(notificationService, pushService, repos.Sellers, appConf.FanoutConcurrency),
	}
	if repos.Cache != nil {
		a.claims = repos.Cache
	}
	return a
}

// Close closes application handles and connections
func (a *App) Close() {
	logrus.Info("Closing Connection to database")

	if a.Repos.MasterDB != nil {
		if err := a.Repos.MasterDB.Close(); err != nil {
			logrus.Error("unable to close connection to master database", err)
		}
	}
	if a.Repos.Cache != nil {
		if err := a.Repos.Cache.Close(); err != nil {
			logrus.Error("unable to close connection to cache", err)
		}
	}
	if a.Repos.MongoDB != nil {
		if err := a.Repos.MongoDB.Close(); err != nil {
			logrus.Error("unable to close connection to mongo database", err)
		}
	}
}

// ValidationError error when inputs are invalid
type ValidationError struct {
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UserError when user is disallowed from resource
type UserError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *UserError) Error() string {
	return e.Message
}
