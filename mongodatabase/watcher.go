package mongodatabase

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/TestingSDK2/marketplace-notifier/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResumeStore persists change stream resume tokens between restarts.
type ResumeStore interface {
	GetValue(key string) (string, error)
	SetValue(key string, val string) error
}

// EventHandler receives one created document. It must not fail: every
// event is acknowledged by moving the resume token past it.
type EventHandler func(ctx context.Context, event model.Event)

// Binding ties a collection to the event kind its inserts produce.
type Binding struct {
	Collection string
	Kind       string
}

// DefaultBindings are the "on create" bindings of the notifier.
var DefaultBindings = []Binding{
	{Collection: consts.Orders, Kind: consts.OrderCreated},
	{Collection: consts.Reviews, Kind: consts.ReviewCreated},
	{Collection: consts.Announcements, Kind: consts.AnnouncementCreated},
}

type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID interface{} `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument bson.Raw `bson:"fullDocument"`
}

// Watcher turns inserts on the bound collections into events.
type Watcher struct {
	db            *DB
	resume        ResumeStore
	handler       EventHandler
	retryInterval time.Duration
}

func NewWatcher(db *DB, resume ResumeStore, handler EventHandler) *Watcher {
	return &Watcher{
		db:            db,
		resume:        resume,
		handler:       handler,
		retryInterval: 5 * time.Second,
	}
}

// Run watches every binding until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, bindings []Binding) {
	done := make(chan struct{}, len(bindings))
	for _, b := range bindings {
		go func(b Binding) {
			defer func() { done <- struct{}{} }()
			defer util.RecoverGoroutinePanic(nil)
			w.watch(ctx, b)
		}(b)
	}
	for range bindings {
		<-done
	}
}

func (w *Watcher) watch(ctx context.Context, b Binding) {
	logger := logrus.WithFields(logrus.Fields{"collection": b.Collection, "kind": b.Kind})
	for {
		err := w.stream(ctx, b, logger)
		if ctx.Err() != nil {
			logger.Info("change stream stopped")
			return
		}
		logger.WithError(err).Errorf("change stream failed, reopening in %s", w.retryInterval)
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryInterval):
		}
	}
}

func (w *Watcher) stream(ctx context.Context, b Binding, logger logrus.FieldLogger) error {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "operationType", Value: "insert"}}}},
	}
	streamOptions := options.ChangeStream()
	key := fmt.Sprintf(consts.ResumeTokenKey, b.Collection)
	if token, err := w.loadResumeToken(key); err != nil {
		logger.WithError(err).Warn("ignoring unreadable resume token")
	} else if token != nil {
		streamOptions.SetResumeAfter(token)
	}

	cs, err := w.db.Database.Collection(b.Collection).Watch(ctx, pipeline, streamOptions)
	if err != nil {
		return errors.Wrap(err, "unable to open change stream")
	}
	defer cs.Close(context.Background())
	logger.Info("watching for created documents")

	for cs.Next(ctx) {
		var change changeEvent
		if err := cs.Decode(&change); err != nil {
			logger.WithError(err).Error("unable to decode change event")
		} else {
			w.handler(ctx, eventFromChange(change, b.Kind))
		}
		if err := w.saveResumeToken(key, cs.ResumeToken()); err != nil {
			logger.WithError(err).Warn("unable to store resume token")
		}
	}
	return cs.Err()
}

func (w *Watcher) loadResumeToken(key string) (bson.Raw, error) {
	val, err := w.resume.GetValue(key)
	if err != nil || val == "" {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(val)
	if err != nil {
		return nil, err
	}
	return bson.Raw(raw), nil
}

func (w *Watcher) saveResumeToken(key string, token bson.Raw) error {
	if token == nil {
		return nil
	}
	return w.resume.SetValue(key, base64.StdEncoding.EncodeToString(token))
}

func eventFromChange(change changeEvent, kind string) model.Event {
	event := model.Event{
		Kind:       kind,
		DocumentID: IDString(change.DocumentKey.ID),
	}
	if len(change.FullDocument) == 0 {
		return event
	}
	event.Document = change.FullDocument
	if kind == consts.ReviewCreated {
		if productID, ok := change.FullDocument.Lookup("productId").StringValueOK(); ok {
			event.ParentID = productID
		}
	}
	return event
}
