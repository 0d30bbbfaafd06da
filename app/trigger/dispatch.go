package trigger

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// dispatch routes a created document to its trigger. It never fails: a
// retried trigger would duplicate notifications already sent, so every
// problem, panics included, ends up in the Result.
func dispatch(ctx context.Context, s *service, event model.Event) (result Result) {
	result = newResult(event.Kind, event.DocumentID)
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("recovered from trigger panic: %v\n%s", r, debug.Stack())
			result.addError("", StageTrigger, fmt.Errorf("panic: %v", r))
		}
	}()

	switch event.Kind {
	case consts.OrderCreated:
		var order *model.Order
		if len(event.Document) > 0 {
			order = &model.Order{}
			if err := decodeDocument(event.Document, order); err != nil {
				result.addError("", StageTrigger, err)
				return result
			}
		}
		return s.OrderCreated(ctx, event.DocumentID, order)
	case consts.ReviewCreated:
		var review *model.Review
		if len(event.Document) > 0 {
			review = &model.Review{}
			if err := decodeDocument(event.Document, review); err != nil {
				result.addError("", StageTrigger, err)
				return result
			}
		}
		return s.ReviewCreated(ctx, event.ParentID, event.DocumentID, review)
	case consts.AnnouncementCreated:
		var announcement *model.Announcement
		if len(event.Document) > 0 {
			announcement = &model.Announcement{}
			if err := decodeDocument(event.Document, announcement); err != nil {
				result.addError("", StageTrigger, err)
				return result
			}
		}
		return s.AnnouncementCreated(ctx, event.DocumentID, announcement)
	}

	result.addError("", StageTrigger, errors.Errorf("unknown event kind %q", event.Kind))
	return result
}

func decodeDocument(raw bson.Raw, out interface{}) error {
	if err := bson.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "unable to decode event document")
	}
	return nil
}
