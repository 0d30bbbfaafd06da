package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TestingSDK2/marketplace-notifier/app/trigger"
	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/model"
)

// EventClaimer marks an event as taken so a redelivered copy is skipped.
type EventClaimer interface {
	Claim(key string, ttl time.Duration) (bool, error)
}

// HandleEvent is the entry point of every event source. It claims the event,
// dispatches it and logs the outcome. A duplicate returns ok == false.
func (a *App) HandleEvent(ctx context.Context, event model.Event) (result trigger.Result, ok bool) {
	logger := logrus.WithFields(logrus.Fields{
		"trigger":  event.Kind,
		"event_id": event.DocumentID,
	})

	if a.claims != nil && event.DocumentID != "" {
		key := fmt.Sprintf(consts.EventClaimKey, event.Kind, event.DocumentID)
		claimed, err := a.claims.Claim(key, a.Config.EventClaimTTL)
		if err != nil {
			logger.WithError(err).Warn("unable to claim event, processing anyway")
		} else if !claimed {
			logger.Info("event already handled, skipping")
			return result, false
		}
	}

	result = a.TriggerService.Dispatch(ctx, event)
	result.Log(logger)
	return result, true
}
