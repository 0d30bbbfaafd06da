package debug

import (
	"github.com/TestingSDK2/marketplace-notifier/app/trigger"
)

type api struct {
	triggerService trigger.Service
}

// New creates a new debug api
func New(triggerService trigger.Service) *api {
	return &api{
		triggerService: triggerService,
	}
}
