package trigger

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// stages of a delivery failure
const (
	StageTrigger  = "trigger"
	StageSchedule = "schedule"
	StagePersist  = "persist"
	StagePush     = "push"
)

// DeliveryError is one failure inside a trigger. SellerID is empty for
// failures that concern the whole trigger.
type DeliveryError struct {
	SellerID string `json:"sellerId,omitempty"`
	Stage    string `json:"stage"`
	Message  string `json:"error"`
	Err      error  `json:"-"`
}

// Result summarises one trigger invocation. Triggers always complete; a
// partial failure is reported here instead of being returned as an error.
type Result struct {
	Trigger    string          `json:"trigger"`
	EventID    string          `json:"eventId"`
	Recipients int             `json:"recipients"`
	Persisted  int             `json:"persisted"`
	Sent       int             `json:"sent"`
	NoToken    int             `json:"noToken"`
	Ignored    int             `json:"ignored,omitempty"` // seller groups without a seller
	Skipped    string          `json:"skipped,omitempty"`
	Errors     []DeliveryError `json:"errors,omitempty"`
}

func newResult(trigger, eventID string) Result {
	return Result{Trigger: trigger, EventID: eventID}
}

func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

func (r *Result) addError(sellerID, stage string, err error) {
	r.Errors = append(r.Errors, DeliveryError{
		SellerID: sellerID,
		Stage:    stage,
		Message:  err.Error(),
		Err:      err,
	})
}

// Log writes a summary line and one line per delivery error.
func (r *Result) Log(logger logrus.FieldLogger) {
	logger = logger.WithFields(logrus.Fields{
		"trigger":  r.Trigger,
		"event_id": r.EventID,
	})
	for _, e := range r.Errors {
		logger.WithFields(logrus.Fields{
			"seller_id": e.SellerID,
			"stage":     e.Stage,
		}).Error(e.Message)
	}
	summary := logger.WithFields(logrus.Fields{
		"recipients": r.Recipients,
		"persisted":  r.Persisted,
		"sent":       r.Sent,
		"no_token":   r.NoToken,
		"ignored":    r.Ignored,
		"failures":   len(r.Errors),
	})
	if r.Skipped != "" {
		summary.Infof("trigger skipped: %s", r.Skipped)
		return
	}
	summary.Info("trigger completed")
}

// collector guards a Result shared by concurrent jobs.
type collector struct {
	mu     sync.Mutex
	result *Result
}

func (c *collector) fail(sellerID, stage string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result.addError(sellerID, stage, err)
}

func (c *collector) update(fn func(r *Result)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.result)
}
