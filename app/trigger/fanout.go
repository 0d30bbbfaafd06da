package trigger

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/TestingSDK2/marketplace-notifier/app/push"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// job notifies one seller: persist first, then push.
type job struct {
	sellerID     string
	notification *model.Notification
}

// fanOut runs the jobs on a bounded pool and waits for all of them. A failed
// job never stops its siblings.
func (s *service) fanOut(ctx context.Context, result *Result, jobs []job) {
	result.Recipients = len(jobs)
	c := &collector{result: result}
	concurrency := s.concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	sem := semaphore.NewWeighted(int64(concurrency))

	var wg sync.WaitGroup
	for i, j := range jobs {
		err := ctx.Err()
		if err == nil {
			err = sem.Acquire(ctx, 1)
		}
		if err != nil {
			for _, rest := range jobs[i:] {
				c.fail(rest.sellerID, StageSchedule, errors.Wrap(err, "not scheduled"))
			}
			break
		}
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			defer sem.Release(1)
			s.deliver(ctx, j, c)
		}(j)
	}
	wg.Wait()
}

func (s *service) deliver(ctx context.Context, j job, c *collector) {
	stage := StagePersist
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("recovered from notify panic: %v\n%s", r, debug.Stack())
			c.fail(j.sellerID, stage, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := s.notifications.Create(ctx, j.notification); err != nil {
		c.fail(j.sellerID, StagePersist, err)
		return
	}
	c.update(func(r *Result) { r.Persisted++ })

	stage = StagePush
	status, err := s.pusher.Send(ctx, j.sellerID, j.notification)
	if err != nil {
		c.fail(j.sellerID, StagePush, err)
		return
	}
	c.update(func(r *Result) {
		switch status {
		case push.StatusSent:
			r.Sent++
		case push.StatusNoToken:
			r.NoToken++
		}
	})
}
