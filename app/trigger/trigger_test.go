package trigger

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/TestingSDK2/marketplace-notifier/app/push"
	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memNotifications is an in-memory notification.Service.
type memNotifications struct {
	mu       sync.Mutex
	items    []model.Notification
	failFor  map[string]bool
	panicFor map[string]bool
}

func (m *memNotifications) Create(_ context.Context, n *model.Notification) error {
	if m.panicFor[n.ReceiverID] {
		panic("boom")
	}
	if m.failFor[n.ReceiverID] {
		return errors.New("insert failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotifications) byType(typ string) []model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Notification{}
	for _, n := range m.items {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

// fakePusher is a push.Service that records calls and tracks concurrency.
type fakePusher struct {
	mu       sync.Mutex
	sellers  []string
	noToken  map[string]bool
	failFor  map[string]bool
	delay    time.Duration
	inFlight int32
	maxSeen  int32
}

func (f *fakePusher) Send(_ context.Context, sellerID string, _ *model.Notification) (push.Status, error) {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&f.maxSeen)
		if cur <= seen || atomic.CompareAndSwapInt32(&f.maxSeen, seen, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.sellers = append(f.sellers, sellerID)
	f.mu.Unlock()

	if f.failFor[sellerID] {
		return "", errors.New("push rejected")
	}
	if f.noToken[sellerID] {
		return push.StatusNoToken, nil
	}
	return push.StatusSent, nil
}

type memSellers struct {
	ids []string
	err error
}

func (m *memSellers) ListSellerIDs(context.Context) ([]string, error) {
	return m.ids, m.err
}

func intPtr(v int) *int { return &v }

func newTestService(notifications *memNotifications, pusher *fakePusher, sellers *memSellers) Service {
	if sellers == nil {
		sellers = &memSellers{}
	}
	return NewService(notifications, pusher, sellers, 4)
}

func TestOrderCreated_OneNotificationPerSellerGroup(t *testing.T) {
	notifications := &memNotifications{}
	pusher := &fakePusher{}
	svc := newTestService(notifications, pusher, nil)

	order := &model.Order{SellerGroups: []model.SellerGroup{
		{SellerID: "S1", Items: []model.OrderItem{{Quantity: intPtr(2)}, {Quantity: intPtr(1)}}, Subtotal: 450},
		{SellerID: "S2", Items: []model.OrderItem{{}, {Quantity: intPtr(3)}}, Subtotal: 99.5},
		{SellerID: "S3", Items: []model.OrderItem{{}}, Subtotal: 10},
	}}

	result := svc.OrderCreated(context.Background(), "ord_1234567890", order)

	assert.False(t, result.Failed())
	assert.Equal(t, 3, result.Recipients)
	assert.Equal(t, 3, result.Persisted)
	assert.Equal(t, 3, result.Sent)

	created := notifications.byType(consts.OrderType)
	require.Len(t, created, 3)
	counts := map[string]int{}
	for _, n := range created {
		require.NotNil(t, n.ItemCount)
		counts[n.ReceiverID] = *n.ItemCount
		assert.Equal(t, "ord_1234567890", n.OrderID)
		assert.Equal(t, "New Order Received!", n.Title)
		assert.Equal(t, consts.Unread, n.Status)
		assert.Contains(t, n.Message, "Order #ord_1234")
		assert.NotContains(t, n.Message, "ord_12345678")
		assert.Equal(t, "/seller/orders/ord_1234567890", n.Link)
	}
	assert.Equal(t, map[string]int{"S1": 3, "S2": 4, "S3": 1}, counts)
	assert.ElementsMatch(t, []string{"S1", "S2", "S3"}, pusher.sellers)
}

func TestOrderCreated_EndToEndScenario(t *testing.T) {
	notifications := &memNotifications{}
	pusher := &fakePusher{}
	svc := newTestService(notifications, pusher, nil)

	order := &model.Order{SellerGroups: []model.SellerGroup{
		{SellerID: "S1", Items: []model.OrderItem{{Quantity: intPtr(2)}, {Quantity: intPtr(1)}}, Subtotal: 450},
	}}

	svc.OrderCreated(context.Background(), "O1", order)

	created := notifications.byType(consts.OrderType)
	require.Len(t, created, 1)
	assert.Equal(t, "S1", created[0].ReceiverID)
	assert.Equal(t, 3, *created[0].ItemCount)
	assert.Equal(t, 450.0, *created[0].TotalAmount)
	assert.Equal(t, []string{"S1"}, pusher.sellers)
}

func TestOrderCreated_NoSellerGroups(t *testing.T) {
	for name, order := range map[string]*model.Order{
		"nil order":    nil,
		"absent list":  {},
		"empty groups": {SellerGroups: []model.SellerGroup{}},
	} {
		t.Run(name, func(t *testing.T) {
			notifications := &memNotifications{}
			pusher := &fakePusher{}
			svc := newTestService(notifications, pusher, nil)

			result := svc.OrderCreated(context.Background(), "O1", order)

			assert.False(t, result.Failed())
			assert.NotEmpty(t, result.Skipped)
			assert.Empty(t, notifications.items)
			assert.Empty(t, pusher.sellers)
		})
	}
}

func TestOrderCreated_PersistFailureIsolated(t *testing.T) {
	notifications := &memNotifications{failFor: map[string]bool{"S2": true}}
	pusher := &fakePusher{failFor: map[string]bool{"S3": true}}
	svc := newTestService(notifications, pusher, nil)

	order := &model.Order{SellerGroups: []model.SellerGroup{
		{SellerID: "S1"}, {SellerID: "S2"}, {SellerID: "S3"},
	}}

	result := svc.OrderCreated(context.Background(), "O1", order)

	require.True(t, result.Failed())
	require.Len(t, result.Errors, 2)
	stages := map[string]string{}
	for _, e := range result.Errors {
		stages[e.SellerID] = e.Stage
	}
	assert.Equal(t, map[string]string{"S2": StagePersist, "S3": StagePush}, stages)
	assert.Equal(t, 2, result.Persisted)
	assert.Equal(t, 1, result.Sent)
	// no push for the seller whose notification was not stored
	assert.ElementsMatch(t, []string{"S1", "S3"}, pusher.sellers)
}

func TestReviewCreated_Scenario(t *testing.T) {
	notifications := &memNotifications{}
	pusher := &fakePusher{}
	svc := newTestService(notifications, pusher, nil)

	review := &model.Review{SellerID: "S2", Rating: 4, ProductName: "Ring", DisplayName: "Asha"}

	result := svc.ReviewCreated(context.Background(), "P1", "R1", review)

	assert.False(t, result.Failed())
	created := notifications.byType(consts.ReviewType)
	require.Len(t, created, 1)
	n := created[0]
	assert.Equal(t, "S2", n.ReceiverID)
	assert.Equal(t, "Asha rated \"Ring\" ⭐⭐⭐⭐☆", n.Message)
	assert.Equal(t, "4/5 Star Review!", n.Title)
	assert.Equal(t, 4, *n.Rating)
	assert.Equal(t, "P1", n.ProductID)
	assert.Equal(t, "R1", n.ReviewID)
	assert.Equal(t, "/seller/products/P1/reviews", n.Link)
	assert.Equal(t, []string{"S2"}, pusher.sellers)
}

func TestReviewCreated_StarGlyphs(t *testing.T) {
	for r := 0; r <= 5; r++ {
		notifications := &memNotifications{}
		svc := newTestService(notifications, &fakePusher{}, nil)

		svc.ReviewCreated(context.Background(), "P1", "R1", &model.Review{SellerID: "S1", Rating: r, ProductName: "Ring", DisplayName: "Asha"})

		created := notifications.byType(consts.ReviewType)
		require.Len(t, created, 1)
		suffix := strings.Repeat("⭐", r) + strings.Repeat("☆", 5-r)
		assert.True(t, strings.HasSuffix(created[0].Message, " "+suffix), "rating %d: %s", r, created[0].Message)
		assert.Equal(t, r, strings.Count(created[0].Message, "⭐"))
		assert.Equal(t, 5-r, strings.Count(created[0].Message, "☆"))
	}
}

func TestReviewCreated_NoSellerOrNoData(t *testing.T) {
	notifications := &memNotifications{}
	pusher := &fakePusher{}
	svc := newTestService(notifications, pusher, nil)

	noSeller := svc.ReviewCreated(context.Background(), "P1", "R1", &model.Review{Rating: 5})
	noData := svc.ReviewCreated(context.Background(), "P1", "R2", nil)

	assert.NotEmpty(t, noSeller.Skipped)
	assert.NotEmpty(t, noData.Skipped)
	assert.Empty(t, notifications.items)
	assert.Empty(t, pusher.sellers)
}

func TestReviewCreated_FallsBackToReviewProduct(t *testing.T) {
	notifications := &memNotifications{}
	svc := newTestService(notifications, &fakePusher{}, nil)

	svc.ReviewCreated(context.Background(), "", "R1", &model.Review{SellerID: "S1", ProductID: "P9", Rating: 3})

	created := notifications.byType(consts.ReviewType)
	require.Len(t, created, 1)
	assert.Equal(t, "P9", created[0].ProductID)
	assert.Equal(t, "A customer rated \"your product\" ⭐⭐⭐☆☆", created[0].Message)
}

func TestAnnouncementCreated_NotifiesEverySeller(t *testing.T) {
	notifications := &memNotifications{}
	pusher := &fakePusher{noToken: map[string]bool{"suspended": true}}
	sellers := &memSellers{ids: []string{"S1", "S2", "suspended", "unapproved"}}
	svc := newTestService(notifications, pusher, sellers)

	result := svc.AnnouncementCreated(context.Background(), "A1", &model.Announcement{})

	assert.False(t, result.Failed())
	assert.Equal(t, 4, result.Recipients)
	assert.Equal(t, 3, result.Sent)
	assert.Equal(t, 1, result.NoToken)

	created := notifications.byType(consts.AdminType)
	require.Len(t, created, 4)
	for _, n := range created {
		assert.Equal(t, "📢 Admin Announcement", n.Title)
		assert.Equal(t, "New announcement from admin", n.Message)
		assert.Equal(t, "/seller/notifications", n.Link)
		assert.Equal(t, "A1", n.AnnouncementID)
	}
}

func TestAnnouncementCreated_UsesAnnouncementFields(t *testing.T) {
	notifications := &memNotifications{}
	svc := newTestService(notifications, &fakePusher{}, &memSellers{ids: []string{"S1"}})

	svc.AnnouncementCreated(context.Background(), "A1", &model.Announcement{
		Title:   "Holiday hours",
		Message: "Payouts pause on Friday",
		Link:    "/seller/payouts",
	})

	created := notifications.byType(consts.AdminType)
	require.Len(t, created, 1)
	assert.Equal(t, "📢 Holiday hours", created[0].Title)
	assert.Equal(t, "Payouts pause on Friday", created[0].Message)
	assert.Equal(t, "/seller/payouts", created[0].Link)
}

func TestAnnouncementCreated_SellerListFailure(t *testing.T) {
	notifications := &memNotifications{}
	svc := newTestService(notifications, &fakePusher{}, &memSellers{err: errors.New("cursor killed")})

	result := svc.AnnouncementCreated(context.Background(), "A1", &model.Announcement{})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, StageTrigger, result.Errors[0].Stage)
	assert.Empty(t, notifications.items)
}

func TestFanOut_RespectsConcurrencyLimit(t *testing.T) {
	ids := make([]string, 20)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}
	pusher := &fakePusher{delay: 5 * time.Millisecond}
	svc := NewService(&memNotifications{}, pusher, &memSellers{ids: ids}, 3)

	result := svc.AnnouncementCreated(context.Background(), "A1", &model.Announcement{})

	assert.Equal(t, 20, result.Sent)
	assert.LessOrEqual(t, atomic.LoadInt32(&pusher.maxSeen), int32(3))
}

func TestFanOut_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(&memNotifications{}, &fakePusher{}, &memSellers{ids: []string{"S1", "S2"}}, 1)

	result := svc.AnnouncementCreated(ctx, "A1", &model.Announcement{})

	assert.Equal(t, 2, result.Recipients)
	assert.Zero(t, result.Persisted)
	require.Len(t, result.Errors, 2)
	for _, e := range result.Errors {
		assert.Equal(t, StageSchedule, e.Stage)
	}
}

func TestFanOut_PanicInOneJob(t *testing.T) {
	notifications := &memNotifications{panicFor: map[string]bool{"S1": true}}
	svc := newTestService(notifications, &fakePusher{}, &memSellers{ids: []string{"S1", "S2"}})

	result := svc.AnnouncementCreated(context.Background(), "A1", &model.Announcement{})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "S1", result.Errors[0].SellerID)
	assert.Equal(t, StagePersist, result.Errors[0].Stage)
	assert.Equal(t, 1, result.Sent)
}

func TestOrderCreated_SkipsGroupWithoutSeller(t *testing.T) {
	notifications := &memNotifications{}
	pusher := &fakePusher{}
	svc := newTestService(notifications, pusher, nil)

	order := &model.Order{SellerGroups: []model.SellerGroup{
		{SellerID: "", Items: []model.OrderItem{{}}},
		{SellerID: "S1", Items: []model.OrderItem{{}}},
	}}

	result := svc.OrderCreated(context.Background(), "O1", order)

	assert.False(t, result.Failed())
	assert.Equal(t, 1, result.Ignored)
	assert.Equal(t, 1, result.Recipients)
	assert.Equal(t, 1, result.Persisted)
	created := notifications.byType(consts.OrderType)
	require.Len(t, created, 1)
	assert.Equal(t, "S1", created[0].ReceiverID)
	assert.Equal(t, []string{"S1"}, pusher.sellers)
}

func TestOrderCreated_OnlyGroupsWithoutSeller(t *testing.T) {
	notifications := &memNotifications{}
	pusher := &fakePusher{}
	svc := newTestService(notifications, pusher, nil)

	result := svc.OrderCreated(context.Background(), "O1", &model.Order{SellerGroups: []model.SellerGroup{{}}})

	assert.False(t, result.Failed())
	assert.Equal(t, 1, result.Ignored)
	assert.Zero(t, result.Recipients)
	assert.NotEmpty(t, result.Skipped)
	assert.Empty(t, notifications.items)
	assert.Empty(t, pusher.sellers)
}

func TestFanOut_NonPositiveConcurrency(t *testing.T) {
	pusher := &fakePusher{}
	svc := NewService(&memNotifications{}, pusher, &memSellers{ids: []string{"S1", "S2", "S3"}}, 0)

	result := svc.AnnouncementCreated(context.Background(), "A1", &model.Announcement{})

	assert.Equal(t, 3, result.Sent)
	assert.Equal(t, int32(1), atomic.LoadInt32(&pusher.maxSeen))
}
