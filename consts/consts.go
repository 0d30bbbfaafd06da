package consts

// collections
const (
	Orders        = "orders"
	Reviews       = "reviews"
	Announcements = "announcements"
	Sellers       = "sellers"
	Notifications = "notifications"
	SellerTokens  = "sellerTokens"
)

// notification types
const (
	OrderType  = "order"
	ReviewType = "review"
	AdminType  = "admin"
)

// event kinds
const (
	OrderCreated        = "order"
	ReviewCreated       = "review"
	AnnouncementCreated = "announcement"
)

// notification status
const (
	Unread = "unread"
)

// push platforms
const (
	PlatformFCM  = "fcm"
	PlatformAPNS = "apns"
	PlatformWeb  = "web"
)

// deep links
const (
	SellerOrderLink          = "/seller/orders/%s"
	SellerProductReviewsLink = "/seller/products/%s/reviews"
	SellerNotificationsLink  = "/seller/notifications"
)

// redis keys
const (
	EventClaimKey       = "notifier:event:%s:%s"
	ResumeTokenKey      = "notifier:resume:%s"
	RealtimeChannelName = "notifications:%s"
)
