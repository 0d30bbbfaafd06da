package trigger

import (
	"context"

	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
)

const (
	announcementGlyph   = "📢 "
	defaultAnnounceName = "Admin Announcement"
	defaultAnnounceText = "New announcement from admin"
)

// announcementCreated notifies every seller in the collection, with no
// status filter.
func announcementCreated(ctx context.Context, s *service, announcementID string, announcement *model.Announcement) Result {
	result := newResult(consts.AnnouncementCreated, announcementID)
	if announcement == nil {
		result.Skipped = "announcement event carried no data"
		return result
	}

	sellerIDs, err := s.sellers.ListSellerIDs(ctx)
	if err != nil {
		result.addError("", StageTrigger, errors.Wrap(err, "unable to enumerate sellers"))
		return result
	}

	jobs := make([]job, 0, len(sellerIDs))
	for _, sellerID := range sellerIDs {
		jobs = append(jobs, job{
			sellerID:     sellerID,
			notification: announcementNotification(sellerID, announcementID, announcement),
		})
	}
	s.fanOut(ctx, &result, jobs)
	return result
}

func announcementNotification(sellerID, announcementID string, announcement *model.Announcement) *model.Notification {
	title := announcement.Title
	if title == "" {
		title = defaultAnnounceName
	}
	message := announcement.Message
	if message == "" {
		message = defaultAnnounceText
	}
	link := announcement.Link
	if link == "" {
		link = consts.SellerNotificationsLink
	}
	return &model.Notification{
		ReceiverID:     sellerID,
		Type:           consts.AdminType,
		Title:          announcementGlyph + title,
		Message:        message,
		Status:         consts.Unread,
		Link:           link,
		AnnouncementID: announcementID,
	}
}
