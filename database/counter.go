package database

import (
	"context"

	"github.com/pkg/errors"
)

const incrementUnreadStmt = "INSERT INTO SellerNotificationCount (sellerID, unreadCount) VALUES (?, 1) " +
	"ON DUPLICATE KEY UPDATE unreadCount = unreadCount + 1"

// IncrementUnread bumps the unread notification count of a seller.
func (d *Database) IncrementUnread(ctx context.Context, sellerID string) error {
	_, err := d.Conn.ExecContext(ctx, incrementUnreadStmt, sellerID)
	if err != nil {
		return errors.Wrap(err, "unable to update unreadCount")
	}
	return nil
}
