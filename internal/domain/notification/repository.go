package notification

import "context"

// NotificationRepository defines data access methods for in-app
// notification records. Delivery is out of scope; records are read by
// the client on demand.
type NotificationRepository interface {
	// Create creates a new notification record
	Create(ctx context.Context, n Notification) (Notification, error)

	// ListForUser retrieves notifications for a user, newest first
	ListForUser(ctx context.Context, userID string) ([]Notification, error)

	// MarkAllRead marks every unread notification of a user as read
	MarkAllRead(ctx context.Context, userID string) error
}
