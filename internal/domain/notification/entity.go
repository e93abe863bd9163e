package notification

import "time"

type Notification struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	ReadAt    *time.Time
	CreatedAt time.Time
}
