package models

import "time"

// Notification types pushed to connected portal users
const (
	NotificationDriveCreated   = "drive_created"
	NotificationDriveCompleted = "drive_completed"
	NotificationExamCreated    = "exam_created"
	NotificationExamCompleted  = "exam_completed"
	NotificationResourceAdded  = "resource_added"
)

// Notification is a realtime announcement for one or more roles
type Notification struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Audience  []Role    `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}
