package models

// NotificationType controls how a notification is rendered.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Notification is an ephemeral informational message. Notifications are not
// financial records: operations on them are never undoable.
type Notification struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Date    string           `json:"date"`
	IsRead  bool             `json:"isRead"`
	Type    NotificationType `json:"type"`
}
