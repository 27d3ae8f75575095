package constant

// Notification types persisted in notifications.notification_type.
const (
	NotificationTypeMessage = "message"
	NotificationTypeSystem  = "system"
)

// NotificationPreviewLength is how many runes of a message body are quoted
// in the notification content before truncation.
const NotificationPreviewLength = 50

// Event codes published on the internal bus and mirrored to NATS.
const (
	EventMessageCreated = "MESSAGE_CREATED"
	EventMessageEdited  = "MESSAGE_EDITED"
	EventUserDeleted    = "USER_DELETED"
)
