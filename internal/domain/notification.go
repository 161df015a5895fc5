package domain

// NotificationKind appointment lifecycle event sent to the vendor
type NotificationKind string

const (
	NotificationConfirmation NotificationKind = "confirmation"
	NotificationReschedule   NotificationKind = "reschedule"
	NotificationCancellation NotificationKind = "cancellation"
)
