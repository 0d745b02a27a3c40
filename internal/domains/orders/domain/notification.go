package domain

import "time"

// NotificationKind selects the message sent to a customer.
type NotificationKind string

const (
	NotificationConfirmation NotificationKind = "confirmation"
	NotificationStatusUpdate NotificationKind = "status_update"
)

// Notification is a request to message the customer about an order.
type Notification struct {
	Kind  NotificationKind
	Order *Order
}

// NotificationReceipt reports a delivered notification back to the operator.
type NotificationReceipt struct {
	OrderID   string
	Kind      NotificationKind
	Recipient string
	SentAt    time.Time
}
