package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
)

var statusMessages = map[domain.Status]string{
	domain.StatusPending:    "Your order has been received and is awaiting processing.",
	domain.StatusInProgress: "Your order is now being prepared and will be shipped soon.",
	domain.StatusDelivered:  "Your order has been delivered successfully. Thank you for shopping with us!",
}

const layout = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #16a34a;">{{.Heading}}</h2>
  <p>Dear {{.Order.CustomerName}},</p>
  {{- if .StatusUpdate}}
  <p>Your order status has been updated to: <strong>{{.Order.Status}}</strong></p>
  <p>{{.StatusMessage}}</p>
  {{- else}}
  <p>Thank you for your order. We've received your request for:</p>
  {{- end}}
  <div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 15px 0;">
    <p><strong>Product:</strong> {{.Order.ProductName}}</p>
    <p><strong>Quantity:</strong> {{.Order.Quantity}} kg</p>
    <p><strong>Order ID:</strong> {{.Order.ID}}</p>
    {{- if not .StatusUpdate}}
    <p><strong>Status:</strong> {{.Order.Status}}</p>
    {{- end}}
  </div>
  <p>You can track your order status at any time by visiting:</p>
  <p><a href="{{.TrackingURL}}" style="color: #16a34a;">Track Your Order</a></p>
  <p>Thank you for choosing Fresh Harvest!</p>
</div>
`

var bodyTemplate = template.Must(template.New("order-email").Parse(layout))

type emailView struct {
	Heading       string
	StatusUpdate  bool
	StatusMessage string
	TrackingURL   string
	Order         *domain.Order
}

// Rendered is a ready-to-send message.
type Rendered struct {
	Subject string
	HTML    string
}

// Render builds the subject and HTML body for a notification.
func Render(n domain.Notification, appURL string) (Rendered, error) {
	if n.Order == nil {
		return Rendered{}, fmt.Errorf("notification has no order")
	}
	view := emailView{
		Order:       n.Order,
		TrackingURL: TrackingURL(appURL, n.Order.ID),
	}
	var subject string
	switch n.Kind {
	case domain.NotificationConfirmation:
		subject = "Order Confirmation - #" + n.Order.ID
		view.Heading = "Your Order Has Been Received"
	case domain.NotificationStatusUpdate:
		subject = "Order Status Update - #" + n.Order.ID
		view.Heading = "Order Status Update"
		view.StatusUpdate = true
		view.StatusMessage = statusMessages[n.Order.Status]
	default:
		return Rendered{}, fmt.Errorf("unknown notification kind %q", n.Kind)
	}
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, view); err != nil {
		return Rendered{}, err
	}
	return Rendered{Subject: subject, HTML: buf.String()}, nil
}

// TrackingURL is the public tracking page link for an order.
func TrackingURL(appURL, orderID string) string {
	return strings.TrimRight(appURL, "/") + "/track/" + orderID
}
