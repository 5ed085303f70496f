package entity

import (
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"
)

// NotificationType tags what a notification is about.
type NotificationType string

const (
	NotificationOrderStatus NotificationType = "orderStatus"
	NotificationDiscount    NotificationType = "discount"
	NotificationProduct     NotificationType = "product"
)

// Client-side destinations a notification can open.
const (
	ScreenOrderDetails   = "OrderDetails"
	ScreenOrders         = "Orders"
	ScreenDiscounts      = "Discounts"
	ScreenProductDetails = "ProductDetails"
	ScreenNotifications  = "Notifications"
)

// IsValid checks if the type is one of the known tags.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationOrderStatus, NotificationDiscount, NotificationProduct:
		return true
	default:
		return false
	}
}

// entityKey is the payload field that carries the entity id for this type.
func (t NotificationType) entityKey() string {
	switch t {
	case NotificationOrderStatus:
		return "orderId"
	case NotificationDiscount:
		return "discountId"
	case NotificationProduct:
		return "productId"
	default:
		return "entityId"
	}
}

// DefaultScreen is where a notification of this type navigates to.
func (t NotificationType) DefaultScreen() string {
	switch t {
	case NotificationOrderStatus:
		return ScreenOrderDetails
	case NotificationDiscount:
		return ScreenDiscounts
	case NotificationProduct:
		return ScreenProductDetails
	default:
		return ScreenNotifications
	}
}

// NotificationData is the structured payload: {screen, <orderId|discountId|productId>, type}.
type NotificationData struct {
	Screen   string
	EntityID string
	Type     NotificationType
}

// MarshalJSON writes the entity id under the key that matches the type.
func (d NotificationData) MarshalJSON() ([]byte, error) {
	out := map[string]string{
		"screen": d.Screen,
		"type":   string(d.Type),
	}
	out[d.Type.entityKey()] = d.EntityID

	return json.Marshal(out)
}

// UnmarshalJSON reads the type first, then the matching entity key, falling back to any known key.
func (d *NotificationData) UnmarshalJSON(data []byte) error {
	value := gjson.ParseBytes(data)

	d.Screen = value.Get("screen").String()
	d.Type = NotificationType(value.Get("type").String())
	d.EntityID = value.Get(d.Type.entityKey()).String()

	if d.EntityID == "" {
		for _, key := range []string{"orderId", "discountId", "productId", "entityId"} {
			if id := value.Get(key); id.Exists() {
				d.EntityID = id.String()

				break
			}
		}
	}

	return nil
}

// Matches reports whether two payloads refer to the same event.
func (d NotificationData) Matches(other NotificationData) bool {
	return d.Type == other.Type && d.EntityID == other.EntityID
}

// PushMessage is the push-notification contract: {title, body, data}.
type PushMessage struct {
	Title string           `json:"title" validate:"required"`
	Body  string           `json:"body"`
	Data  NotificationData `json:"data"`
}

// Notification is one staged record in the local history or a pending queue.
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Data      NotificationData `json:"data"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}
