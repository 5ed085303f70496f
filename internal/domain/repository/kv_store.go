// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
)

// Keys held in the key-value store. Every value is a JSON document.
const (
	KeyToken                        = "token"
	KeyUserID                       = "userId"
	KeyUserRole                     = "userRole"
	KeyCart                         = "cart"
	KeyNotificationsHistory         = "notificationsHistory"
	KeyPendingOrderNotifications    = "pendingOrderNotifications"
	KeyPendingDiscountNotifications = "pendingDiscountNotifications"
	KeyNewDiscountNotifications     = "newDiscountNotifications"
)

// KeyValueStore is the durable system of record for session, cart and notification lists.
// A missing key is reported with found == false and a nil error.
type KeyValueStore interface {
	// Get returns the stored value for key.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
