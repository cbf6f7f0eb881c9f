// Package kv defines the device-scoped string store used when a shopper is
// not signed in.
package kv

import (
	"context"
	"fmt"
)

// Store is a string key-value store. A missing key is reported as
// ok == false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// DeviceKey scopes key to a single device.
func DeviceKey(deviceID, key string) string {
	return fmt.Sprintf("device:%s:%s", deviceID, key)
}
