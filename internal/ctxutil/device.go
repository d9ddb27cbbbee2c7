// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// DeviceKey is the context key for the device ID that activity is attributed to.
type DeviceKey struct{}

// WithDevice returns a context with the device ID embedded.
func WithDevice(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, DeviceKey{}, deviceID)
}

// DeviceFromContext returns the device ID from context, or empty string if not set.
func DeviceFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(DeviceKey{}).(string); ok {
		return v
	}
	return ""
}
