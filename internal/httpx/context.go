package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	deviceIDKey  contextKey = "deviceID"
	platformKey  contextKey = "platform"
	requestIDKey contextKey = "requestID"
)

// DeviceIDFrom retrieves the authenticated device ID from the request context.
func DeviceIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(deviceIDKey).(string); ok {
		return v
	}
	return ""
}

// PlatformFrom retrieves the device platform from the request context.
func PlatformFrom(r *http.Request) string {
	if v, ok := r.Context().Value(platformKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithDevice returns a new context with the device ID and platform.
func ContextWithDevice(ctx context.Context, deviceID, platform string) context.Context {
	ctx = context.WithValue(ctx, deviceIDKey, deviceID)
	return context.WithValue(ctx, platformKey, platform)
}

func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
