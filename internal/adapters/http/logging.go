package http

import (
	"context"
	"log/slog"
)

const serviceName = "Media-Access-Service"

// httpLogger tags entries so media HTTP traffic is separable from the
// application and storage layers in aggregated logs.
func httpLogger() *slog.Logger {
	return slog.Default().With(
		"service", serviceName,
		"module", "http",
		"layer", "adapter",
	)
}

// logHTTPOperationError records a failed endpoint operation. Denials and
// client mistakes log at warn; anything 5xx is an error because it means the
// streaming path itself is unhealthy.
func logHTTPOperationError(ctx context.Context, operation string, statusCode int, code, message string, err error) {
	fields := []any{
		"operation", operation,
		"outcome", "failure",
		"status_code", statusCode,
		"error_code", code,
		"message", message,
		"request_id", requestIDFromContext(ctx),
	}
	if err != nil {
		fields = append(fields, "error", err.Error())
	}
	logger := httpLogger()
	if statusCode >= 500 {
		logger.ErrorContext(ctx, "http operation failed", fields...)
		return
	}
	logger.WarnContext(ctx, "http operation failed", fields...)
}
