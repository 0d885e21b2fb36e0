package errutil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/utils/logging"
)

// Handle logs the error with its goerr values and stack, and forwards it to
// Sentry when a client is configured. The error is returned as-is.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logging.From(ctx).Error(msg, attrs(err)...)
	capture(ctx, err)
	return err
}

// HandleHTTP logs the error and writes an appropriate HTTP error response.
// Only 5xx errors are reported to Sentry.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)
	args := append([]any{"status", statusCode}, attrs(err)...)
	if statusCode >= http.StatusInternalServerError {
		logger.Error("HTTP error", args...)
		capture(ctx, err)
	} else {
		logger.Warn("HTTP error", args...)
	}

	http.Error(w, err.Error(), statusCode)
}

func attrs(err error) []any {
	var ge *goerr.Error
	if errors.As(err, &ge) {
		return []any{
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		}
	}
	return []any{"error", err.Error()}
}

func capture(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub = hub.Clone()
	var ge *goerr.Error
	if errors.As(err, &ge) {
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetContext("goerr", sentry.Context(ge.Values()))
		})
	}
	if evID := hub.CaptureException(err); evID != nil {
		logging.From(ctx).Info("error reported to sentry", slog.Any("event_id", *evID))
	}
}
