package errors

import (
	"context"
	"errors"
	"log/slog"

	"settingskit/internal/ui"
)

// ErrorHandler reports errors to the user and records them in the log file.
type ErrorHandler struct {
	logger  *slog.Logger
	console *ui.Console
}

func NewErrorHandler() (*ErrorHandler, error) {
	return NewErrorHandlerWithConsole(ui.NewConsole())
}

// NewErrorHandlerWithConsole returns a handler that reports to console and
// logs to the rotated log file.
func NewErrorHandlerWithConsole(console *ui.Console) (*ErrorHandler, error) {
	logFile, err := openLogFile()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	return &ErrorHandler{
		logger:  logger,
		console: console,
	}, nil
}

func (h *ErrorHandler) Handle(err error) {
	if err == nil {
		return
	}

	var settingsErr *SettingsKitError
	if errors.As(err, &settingsErr) {
		h.handleSettingsKitError(settingsErr)
	} else {
		h.handleGenericError(err)
	}
}

func (h *ErrorHandler) handleSettingsKitError(err *SettingsKitError) {
	h.logStructuredError(err)

	message := h.console.FormatErrorMessage(err.Context, err.Cause, err.Suggestion)
	if message == "" {
		message = err.Error()
	}
	h.console.PrintError(message)
}

func (h *ErrorHandler) handleGenericError(err error) {
	h.logger.Error("Unhandled error occurred",
		"error", err.Error(),
		"type", "generic",
	)

	h.console.PrintError(err.Error())
}

func (h *ErrorHandler) logStructuredError(err *SettingsKitError) {
	logAttrs := []slog.Attr{
		slog.String("error", err.Error()),
		slog.String("type", getErrorTypeName(err.Type)),
		slog.String("context", err.Context),
	}

	if err.Cause != "" {
		logAttrs = append(logAttrs, slog.String("cause", err.Cause))
	}

	if err.Suggestion != "" {
		logAttrs = append(logAttrs, slog.String("suggestion", err.Suggestion))
	}

	h.logger.LogAttrs(context.TODO(), slog.LevelError, "SettingsKit error occurred", logAttrs...)
}

// errorTypeNames are the values of the "type" attribute in the log file.
var errorTypeNames = map[error]string{
	ErrBlueprintNotFound:    "blueprint_not_found",
	ErrBlueprintParseFailed: "blueprint_parse_failed",
	ErrSettingsInvalid:      "settings_invalid",
	ErrRenderFailed:         "render_failed",
	ErrSCMFailed:            "scm_failed",
	ErrPreviewFailed:        "preview_failed",
	ErrRuntimeFailed:        "runtime_failed",
	ErrConfigInvalid:        "config_invalid",
	ErrNetworkFailed:        "network_failed",
	ErrFileSystemFailed:     "filesystem_failed",
}

func getErrorTypeName(errType error) string {
	if name, ok := errorTypeNames[errType]; ok {
		return name
	}
	return "unknown"
}
