package errors

import (
	"log/slog"
	"sync"

	"settingskit/internal/ui"
)

var (
	defaultHandler    *ErrorHandler
	defaultHandlerErr error
	once              sync.Once
)

// GetDefaultHandler returns the process-wide handler, opening the log file on
// first use.
func GetDefaultHandler() (*ErrorHandler, error) {
	once.Do(func() {
		defaultHandler, defaultHandlerErr = NewErrorHandler()
	})
	return defaultHandler, defaultHandlerErr
}

// HandleError reports err through the default handler. If the log file cannot
// be opened the error is still printed.
func HandleError(err error) {
	if err == nil {
		return
	}
	handler, handlerErr := GetDefaultHandler()
	if handlerErr != nil {
		fallback := &ErrorHandler{logger: slog.New(slog.DiscardHandler), console: ui.NewConsole()}
		fallback.Handle(err)
		return
	}
	handler.Handle(err)
}

func resetDefaultHandler() {
	defaultHandler = nil
	defaultHandlerErr = nil
	once = sync.Once{}
}
