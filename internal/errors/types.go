package errors

import "errors"

var (
	ErrBlueprintNotFound    = errors.New("blueprint file not found")
	ErrBlueprintParseFailed = errors.New("blueprint parsing failed")
	ErrSettingsInvalid      = errors.New("settings invalid")
	ErrRenderFailed         = errors.New("rendering failed")
	ErrSCMFailed            = errors.New("SCM operation failed")
	ErrPreviewFailed        = errors.New("preview failed")
	ErrRuntimeFailed        = errors.New("runtime operation failed")
	ErrConfigInvalid        = errors.New("configuration invalid")
	ErrNetworkFailed        = errors.New("network operation failed")
	ErrFileSystemFailed     = errors.New("filesystem operation failed")
)

// SettingsKitError carries the user-facing explanation of a failure next to
// the error that caused it.
type SettingsKitError struct {
	Type        error
	Context     string
	Cause       string
	Suggestion  string
	OriginalErr error
}

func (e *SettingsKitError) Error() string {
	if e.OriginalErr == nil {
		return e.Type.Error()
	}
	return e.OriginalErr.Error()
}

func (e *SettingsKitError) Unwrap() error {
	return e.OriginalErr
}

// Is reports whether target is the error's type sentinel, so callers can use
// errors.Is(err, ErrSCMFailed).
func (e *SettingsKitError) Is(target error) bool {
	return target == e.Type
}

func NewSettingsKitError(errorType error, context, cause, suggestion string, originalErr error) *SettingsKitError {
	return &SettingsKitError{
		Type:        errorType,
		Context:     context,
		Cause:       cause,
		Suggestion:  suggestion,
		OriginalErr: originalErr,
	}
}

func NewBlueprintError(context, cause, suggestion string, originalErr error) *SettingsKitError {
	return NewSettingsKitError(ErrBlueprintNotFound, context, cause, suggestion, originalErr)
}

func NewParseError(context, cause, suggestion string, originalErr error) *SettingsKitError {
	return NewSettingsKitError(ErrBlueprintParseFailed, context, cause, suggestion, originalErr)
}

func NewSettingsError(context, cause, suggestion string, originalErr error) *SettingsKitError {
	return NewSettingsKitError(ErrSettingsInvalid, context, cause, suggestion, originalErr)
}

func NewRenderError(context, cause, suggestion string, originalErr error) *SettingsKitError {
	return NewSettingsKitError(ErrRenderFailed, context, cause, suggestion, originalErr)
}

func NewSCMError(context, cause, suggestion string, originalErr error) *SettingsKitError {
	return NewSettingsKitError(ErrSCMFailed, context, cause, suggestion, originalErr)
}

func NewPreviewError(context, cause, suggestion string, originalErr error) *SettingsKitError {
	return NewSettingsKitError(ErrPreviewFailed, context, cause, suggestion, originalErr)
}

func NewRuntimeError(context, cause, suggestion string, originalErr error) *SettingsKitError {
	return NewSettingsKitError(ErrRuntimeFailed, context, cause, suggestion, originalErr)
}

func NewConfigError(context, cause, suggestion string, originalErr error) *SettingsKitError {
	return NewSettingsKitError(ErrConfigInvalid, context, cause, suggestion, originalErr)
}

func NewNetworkError(context, cause, suggestion string, originalErr error) *SettingsKitError {
	return NewSettingsKitError(ErrNetworkFailed, context, cause, suggestion, originalErr)
}

func NewFileSystemError(context, cause, suggestion string, originalErr error) *SettingsKitError {
	return NewSettingsKitError(ErrFileSystemFailed, context, cause, suggestion, originalErr)
}
