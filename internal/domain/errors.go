package domain

import (
	"errors"
	"fmt"
)

// ErrorKind identifies which pipeline stage produced an error
type ErrorKind string

const (
	KindNetwork     ErrorKind = "network"
	KindDocument    ErrorKind = "document"
	KindTranslation ErrorKind = "translation"
	KindIO          ErrorKind = "io"
	KindValidation  ErrorKind = "validation"
	KindConfig      ErrorKind = "config"
)

// baseError is the common shape of every pipeline error
type baseError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *baseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause
func (e *baseError) Unwrap() error {
	return e.Err
}

// NetworkError is returned when a document cannot be fetched
type NetworkError struct {
	baseError
	URL        string
	StatusCode int // 0 when the request never got a response
}

// DocumentError is returned when a PDF cannot be opened or read
type DocumentError struct {
	baseError
	Path string
}

// TranslationError is returned when the translation backend fails
type TranslationError struct {
	baseError
	Stderr string // error output of the external process, if any
}

// IOError is returned when results cannot be persisted
type IOError struct {
	baseError
	Path string
}

// ValidationError is returned for bad user input
type ValidationError struct {
	baseError
}

// ConfigError is returned for missing or inconsistent configuration
type ConfigError struct {
	baseError
}

// NewNetworkError creates a network error for url
func NewNetworkError(url string, statusCode int, message string, err error) *NetworkError {
	return &NetworkError{
		baseError:  baseError{Kind: KindNetwork, Message: message, Err: err},
		URL:        url,
		StatusCode: statusCode,
	}
}

// NewDocumentError creates a document error for path
func NewDocumentError(path, message string, err error) *DocumentError {
	return &DocumentError{
		baseError: baseError{Kind: KindDocument, Message: message, Err: err},
		Path:      path,
	}
}

// NewTranslationError creates a translation error carrying stderr output
func NewTranslationError(message, stderr string, err error) *TranslationError {
	if stderr != "" {
		message = message + ":\n" + stderr
	}
	return &TranslationError{
		baseError: baseError{Kind: KindTranslation, Message: message, Err: err},
		Stderr:    stderr,
	}
}

// NewIOError creates an I/O error for path
func NewIOError(path, message string, err error) *IOError {
	return &IOError{
		baseError: baseError{Kind: KindIO, Message: message, Err: err},
		Path:      path,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string, err error) *ValidationError {
	return &ValidationError{baseError: baseError{Kind: KindValidation, Message: message, Err: err}}
}

// NewConfigError creates a configuration error
func NewConfigError(message string, err error) *ConfigError {
	return &ConfigError{baseError: baseError{Kind: KindConfig, Message: message, Err: err}}
}

// KindOf returns the kind of a pipeline error, or "" for foreign errors
func KindOf(err error) ErrorKind {
	switch {
	case errors.As(err, new(*NetworkError)):
		return KindNetwork
	case errors.As(err, new(*DocumentError)):
		return KindDocument
	case errors.As(err, new(*TranslationError)):
		return KindTranslation
	case errors.As(err, new(*IOError)):
		return KindIO
	case errors.As(err, new(*ValidationError)):
		return KindValidation
	case errors.As(err, new(*ConfigError)):
		return KindConfig
	}
	return ""
}
