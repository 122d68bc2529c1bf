package gqlcheck

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrUnknownRule is returned when a rule name from configuration does
	// not resolve to a registered validation rule.
	ErrUnknownRule = errors.New("gqlcheck: unknown rule")

	// ErrNoDocuments is returned when a check is requested but no
	// document sources were provided.
	ErrNoDocuments = errors.New("gqlcheck: no documents to check")
)

// ParseError represents a failure to parse a document source. Validation
// never starts for a document that fails to parse.
type ParseError struct {
	Document string // Source name, typically the file path
	Err      error  // Underlying parser error
}

// Error returns the error string.
func (e *ParseError) Error() string {
	return fmt.Sprintf("gqlcheck: parsing %s: %v", e.Document, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError returns a new ParseError for the given document source.
func NewParseError(document string, err error) *ParseError {
	return &ParseError{Document: document, Err: err}
}

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	if err == nil {
		return false
	}
	var e *ParseError
	return errors.As(err, &e)
}

// ConfigError represents an invalid or unreadable configuration file.
type ConfigError struct {
	Path string // Configuration file path
	Err  error  // Underlying error
}

// Error returns the error string.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("gqlcheck: config %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError returns a new ConfigError for the given path.
func NewConfigError(path string, err error) *ConfigError {
	return &ConfigError{Path: path, Err: err}
}

// IsConfigError returns true if the error is a ConfigError.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigError
	return errors.As(err, &e)
}

// CacheError wraps a cache backend failure with the operation that hit it.
// Cache failures are advisory: the checker falls back to a full run.
type CacheError struct {
	Op  string // Operation (e.g., "get", "set")
	Key string // Cache key involved
	Err error  // Underlying error
}

// Error returns the error string.
func (e *CacheError) Error() string {
	return fmt.Sprintf("gqlcheck: cache %s %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *CacheError) Unwrap() error {
	return e.Err
}

// NewCacheError returns a new CacheError.
func NewCacheError(op, key string, err error) *CacheError {
	return &CacheError{Op: op, Key: key, Err: err}
}

// IsCacheError returns true if the error is a CacheError.
func IsCacheError(err error) bool {
	if err == nil {
		return false
	}
	var e *CacheError
	return errors.As(err, &e)
}
