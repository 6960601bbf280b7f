package nfs

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnavailable reports that the mountstats file does not exist or
// cannot be read. The cycle produces no per-mount data.
var ErrUnavailable = errors.New("mountstats unavailable")

// NumberError is returned by the tokenizer for a token that is not an
// unsigned 64-bit integer.
type NumberError struct {
	Index int
	Token string
	Err   error
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("token %d (%q) is not an unsigned integer: %v", e.Index, e.Token, e.Err)
}

func (e *NumberError) Unwrap() error { return e.Err }

// ParseError is a malformed line. It aborts the parse pass, records
// dispatched before it are not affected.
type ParseError struct {
	Line  int
	State parseState
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d (state %s, line %q): %v", e.Line, e.State, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError is a malformed mountpoint configuration. The plugin stays
// disabled when it is returned from Init.
type ConfigError struct {
	Mountpoint string
	Field      string
	Reason     string
}

func (e *ConfigError) Error() string {
	if e.Mountpoint == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("mountpoint %q: invalid %s: %s", e.Mountpoint, e.Field, e.Reason)
}

var (
	errCountMismatch = errors.New("unexpected number of values")
	errMissingMarker = errors.New("missing marker")
)
