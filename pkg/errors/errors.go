// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// New creates a FerretError from a registered error code. Unregistered codes
// fall back to a generic MISC definition rather than panicking.
func New(code ErrorCode, details string) *FerretError {
	def, ok := errorDefinitions[code]
	if !ok {
		return &FerretError{
			Code:       code,
			Domain:     DomainMisc,
			Message:    "Unknown error",
			Details:    details,
			HTTPStatus: http.StatusInternalServerError,
		}
	}

	return &FerretError{
		Code:       code,
		Domain:     def.domain,
		Message:    def.message,
		Details:    details,
		HTTPStatus: def.httpStatus,
	}
}

// Wrap converts any error into a FerretError with the given code. When err is
// already a FerretError its metadata is carried over so context collected at
// lower layers (command line, exit code, output) survives re-wrapping.
func Wrap(err error, code ErrorCode) *FerretError {
	if err == nil {
		return New(code, "")
	}

	fe := New(code, err.Error())

	var inner *FerretError
	if errors.As(err, &inner) && len(inner.Metadata) > 0 {
		fe.Metadata = make(map[string]string, len(inner.Metadata))
		for k, v := range inner.Metadata {
			fe.Metadata[k] = v
		}
	}

	return fe
}

// NewCommandError records a failed command invocation: the command line, the
// process exit code and captured stderr end up in the metadata so callers and
// API responses see the full failure context.
func NewCommandError(command string, exitCode int, stderr string) *FerretError {
	return New(CommandExecution, stderr).
		WithMetadata("command", command).
		WithMetadata("exit_code", strconv.Itoa(exitCode))
}

// WithMetadata attaches a key-value pair to the error and returns it for
// chaining.
func (e *FerretError) WithMetadata(key, value string) *FerretError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

func (e *FerretError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s-%d] %s: %s", e.Domain, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s-%d] %s", e.Domain, e.Code, e.Message)
}

// IsFerretError reports whether err is (or wraps) a FerretError.
func IsFerretError(err error) bool {
	var fe *FerretError
	return errors.As(err, &fe)
}

// AsFerretError extracts the FerretError from err, or nil.
func AsFerretError(err error) *FerretError {
	var fe *FerretError
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

// HasCode reports whether err is a FerretError with the given code.
func HasCode(err error, code ErrorCode) bool {
	fe := AsFerretError(err)
	return fe != nil && fe.Code == code
}
