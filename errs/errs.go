// Package errs defines the error kinds reported while generating
// filament swatches.
package errs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/itsatony/go-cuserr"
)

// Error messages.
const (
	ErrMsgInputNotFound      = "input file not found"
	ErrMsgExecutableNotFound = "OpenSCAD executable not found"
	ErrMsgMalformedRow       = "malformed sample row"
	ErrMsgRenderFailed       = "OpenSCAD render failed"
	ErrMsgInvalidConfig      = "invalid configuration"
)

// Error codes.
const (
	ErrCodeInput  = "SWATCH_INPUT"
	ErrCodeRow    = "SWATCH_ROW"
	ErrCodeRender = "SWATCH_RENDER"
	ErrCodeConfig = "SWATCH_CONFIG"
)

// Metadata keys.
const (
	MetaKeyKind     = "kind"
	MetaKeyPath     = "path"
	MetaKeyLine     = "line"
	MetaKeyField    = "field"
	MetaKeyRow      = "row"
	MetaKeyPlatform = "platform"
	MetaKeyTried    = "tried"
	MetaKeyReason   = "reason"
)

// Kind classifies an error.
type Kind string

const (
	KindUnknown            Kind = ""
	KindNotFound           Kind = "NotFound"
	KindExecutableNotFound Kind = "ExecutableNotFound"
	KindMalformedRow       Kind = "MalformedRow"
	KindRenderFailed       Kind = "RenderFailed"
	KindInvalidConfig      Kind = "InvalidConfig"
)

// NewNotFoundError reports an input file that does not exist or
// cannot be opened.
func NewNotFoundError(path string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeInput, ErrMsgInputNotFound)
	} else {
		err = cuserr.NewNotFoundError(MetaKeyPath, ErrMsgInputNotFound)
	}
	return err.
		WithMetadata(MetaKeyKind, string(KindNotFound)).
		WithMetadata(MetaKeyPath, path)
}

// NewExecutableNotFoundError reports that no OpenSCAD executable could be
// located on the given platform.
func NewExecutableNotFoundError(platform string, tried []string) error {
	return cuserr.NewNotFoundError(MetaKeyPath, ErrMsgExecutableNotFound).
		WithMetadata(MetaKeyKind, string(KindExecutableNotFound)).
		WithMetadata(MetaKeyPlatform, platform).
		WithMetadata(MetaKeyTried, strings.Join(tried, ", "))
}

// NewMalformedRowError reports a row that lacks a required field.
func NewMalformedRowError(line int, field string, reason string) error {
	return cuserr.NewValidationError(ErrCodeRow, ErrMsgMalformedRow).
		WithMetadata(MetaKeyKind, string(KindMalformedRow)).
		WithMetadata(MetaKeyLine, strconv.Itoa(line)).
		WithMetadata(MetaKeyField, field).
		WithMetadata(MetaKeyReason, reason)
}

// NewRowSyntaxError reports CSV content that could not be parsed.
func NewRowSyntaxError(line int, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRow, ErrMsgMalformedRow).
		WithMetadata(MetaKeyKind, string(KindMalformedRow)).
		WithMetadata(MetaKeyLine, strconv.Itoa(line))
}

// NewRenderFailedError reports an OpenSCAD invocation that could not be
// launched or exited with a non-zero status.
func NewRenderFailedError(row string, line int, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRender, ErrMsgRenderFailed).
		WithMetadata(MetaKeyKind, string(KindRenderFailed)).
		WithMetadata(MetaKeyRow, row).
		WithMetadata(MetaKeyLine, strconv.Itoa(line))
}

// NewInvalidConfigError reports a configuration file or value that
// cannot be used.
func NewInvalidConfigError(path string, reason string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeConfig, ErrMsgInvalidConfig)
	} else {
		err = cuserr.NewValidationError(ErrCodeConfig, ErrMsgInvalidConfig)
	}
	return err.
		WithMetadata(MetaKeyKind, string(KindInvalidConfig)).
		WithMetadata(MetaKeyPath, path).
		WithMetadata(MetaKeyReason, reason)
}

// KindOf returns the kind recorded on err, or KindUnknown.
func KindOf(err error) Kind {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return KindUnknown
	}
	kind, ok := customErr.GetMetadata(MetaKeyKind)
	if !ok {
		return KindUnknown
	}
	return Kind(fmt.Sprint(kind))
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Meta returns a metadata value recorded on err.
func Meta(err error, key string) (string, bool) {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return "", false
	}
	v, ok := customErr.GetMetadata(key)
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}
