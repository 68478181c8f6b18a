// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package cptrie

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies an error returned by the builder or freezer, per
// spec.md §7.
type Kind int

const (
	_ Kind = iota
	// KindIllegalArgument marks a caller-input validation failure: a
	// code point out of range, start > end, an unsupported ValueBits,
	// freeze called twice with different widths, or Clone on a frozen
	// trie.
	KindIllegalArgument
	// KindNoWritePermission marks a mutation attempted after Freeze.
	KindNoWritePermission
	// KindMemoryAllocation marks an allocation failure. The builder
	// must be discarded afterwards.
	KindMemoryAllocation
	// KindIndexOutOfBounds marks a post-compaction size that violates
	// invariant I4.
	KindIndexOutOfBounds
	// KindInvalidFormat marks an unrecognized signature or version on
	// the read side.
	KindInvalidFormat
)

func (k Kind) String() string {
	switch k {
	case KindIllegalArgument:
		return "illegal argument"
	case KindNoWritePermission:
		return "no write permission"
	case KindMemoryAllocation:
		return "memory allocation"
	case KindIndexOutOfBounds:
		return "index out of bounds"
	case KindInvalidFormat:
		return "invalid format"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by cptrie operations. Use
// errors.Is against the Err* sentinels, or errors.As to recover the
// Kind, the operation, and the detail message.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cptrie: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("cptrie: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's Kind, so callers can
// write errors.Is(err, cptrie.ErrIllegalArgument) without a type
// assertion.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindIllegalArgument:
		return target == ErrIllegalArgument
	case KindNoWritePermission:
		return target == ErrNoWritePermission
	case KindMemoryAllocation:
		return target == ErrMemoryAllocation
	case KindIndexOutOfBounds:
		return target == ErrIndexOutOfBounds
	case KindInvalidFormat:
		return target == ErrInvalidFormat
	default:
		return false
	}
}

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	ErrIllegalArgument    = errors.New("illegal argument")
	ErrNoWritePermission  = errors.New("no write permission")
	ErrMemoryAllocation   = errors.New("memory allocation")
	ErrIndexOutOfBounds   = errors.New("index out of bounds")
	ErrInvalidFormat      = errors.New("invalid format")
)

// newErr wraps cause (if any) with call-site context via pkg/errors, so
// %+v on the returned error renders a stack trace pointing at the
// operation that failed.
func newErr(op string, kind Kind, format string, args ...any) error {
	var cause error
	if format != "" {
		cause = fmt.Errorf(format, args...)
	}
	return pkgerrors.WithStack(&Error{Kind: kind, Op: op, Err: cause})
}
