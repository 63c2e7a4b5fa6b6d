package domain

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the failures reported back to the consumer contract.
// The numeric value is the on-chain error code.
type ErrorKind uint64

const (
	KindUnknown ErrorKind = iota
	BadLensProfileID
	FailedToFetchData
	FailedToDecode
	MalformedRequest
)

func (k ErrorKind) String() string {
	switch k {
	case BadLensProfileID:
		return "BadLensProfileId"
	case FailedToFetchData:
		return "FailedToFetchData"
	case FailedToDecode:
		return "FailedToDecode"
	case MalformedRequest:
		return "MalformedRequest"
	default:
		return "Unknown"
	}
}

// Code returns the error code carried in an ERROR response.
func (k ErrorKind) Code() uint64 {
	switch k {
	case BadLensProfileID, FailedToFetchData, FailedToDecode, MalformedRequest:
		return uint64(k)
	default:
		return 0
	}
}

type Error struct {
	Kind ErrorKind
	Err  error
}

func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsFatal reports whether err must fail the whole invocation instead of
// being answered with an ERROR response.
func IsFatal(err error) bool {
	return KindOf(err) == FailedToFetchData
}
