package kv

import "fmt"

// Kind classifies a store failure.
type Kind int

const (
	KindSerialization Kind = iota + 1
	KindDeserialization
	KindStorageWrite
	KindStorageRead
)

func (k Kind) String() string {
	switch k {
	case KindSerialization:
		return "serialization error"
	case KindDeserialization:
		return "deserialization error"
	case KindStorageWrite:
		return "storage write error"
	case KindStorageRead:
		return "storage read failure"
	default:
		return "unknown error"
	}
}

// Error is returned by every failing Store operation. Errors match each other
// by Kind, so errors.Is(err, ErrSerialization) works on any wrapped *Error.
type Error struct {
	Op   string // setItem, getItem, removeItem, clear, getAllKeys
	Key  string
	Kind Kind
	Err  error
}

// Sentinels for errors.Is.
var (
	ErrSerialization   = &Error{Kind: KindSerialization}
	ErrDeserialization = &Error{Kind: KindDeserialization}
	ErrStorageWrite    = &Error{Kind: KindStorageWrite}
	ErrStorageRead     = &Error{Kind: KindStorageRead}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" (key %q)", e.Key)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
