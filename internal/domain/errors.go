package domain

import (
	"errors"
	"fmt"
)

// Kind is the coarse error category exposed on the wire.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindUnauthorized
	KindAlreadyExists
)

// Wire codes. These values are a compatibility contract.
const (
	CodeNotFound      = 101
	CodeUnauthorized  = 102
	CodeAlreadyExists = 103
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// Code projects the kind onto its numeric wire code. Unknown kinds yield 0.
func (k Kind) Code() int {
	switch k {
	case KindNotFound:
		return CodeNotFound
	case KindUnauthorized:
		return CodeUnauthorized
	case KindAlreadyExists:
		return CodeAlreadyExists
	default:
		return 0
	}
}

// KindFromCode is the inverse of Kind.Code.
func KindFromCode(code int) (Kind, bool) {
	switch code {
	case CodeNotFound:
		return KindNotFound, true
	case CodeUnauthorized:
		return KindUnauthorized, true
	case CodeAlreadyExists:
		return KindAlreadyExists, true
	default:
		return 0, false
	}
}

// Reason says precisely why an operation was refused. Several reasons share
// one Kind; only the Kind reaches the wire.
type Reason string

const (
	ReasonArtistExists         Reason = "artist_already_registered"
	ReasonNotRegistered        Reason = "caller_not_registered"
	ReasonArtworkNotFound      Reason = "artwork_not_found"
	ReasonArtistNotFound       Reason = "artist_not_found"
	ReasonNftNotFound          Reason = "nft_not_found"
	ReasonNotCreator           Reason = "caller_not_creator"
	ReasonAlreadyFinalized     Reason = "artwork_already_finalized"
	ReasonNotFinalized         Reason = "artwork_not_finalized"
	ReasonAlreadyMinted        Reason = "artwork_already_minted"
	ReasonContributionOverflow Reason = "contribution_overflow"
)

// Error is the engine's refusal of a transition.
type Error struct {
	Kind   Kind
	Reason Reason
	// Ref names the entity the refusal is about, e.g. "artwork 3".
	Ref string
}

func (e *Error) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Reason, e.Ref)
}

// Code returns the wire code for the error.
func (e *Error) Code() int {
	return e.Kind.Code()
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrNotFound)
// works regardless of reason.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is.
var (
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrUnauthorized  = &Error{Kind: KindUnauthorized}
	ErrAlreadyExists = &Error{Kind: KindAlreadyExists}
)

// NotFound builds a KindNotFound error.
func NotFound(reason Reason, ref string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason, Ref: ref}
}

// Unauthorized builds a KindUnauthorized error.
func Unauthorized(reason Reason, ref string) *Error {
	return &Error{Kind: KindUnauthorized, Reason: reason, Ref: ref}
}

// AlreadyExists builds a KindAlreadyExists error.
func AlreadyExists(reason Reason, ref string) *Error {
	return &Error{Kind: KindAlreadyExists, Reason: reason, Ref: ref}
}

// AsError extracts a domain error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// CodeOf returns the wire code of a domain error, or 0 if err is not one.
func CodeOf(err error) int {
	if de, ok := AsError(err); ok {
		return de.Code()
	}
	return 0
}
