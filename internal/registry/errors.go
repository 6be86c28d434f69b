package registry

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a rejected registry operation.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindNotFound
	KindAlreadyExists
	KindInvalidRole
	KindContractPaused
	KindInvalidStatus
	KindInvalidTarget
	KindBatchTooLarge
)

// Numeric result codes. Paused and invalid-status share 104 on the wire.
const (
	CodeUnauthorized   uint32 = 100
	CodeNotFound       uint32 = 101
	CodeAlreadyExists  uint32 = 102
	CodeInvalidRole    uint32 = 103
	CodeContractPaused uint32 = 104
	CodeInvalidStatus  uint32 = 104
	CodeInvalidTarget  uint32 = 105
	CodeBatchTooLarge  uint32 = 106
)

// Code returns the numeric result code for k, or 0 for KindUnknown.
func (k Kind) Code() uint32 {
	switch k {
	case KindUnauthorized:
		return CodeUnauthorized
	case KindNotFound:
		return CodeNotFound
	case KindAlreadyExists:
		return CodeAlreadyExists
	case KindInvalidRole:
		return CodeInvalidRole
	case KindContractPaused:
		return CodeContractPaused
	case KindInvalidStatus:
		return CodeInvalidStatus
	case KindInvalidTarget:
		return CodeInvalidTarget
	case KindBatchTooLarge:
		return CodeBatchTooLarge
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindInvalidRole:
		return "invalid_role"
	case KindContractPaused:
		return "contract_paused"
	case KindInvalidStatus:
		return "invalid_status"
	case KindInvalidTarget:
		return "invalid_target"
	case KindBatchTooLarge:
		return "batch_too_large"
	default:
		return "unknown"
	}
}

// Error is returned by every failing registry operation.
type Error struct {
	Kind Kind
	Op   string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("registry: %s (%d)", e.Kind, e.Kind.Code())
	}
	return fmt.Sprintf("registry: %s: %s (%d)", e.Op, e.Kind, e.Kind.Code())
}

// Is matches any *Error of the same Kind, so the sentinels below work with
// errors.Is regardless of the operation that produced the error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrUnauthorized   = &Error{Kind: KindUnauthorized}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrAlreadyExists  = &Error{Kind: KindAlreadyExists}
	ErrInvalidRole    = &Error{Kind: KindInvalidRole}
	ErrContractPaused = &Error{Kind: KindContractPaused}
	ErrInvalidStatus  = &Error{Kind: KindInvalidStatus}
	ErrInvalidTarget  = &Error{Kind: KindInvalidTarget}
	ErrBatchTooLarge  = &Error{Kind: KindBatchTooLarge}
)

// KindOf extracts the Kind from err, looking through wrapping.
// It returns KindUnknown for nil or foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func opError(op string, kind Kind) error {
	return &Error{Kind: kind, Op: op}
}
