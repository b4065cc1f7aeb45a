package enrich

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider operations.
var (
	ErrNoMatch     = errors.New("enrich: no match for store")
	ErrRateLimited = errors.New("enrich: rate limited by provider")
	ErrBadRequest  = errors.New("enrich: bad request")
	ErrServer      = errors.New("enrich: provider server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op      string // "enrich", "generateImage"
	StoreID string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("enrich %s [%s]: %v", e.Op, e.StoreID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op, storeID string, err error) error {
	return &Error{Op: op, StoreID: storeID, Err: err}
}
