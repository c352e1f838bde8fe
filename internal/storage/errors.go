package storage

import "github.com/pkg/errors"

// Logical errors: returned as ordinary values, reported to the caller,
// never fatal.
var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrKeyNotFound  = errors.New("key not found")
)

// FatalError marks an I/O failure or an integrity violation (spec.md §7):
// an invalid child pointer, eviction with every page pinned, an
// out-of-range page number, or a failed page read or write. It is raised
// as a panic; cmd/gostore's main recovers it and turns it into a
// terminating diagnostic. Nothing below that point is expected to
// continue after one is raised.
type FatalError struct {
	msg string
	err error
}

func (e *FatalError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *FatalError) Unwrap() error { return e.err }

func fatalf(msg string, err error) {
	panic(&FatalError{msg: msg, err: err})
}

func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}
