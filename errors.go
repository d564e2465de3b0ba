package art

import "github.com/pkg/errors"

// structuralError marks an invariant violation caught by an internal
// consistency check. Per the package's failure semantics, these are
// the only fatal condition point operations can hit; every other
// outcome (absent key, usage error) is total and error-free.
type structuralError struct {
	msg string
}

func (e *structuralError) Error() string { return "art: " + e.msg }

func newStructuralError(msg string) error {
	return errors.WithStack(&structuralError{msg: msg})
}

// ErrNotEmpty is returned by BulkLoad when the target tree already
// holds entries. Bulk construction requires a fresh tree.
var ErrNotEmpty = errors.New("art: BulkLoad requires an empty tree")
