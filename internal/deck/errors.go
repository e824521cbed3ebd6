package deck

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable is matched by every load failure: no master or in-progress
// file, an unreadable file, or rows that do not fit the expected columns.
var ErrDataUnavailable = errors.New("deck data unavailable")

// ErrPersist is matched by every failed write of an in-progress file.
var ErrPersist = errors.New("deck persist failed")

// DataError describes why a table could not be loaded.
type DataError struct {
	Path string
	Err  error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrDataUnavailable, e.Path, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

func (e *DataError) Is(target error) bool { return target == ErrDataUnavailable }

// PersistError reports a failed in-progress write. The deck returned alongside
// it is still the authoritative in-memory state.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrPersist, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

func (e *PersistError) Is(target error) bool { return target == ErrPersist }
