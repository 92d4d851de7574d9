package stats

import (
	"errors"
	"fmt"
)

// DataIntegrityError reports input that violates a structural invariant,
// such as a warranty ending before it starts or a negative cost. It always
// names the offending entity.
type DataIntegrityError struct {
	EntityID string
	Reason   string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity violation on %s: %s", e.EntityID, e.Reason)
}

// MissingReferenceError reports an entity whose parent is absent from the
// snapshot it was handed alongside.
type MissingReferenceError struct {
	EntityID  string
	Reference string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("%s references missing %s", e.EntityID, e.Reference)
}

func IsDataIntegrityError(err error) bool {
	var de *DataIntegrityError
	return errors.As(err, &de)
}

func IsMissingReferenceError(err error) bool {
	var me *MissingReferenceError
	return errors.As(err, &me)
}
