package store

import "errors"

// ErrNotFound reports a missing row. Lookups, deletes of absent ids, and
// compound inserts referencing an unknown PDF surface it; callers treat it as
// a normal outcome rather than a storage fault.
var ErrNotFound = errors.New("not found")
