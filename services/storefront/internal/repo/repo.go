// Package repo holds the user and order stores. Each record type has a memory,
// a DynamoDB and a Postgres implementation; which one runs is decided once at
// startup by Open.
package repo

import "errors"

// ErrDuplicate is returned by user Create when the email already exists.
var ErrDuplicate = errors.New("duplicate key")
