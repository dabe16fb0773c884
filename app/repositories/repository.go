// Package repositories contains the MongoDB persistence layer. Each
// repository wraps one collection (or a small family of collections)
// and exposes the queries the services need. Services depend on the
// interfaces declared next to each repository so tests can substitute
// fakes.
package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a queried document does not exist.
var ErrNotFound = errors.New("repositories: document not found")

// ErrDuplicate is returned when a unique index rejects a write.
var ErrDuplicate = errors.New("repositories: duplicate key")

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
