package db

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// ResultsNotFound returns true if the error is a query miss rather
// than a real database failure.
func ResultsNotFound(err error) bool {
	return errors.Cause(err) == mongo.ErrNoDocuments
}

// IsDuplicateKey returns true if the error is a unique index
// violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(errors.Cause(err))
}
