package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/whiteakyloff/metis-back-v2/internal/domain/errs"
)

// HandleMongoError maps a MongoDB error to a domain error.
// Returns:
//   - nil if err == nil
//   - errs.ErrNotFound if the document was not found
//   - errs.ErrAlreadyExists on a unique constraint violation
//   - a wrapped error otherwise
func HandleMongoError(err error, resourceType string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return errs.ErrAlreadyExists
	}

	return fmt.Errorf("failed to operate on %s: %w", resourceType, err)
}

// UpsertOptions returns the standard options for an upsert write.
func UpsertOptions() *options.UpdateOneOptionsBuilder {
	return options.UpdateOne().SetUpsert(true)
}

// StringPtr returns a pointer to the string, or nil for an empty string.
// Useful for optional string fields in documents.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue returns the string behind the pointer, or "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
