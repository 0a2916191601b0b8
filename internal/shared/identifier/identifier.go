package identifier

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity ids are 24-character hex ObjectIDs, stored lower-case.

// New returns a fresh ObjectID in its hex form.
func New() string {
	return primitive.NewObjectID().Hex()
}

// IsObjectID reports whether s has the shape of a primary key.
func IsObjectID(s string) bool {
	return primitive.IsValidObjectID(s)
}

// Normalize lower-cases a primary-key token so it matches the stored form.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Resolve looks an entity up by primary key when the identifier has the
// ObjectID shape and by case-insensitive exact name otherwise.
// When several rows share a name the finder decides which one wins.
func Resolve[T any](ctx context.Context, ident string, byID, byName func(context.Context, string) (T, error)) (T, error) {
	ident = strings.TrimSpace(ident)
	if IsObjectID(ident) {
		return byID(ctx, Normalize(ident))
	}
	return byName(ctx, ident)
}
