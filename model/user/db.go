package user

import (
	"context"

	"github.com/campdirector/campdirector/db"
	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The MongoDB collection for user documents.
const Collection = "users"

var (
	// bson fields for the user struct
	IdKey        = bsonutil.MustHaveTag(DBUser{}, "Id")
	NameKey      = bsonutil.MustHaveTag(DBUser{}, "Name")
	EmailKey     = bsonutil.MustHaveTag(DBUser{}, "EmailAddress")
	RoleKey      = bsonutil.MustHaveTag(DBUser{}, "Role")
	APIKeyKey    = bsonutil.MustHaveTag(DBUser{}, "APIKey")
	CreatedAtKey = bsonutil.MustHaveTag(DBUser{}, "CreatedAt")
)

// EnsureIndexes creates the unique email index.
func EnsureIndexes(ctx context.Context) error {
	return db.EnsureIndex(ctx, Collection, mongo.IndexModel{
		Keys:    bson.D{{Key: EmailKey, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}

// Queries

// ById creates a query that finds a user by their _id.
func ById(id string) db.Q {
	return db.Query(bson.M{IdKey: id})
}

// DB Boilerplate

// FindOneId returns the user with the given _id, or nil when no such
// document exists.
func FindOneId(ctx context.Context, id string) (*DBUser, error) {
	u := &DBUser{}
	err := db.FindOneQContext(ctx, Collection, ById(id), u)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	return u, errors.WithStack(err)
}

// Find returns all users that satisfy the query.
func Find(ctx context.Context, query db.Q) ([]DBUser, error) {
	users := []DBUser{}
	err := db.FindAllQ(ctx, Collection, query, &users)
	return users, errors.WithStack(err)
}

// Count returns the number of users that satisfy the query, ignoring
// pagination.
func Count(ctx context.Context, query db.Q) (int, error) {
	return db.CountQ(ctx, Collection, query)
}

// UpdateOne applies the given update to the user with the given id.
func UpdateOne(ctx context.Context, id string, update any) error {
	return db.UpdateIdContext(ctx, Collection, id, update)
}

// RemoveOne deletes the user with the given id.
func RemoveOne(ctx context.Context, id string) error {
	return db.Remove(ctx, Collection, bson.M{IdKey: id})
}

func insert(ctx context.Context, u *DBUser) error {
	return db.Insert(ctx, Collection, u)
}
