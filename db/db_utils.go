package db

import (
	"context"

	"github.com/campdirector/campdirector"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func collection(name string) *mongo.Collection {
	return campdirector.GetEnvironment().DB().Collection(name)
}

// filterOrAll substitutes a match-everything document for a nil
// filter, which the driver rejects.
func filterOrAll(query any) any {
	if query == nil {
		return bson.M{}
	}
	return query
}

// Insert inserts the specified item into the specified collection.
func Insert(ctx context.Context, coll string, item any) error {
	_, err := collection(coll).InsertOne(ctx, item)
	return errors.Wrap(err, "inserting document")
}

// InsertMany inserts all of the given items into the specified
// collection.
func InsertMany(ctx context.Context, coll string, items ...any) error {
	if len(items) == 0 {
		return nil
	}

	_, err := collection(coll).InsertMany(ctx, items)
	return errors.Wrap(err, "inserting documents")
}

// Remove removes one item matching the query from the specified
// collection.
func Remove(ctx context.Context, coll string, query any) error {
	_, err := collection(coll).DeleteOne(ctx, query)
	return errors.Wrap(err, "deleting document")
}

// RemoveAll removes all items matching the query from the specified
// collection.
func RemoveAll(ctx context.Context, coll string, query any) error {
	_, err := collection(coll).DeleteMany(ctx, filterOrAll(query))
	return errors.Wrap(err, "deleting documents")
}

// RemoveAllQ removes all docs that satisfy the query.
func RemoveAllQ(ctx context.Context, coll string, q Q) error {
	return RemoveAll(ctx, coll, q.filter)
}

// UpdateContext updates one matching document in the collection.
func UpdateContext(ctx context.Context, coll string, query any, update any) error {
	res, err := collection(coll).UpdateOne(ctx, query, update)
	if err != nil {
		return errors.Wrap(err, "updating document")
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

// UpdateIdContext updates one _id-matching document in the
// collection.
func UpdateIdContext(ctx context.Context, coll string, id, update any) error {
	return UpdateContext(ctx, coll, bson.D{{Key: "_id", Value: id}}, update)
}

// UpdateAllContext updates all matching documents in the collection,
// returning the number of documents modified.
func UpdateAllContext(ctx context.Context, coll string, query any, update any) (int, error) {
	res, err := collection(coll).UpdateMany(ctx, query, update)
	if err != nil {
		return 0, errors.Wrap(err, "updating documents")
	}

	return int(res.ModifiedCount), nil
}

// Count runs a count command with the specified query against the
// collection.
func Count(ctx context.Context, coll string, query any) (int, error) {
	res, err := collection(coll).CountDocuments(ctx, filterOrAll(query))
	return int(res), errors.WithStack(err)
}

// CountQ runs a Q count query against the given collection,
// ignoring the plan's pagination.
func CountQ(ctx context.Context, coll string, q Q) (int, error) {
	return Count(ctx, coll, q.filter)
}

// FindOneQContext runs a Q query against the given collection,
// applying the result to "out". Only reads one document from the DB.
func FindOneQContext(ctx context.Context, coll string, q Q, out any) error {
	opts := options.FindOne()
	if q.projection != nil {
		opts.SetProjection(q.projection)
	}
	if len(q.sort) > 0 {
		opts.SetSort(sortSpec(q.sort))
	}
	if q.skip > 0 {
		opts.SetSkip(int64(q.skip))
	}

	return collection(coll).FindOne(ctx, filterOrAll(q.filter), opts).Decode(out)
}

// FindAllQ runs a Q query against the given collection, applying the
// results to "out".
func FindAllQ(ctx context.Context, coll string, q Q, out any) error {
	opts := options.Find()
	if q.projection != nil {
		opts.SetProjection(q.projection)
	}
	if len(q.sort) > 0 {
		opts.SetSort(sortSpec(q.sort))
	}
	if q.skip > 0 {
		opts.SetSkip(int64(q.skip))
	}
	if q.limit > 0 {
		opts.SetLimit(int64(q.limit))
	}

	cursor, err := collection(coll).Find(ctx, filterOrAll(q.filter), opts)
	if err != nil {
		return errors.Wrap(err, "finding documents")
	}

	return errors.Wrap(cursor.All(ctx, out), "decoding documents")
}

// Aggregate runs an aggregation pipeline on a collection and
// unmarshals the results to the given "out" interface (usually a
// pointer to an array of structs/bson.M).
func Aggregate(ctx context.Context, coll string, pipeline any, out any) error {
	cursor, err := collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return errors.Wrap(err, "running aggregation")
	}

	return errors.WithStack(cursor.All(ctx, out))
}

// EnsureIndex takes in a collection and ensures that the index is
// created if it does not already exist.
func EnsureIndex(ctx context.Context, coll string, index mongo.IndexModel) error {
	_, err := collection(coll).Indexes().CreateOne(ctx, index)

	return errors.WithStack(err)
}

// =============================================
// ============ Test only functions ============
// =============================================

// CreateCollections ensures that all the given collections are
// created, returning an error immediately if creating any one of
// them fails.
func CreateCollections(ctx context.Context, collections ...string) error {
	const namespaceExistsErrCode = 48
	for _, coll := range collections {
		err := campdirector.GetEnvironment().DB().CreateCollection(ctx, coll)
		if err == nil {
			continue
		}
		// If the collection already exists, this does not count as an error.
		if mongoErr, ok := errors.Cause(err).(mongo.CommandError); ok && mongoErr.HasErrorCode(namespaceExistsErrCode) {
			continue
		}
		return errors.Wrapf(err, "creating collection '%s'", coll)
	}
	return nil
}

// ClearCollections clears all documents from all the specified
// collections, returning an error immediately if clearing any one of
// them fails.
func ClearCollections(ctx context.Context, collections ...string) error {
	for _, coll := range collections {
		if _, err := collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			return errors.Wrapf(err, "clearing collection '%s'", coll)
		}
	}
	return nil
}

// DropCollections drops the specified collections, returning an
// error immediately if dropping any one of them fails.
func DropCollections(ctx context.Context, collections ...string) error {
	for _, coll := range collections {
		if err := collection(coll).Drop(ctx); err != nil {
			return errors.Wrapf(err, "dropping collection '%s'", coll)
		}
	}
	return nil
}
