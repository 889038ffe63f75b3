package review

import (
	"context"

	"github.com/campdirector/campdirector/db"
	"github.com/campdirector/campdirector/model/bootcamp"
	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The MongoDB collection for review documents.
const Collection = "reviews"

var (
	// bson fields for the review struct
	IdKey        = bsonutil.MustHaveTag(Review{}, "Id")
	TitleKey     = bsonutil.MustHaveTag(Review{}, "Title")
	TextKey      = bsonutil.MustHaveTag(Review{}, "Text")
	RatingKey    = bsonutil.MustHaveTag(Review{}, "Rating")
	BootcampKey  = bsonutil.MustHaveTag(Review{}, "Bootcamp")
	UserKey      = bsonutil.MustHaveTag(Review{}, "User")
	CreatedAtKey = bsonutil.MustHaveTag(Review{}, "CreatedAt")
)

// EnsureIndexes creates the unique (bootcamp, user) compound index
// that limits each user to one review per bootcamp.
func EnsureIndexes(ctx context.Context) error {
	return db.EnsureIndex(ctx, Collection, mongo.IndexModel{
		Keys:    bson.D{{Key: BootcampKey, Value: 1}, {Key: UserKey, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
}

// Queries

// ById creates a query that finds a review by its _id.
func ById(id string) db.Q {
	return db.Query(bson.M{IdKey: id})
}

// ByBootcamp creates a query that finds all reviews of the given
// bootcamp.
func ByBootcamp(bootcampID string) db.Q {
	return db.Query(bson.M{BootcampKey: bootcampID})
}

// DB Boilerplate

// FindOneId returns the review with the given _id, or nil when no
// such document exists.
func FindOneId(ctx context.Context, id string) (*Review, error) {
	r := &Review{}
	err := db.FindOneQContext(ctx, Collection, ById(id), r)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	return r, errors.WithStack(err)
}

// Find returns all reviews that satisfy the query.
func Find(ctx context.Context, query db.Q) ([]Review, error) {
	reviews := []Review{}
	err := db.FindAllQ(ctx, Collection, query, &reviews)
	return reviews, errors.WithStack(err)
}

// Count returns the number of reviews that satisfy the query,
// ignoring pagination.
func Count(ctx context.Context, query db.Q) (int, error) {
	return db.CountQ(ctx, Collection, query)
}

// UpdateOne applies the given update to the review with the given
// id. Callers are responsible for recomputing the bootcamp's average
// rating afterwards.
func UpdateOne(ctx context.Context, id string, update any) error {
	return db.UpdateIdContext(ctx, Collection, id, update)
}

// RemoveOne deletes the review with the given id. Callers are
// responsible for recomputing the bootcamp's average rating
// afterwards.
func RemoveOne(ctx context.Context, id string) error {
	return db.Remove(ctx, Collection, bson.M{IdKey: id})
}

// RemoveAllForBootcamp deletes every review of the given bootcamp,
// for use when the bootcamp itself is deleted.
func RemoveAllForBootcamp(ctx context.Context, bootcampID string) error {
	return db.RemoveAll(ctx, Collection, bson.M{BootcampKey: bootcampID})
}

func insert(ctx context.Context, r *Review) error {
	return db.Insert(ctx, Collection, r)
}

// UpdateAverageRating recomputes the arithmetic mean of all review
// ratings for the given bootcamp from the full current review set
// and persists it on the bootcamp document. When the last review has
// been removed the derived field is unset rather than zeroed, so a
// bootcamp with no reviews reports no rating at all. The recompute
// is always a full recalculation, so concurrent writers converge on
// a correct value regardless of ordering.
func UpdateAverageRating(ctx context.Context, bootcampID string) error {
	pipeline := []bson.M{
		{"$match": bson.M{BootcampKey: bootcampID}},
		{"$group": bson.M{
			"_id":           "$" + BootcampKey,
			"averageRating": bson.M{"$avg": "$" + RatingKey},
		}},
	}

	out := []struct {
		AverageRating float64 `bson:"averageRating"`
	}{}
	if err := db.Aggregate(ctx, Collection, pipeline, &out); err != nil {
		return errors.Wrapf(err, "aggregating ratings for bootcamp '%s'", bootcampID)
	}

	var update bson.M
	if len(out) == 0 {
		update = bson.M{"$unset": bson.M{bootcamp.AverageRatingKey: 1}}
	} else {
		update = bson.M{"$set": bson.M{bootcamp.AverageRatingKey: out[0].AverageRating}}
	}

	err := bootcamp.UpdateOne(ctx, bootcampID, update)
	if db.ResultsNotFound(err) {
		// The bootcamp is already gone; nothing to reconcile.
		return nil
	}

	return errors.Wrapf(err, "saving average rating for bootcamp '%s'", bootcampID)
}
