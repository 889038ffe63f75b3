package bootcamp

import (
	"context"

	"github.com/campdirector/campdirector/db"
	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// The MongoDB collection for bootcamp documents.
const Collection = "bootcamps"

var (
	// bson fields for the bootcamp struct
	IdKey            = bsonutil.MustHaveTag(Bootcamp{}, "Id")
	NameKey          = bsonutil.MustHaveTag(Bootcamp{}, "Name")
	DescriptionKey   = bsonutil.MustHaveTag(Bootcamp{}, "Description")
	WebsiteKey       = bsonutil.MustHaveTag(Bootcamp{}, "Website")
	LocationKey      = bsonutil.MustHaveTag(Bootcamp{}, "Location")
	CareersKey       = bsonutil.MustHaveTag(Bootcamp{}, "Careers")
	HousingKey       = bsonutil.MustHaveTag(Bootcamp{}, "Housing")
	AverageCostKey   = bsonutil.MustHaveTag(Bootcamp{}, "AverageCost")
	AverageRatingKey = bsonutil.MustHaveTag(Bootcamp{}, "AverageRating")
	UserKey          = bsonutil.MustHaveTag(Bootcamp{}, "User")
	CreatedAtKey     = bsonutil.MustHaveTag(Bootcamp{}, "CreatedAt")
)

// Queries

// All returns all bootcamps.
var All = db.Query(bson.M{})

// ById creates a query that finds a bootcamp by its _id.
func ById(id string) db.Q {
	return db.Query(bson.M{IdKey: id})
}

// ByUser creates a query that finds all bootcamps owned by the given
// user.
func ByUser(userID string) db.Q {
	return db.Query(bson.M{UserKey: userID})
}

// DB Boilerplate

// FindOne returns one bootcamp that satisfies the query.
func FindOne(ctx context.Context, query db.Q) (*Bootcamp, error) {
	b := &Bootcamp{}
	err := db.FindOneQContext(ctx, Collection, query, b)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	return b, errors.WithStack(err)
}

// FindOneId returns the bootcamp with the given _id, or nil when no
// such document exists.
func FindOneId(ctx context.Context, id string) (*Bootcamp, error) {
	return FindOne(ctx, ById(id))
}

// Find returns all bootcamps that satisfy the query.
func Find(ctx context.Context, query db.Q) ([]Bootcamp, error) {
	bootcamps := []Bootcamp{}
	err := db.FindAllQ(ctx, Collection, query, &bootcamps)
	return bootcamps, errors.WithStack(err)
}

// Count returns the number of bootcamps that satisfy the query,
// ignoring pagination.
func Count(ctx context.Context, query db.Q) (int, error) {
	return db.CountQ(ctx, Collection, query)
}

// UpdateOne applies the given update to the bootcamp with the given
// id.
func UpdateOne(ctx context.Context, id string, update any) error {
	return db.UpdateIdContext(ctx, Collection, id, update)
}

// RemoveOne deletes the bootcamp with the given id.
func RemoveOne(ctx context.Context, id string) error {
	return db.Remove(ctx, Collection, bson.M{IdKey: id})
}

func insert(ctx context.Context, b *Bootcamp) error {
	return db.Insert(ctx, Collection, b)
}
