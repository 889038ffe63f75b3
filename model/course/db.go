package course

import (
	"context"

	"github.com/campdirector/campdirector/db"
	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// The MongoDB collection for course documents.
const Collection = "courses"

var (
	// bson fields for the course struct
	IdKey          = bsonutil.MustHaveTag(Course{}, "Id")
	TitleKey       = bsonutil.MustHaveTag(Course{}, "Title")
	DescriptionKey = bsonutil.MustHaveTag(Course{}, "Description")
	TuitionKey     = bsonutil.MustHaveTag(Course{}, "Tuition")
	BootcampKey    = bsonutil.MustHaveTag(Course{}, "Bootcamp")
	CreatedAtKey   = bsonutil.MustHaveTag(Course{}, "CreatedAt")
)

// Queries

// ById creates a query that finds a course by its _id.
func ById(id string) db.Q {
	return db.Query(bson.M{IdKey: id})
}

// ByBootcamp creates a query that finds all courses belonging to the
// given bootcamp.
func ByBootcamp(bootcampID string) db.Q {
	return db.Query(bson.M{BootcampKey: bootcampID})
}

// DB Boilerplate

// FindOneId returns the course with the given _id, or nil when no
// such document exists.
func FindOneId(ctx context.Context, id string) (*Course, error) {
	c := &Course{}
	err := db.FindOneQContext(ctx, Collection, ById(id), c)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	return c, errors.WithStack(err)
}

// Find returns all courses that satisfy the query.
func Find(ctx context.Context, query db.Q) ([]Course, error) {
	courses := []Course{}
	err := db.FindAllQ(ctx, Collection, query, &courses)
	return courses, errors.WithStack(err)
}

// Count returns the number of courses that satisfy the query,
// ignoring pagination.
func Count(ctx context.Context, query db.Q) (int, error) {
	return db.CountQ(ctx, Collection, query)
}

// UpdateOne applies the given update to the course with the given
// id.
func UpdateOne(ctx context.Context, id string, update any) error {
	return db.UpdateIdContext(ctx, Collection, id, update)
}

// RemoveOne deletes the course with the given id.
func RemoveOne(ctx context.Context, id string) error {
	return db.Remove(ctx, Collection, bson.M{IdKey: id})
}

// RemoveAllForBootcamp deletes every course belonging to the given
// bootcamp, for use when the bootcamp itself is deleted.
func RemoveAllForBootcamp(ctx context.Context, bootcampID string) error {
	return db.RemoveAll(ctx, Collection, bson.M{BootcampKey: bootcampID})
}

func insert(ctx context.Context, c *Course) error {
	return db.Insert(ctx, Collection, c)
}
