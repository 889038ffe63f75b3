package course

import (
	"context"
	"time"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a single course offered by a bootcamp. Courses are owned
// by the bootcamp they reference; authorization for course mutations
// is resolved against the bootcamp's owner.
type Course struct {
	Id          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Tuition     *float64  `bson:"tuition,omitempty" json:"tuition,omitempty"`
	Bootcamp    string    `bson:"bootcamp" json:"bootcamp"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Validate checks the document's schema-level constraints before a
// write.
func (c *Course) Validate() error {
	catcher := grip.NewBasicCatcher()

	if c.Title == "" {
		catcher.New("title must not be empty")
	}
	if c.Bootcamp == "" {
		catcher.New("course must reference a bootcamp")
	}

	return catcher.Resolve()
}

// Insert writes the course to the database, minting an id and
// stamping the creation time when unset.
func (c *Course) Insert(ctx context.Context) error {
	if c.Id == "" {
		c.Id = primitive.NewObjectID().Hex()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	if err := c.Validate(); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(insert(ctx, c))
}
