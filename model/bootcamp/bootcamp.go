package bootcamp

import (
	"context"
	"time"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bootcamp represents one bootcamp in the directory. The
// AverageRating field is derived from the bootcamp's reviews and is
// absent until the first review lands; it is recomputed by the
// review write paths and must never be written by API callers.
type Bootcamp struct {
	Id            string    `bson:"_id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Description   string    `bson:"description" json:"description"`
	Website       string    `bson:"website,omitempty" json:"website,omitempty"`
	Careers       []string  `bson:"careers,omitempty" json:"careers,omitempty"`
	Housing       bool      `bson:"housing" json:"housing"`
	Location      *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
	AverageCost   *float64  `bson:"averageCost,omitempty" json:"averageCost,omitempty"`
	AverageRating *float64  `bson:"averageRating,omitempty" json:"averageRating,omitempty"`
	User          string    `bson:"user" json:"user"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// GeoPoint is a GeoJSON point; coordinates are ordered
// [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

const maxNameLength = 50

// Validate checks the document's schema-level constraints before a
// write.
func (b *Bootcamp) Validate() error {
	catcher := grip.NewBasicCatcher()

	if b.Name == "" {
		catcher.New("name must not be empty")
	}
	if len(b.Name) > maxNameLength {
		catcher.Errorf("name must be at most %d characters", maxNameLength)
	}
	if b.Description == "" {
		catcher.New("description must not be empty")
	}
	if b.User == "" {
		catcher.New("bootcamp must have an owning user")
	}
	if b.Location != nil && len(b.Location.Coordinates) != 2 {
		catcher.New("location must have exactly two coordinates")
	}

	return catcher.Resolve()
}

// Insert writes the bootcamp to the database, minting an id and
// stamping the creation time when unset.
func (b *Bootcamp) Insert(ctx context.Context) error {
	if b.Id == "" {
		b.Id = primitive.NewObjectID().Hex()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	if err := b.Validate(); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(insert(ctx, b))
}

// IsOwnedBy reports whether the given user created this bootcamp.
func (b *Bootcamp) IsOwnedBy(userID string) bool {
	return b.User == userID
}
