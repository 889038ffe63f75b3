package review

import (
	"context"
	"time"

	"github.com/campdirector/campdirector"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is one user's review of a bootcamp. A user may review a
// given bootcamp at most once, enforced by a unique compound index
// on (bootcamp, user).
type Review struct {
	Id        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Text      string    `bson:"text" json:"text"`
	Rating    float64   `bson:"rating" json:"rating"`
	Bootcamp  string    `bson:"bootcamp" json:"bootcamp"`
	User      string    `bson:"user" json:"user"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

const maxTitleLength = 100

// Validate checks the document's schema-level constraints before a
// write.
func (r *Review) Validate() error {
	catcher := grip.NewBasicCatcher()

	if r.Title == "" {
		catcher.New("title must not be empty")
	}
	if len(r.Title) > maxTitleLength {
		catcher.Errorf("title must be at most %d characters", maxTitleLength)
	}
	if r.Text == "" {
		catcher.New("text must not be empty")
	}
	if r.Rating < campdirector.RatingMin || r.Rating > campdirector.RatingMax {
		catcher.Errorf("rating must be between %d and %d", campdirector.RatingMin, campdirector.RatingMax)
	}
	if r.Bootcamp == "" {
		catcher.New("review must reference a bootcamp")
	}
	if r.User == "" {
		catcher.New("review must have an authoring user")
	}

	return catcher.Resolve()
}

// Insert writes the review to the database, minting an id and
// stamping the creation time when unset. Callers are responsible for
// recomputing the bootcamp's average rating afterwards.
func (r *Review) Insert(ctx context.Context) error {
	if r.Id == "" {
		r.Id = primitive.NewObjectID().Hex()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	if err := r.Validate(); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(insert(ctx, r))
}

// IsAuthoredBy reports whether the given user wrote this review.
func (r *Review) IsAuthoredBy(userID string) bool {
	return r.User == userID
}
