package model

import (
	"github.com/campdirector/campdirector"
	"github.com/campdirector/campdirector/model/review"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"go.mongodb.org/mongo-driver/bson"
)

// APIReview is the request body for review creates and updates.
type APIReview struct {
	Title  *string  `json:"title"`
	Text   *string  `json:"text"`
	Rating *float64 `json:"rating"`
}

// ToService builds the service-layer document for a create, binding
// the review to the bootcamp being reviewed and the authenticated
// author.
func (a *APIReview) ToService(bootcampID, userID string) *review.Review {
	return &review.Review{
		Title:    utility.FromStringPtr(a.Title),
		Text:     utility.FromStringPtr(a.Text),
		Rating:   utility.FromFloat64Ptr(a.Rating),
		Bootcamp: bootcampID,
		User:     userID,
	}
}

// ToUpdate builds the store-level patch for an update, containing
// only the fields the caller provided. The bootcamp and user
// references are immutable.
func (a *APIReview) ToUpdate() bson.M {
	set := bson.M{}

	if a.Title != nil {
		set[review.TitleKey] = *a.Title
	}
	if a.Text != nil {
		set[review.TextKey] = *a.Text
	}
	if a.Rating != nil {
		set[review.RatingKey] = *a.Rating
	}

	return bson.M{"$set": set}
}

// Validate checks the constraints on whichever fields the request
// provided.
func (a *APIReview) Validate() error {
	catcher := grip.NewBasicCatcher()

	if a.Title != nil && *a.Title == "" {
		catcher.New("title must not be empty")
	}
	if a.Text != nil && *a.Text == "" {
		catcher.New("text must not be empty")
	}
	if a.Rating != nil && (*a.Rating < campdirector.RatingMin || *a.Rating > campdirector.RatingMax) {
		catcher.Errorf("rating must be between %d and %d", campdirector.RatingMin, campdirector.RatingMax)
	}

	return catcher.Resolve()
}
