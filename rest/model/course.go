package model

import (
	"github.com/campdirector/campdirector/model/course"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"go.mongodb.org/mongo-driver/bson"
)

// APICourse is the request body for course creates and updates.
type APICourse struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tuition     *float64 `json:"tuition"`
}

// ToService builds the service-layer document for a create under the
// given bootcamp.
func (a *APICourse) ToService(bootcampID string) *course.Course {
	return &course.Course{
		Title:       utility.FromStringPtr(a.Title),
		Description: utility.FromStringPtr(a.Description),
		Tuition:     a.Tuition,
		Bootcamp:    bootcampID,
	}
}

// ToUpdate builds the store-level patch for an update, containing
// only the fields the caller provided. The bootcamp reference is
// immutable.
func (a *APICourse) ToUpdate() bson.M {
	set := bson.M{}

	if a.Title != nil {
		set[course.TitleKey] = *a.Title
	}
	if a.Description != nil {
		set[course.DescriptionKey] = *a.Description
	}
	if a.Tuition != nil {
		set[course.TuitionKey] = *a.Tuition
	}

	return bson.M{"$set": set}
}

// Validate checks the constraints on whichever fields the request
// provided.
func (a *APICourse) Validate() error {
	catcher := grip.NewBasicCatcher()

	if a.Title != nil && *a.Title == "" {
		catcher.New("title must not be empty")
	}

	return catcher.Resolve()
}
