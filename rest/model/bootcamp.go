package model

import (
	"github.com/campdirector/campdirector/model/bootcamp"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"go.mongodb.org/mongo-driver/bson"
)

// APIBootcamp is the request body for bootcamp creates and updates.
// Every field is optional in an update; only the provided fields are
// written. The owning user and the derived average rating are never
// settable through the API.
type APIBootcamp struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Website     *string      `json:"website"`
	Careers     []string     `json:"careers"`
	Housing     *bool        `json:"housing"`
	AverageCost *float64     `json:"averageCost"`
	Location    *APIGeoPoint `json:"location"`
}

type APIGeoPoint struct {
	Type        *string   `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// ToService builds the service-layer document for a create.
func (a *APIBootcamp) ToService(ownerID string) *bootcamp.Bootcamp {
	b := &bootcamp.Bootcamp{
		Name:        utility.FromStringPtr(a.Name),
		Description: utility.FromStringPtr(a.Description),
		Website:     utility.FromStringPtr(a.Website),
		Careers:     a.Careers,
		Housing:     utility.FromBoolPtr(a.Housing),
		AverageCost: a.AverageCost,
		User:        ownerID,
	}
	if a.Location != nil {
		b.Location = &bootcamp.GeoPoint{
			Type:        utility.FromStringPtr(a.Location.Type),
			Coordinates: a.Location.Coordinates,
		}
	}
	return b
}

// ToUpdate builds the store-level patch for an update, containing
// only the fields the caller provided.
func (a *APIBootcamp) ToUpdate() bson.M {
	set := bson.M{}

	if a.Name != nil {
		set[bootcamp.NameKey] = *a.Name
	}
	if a.Description != nil {
		set[bootcamp.DescriptionKey] = *a.Description
	}
	if a.Website != nil {
		set[bootcamp.WebsiteKey] = *a.Website
	}
	if a.Careers != nil {
		set[bootcamp.CareersKey] = a.Careers
	}
	if a.Housing != nil {
		set[bootcamp.HousingKey] = *a.Housing
	}
	if a.AverageCost != nil {
		set[bootcamp.AverageCostKey] = *a.AverageCost
	}
	if a.Location != nil {
		set[bootcamp.LocationKey] = bootcamp.GeoPoint{
			Type:        utility.FromStringPtr(a.Location.Type),
			Coordinates: a.Location.Coordinates,
		}
	}

	return bson.M{"$set": set}
}

// Validate checks the constraints on whichever fields the request
// provided.
func (a *APIBootcamp) Validate() error {
	catcher := grip.NewBasicCatcher()

	if a.Name != nil && *a.Name == "" {
		catcher.New("name must not be empty")
	}
	if a.Description != nil && *a.Description == "" {
		catcher.New("description must not be empty")
	}
	if a.Location != nil && len(a.Location.Coordinates) != 2 {
		catcher.New("location must have exactly two coordinates")
	}

	return catcher.Resolve()
}
