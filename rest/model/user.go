package model

import (
	"github.com/campdirector/campdirector"
	"github.com/campdirector/campdirector/model/user"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"go.mongodb.org/mongo-driver/bson"
)

// APIUser is the request body for the admin-only user management
// routes. API keys are minted server-side and never accepted from a
// request.
type APIUser struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// ToService builds the service-layer document for a create.
func (a *APIUser) ToService() *user.DBUser {
	return &user.DBUser{
		Name:         utility.FromStringPtr(a.Name),
		EmailAddress: utility.FromStringPtr(a.Email),
		Role:         utility.FromStringPtr(a.Role),
	}
}

// ToUpdate builds the store-level patch for an update, containing
// only the fields the caller provided.
func (a *APIUser) ToUpdate() bson.M {
	set := bson.M{}

	if a.Name != nil {
		set[user.NameKey] = *a.Name
	}
	if a.Email != nil {
		set[user.EmailKey] = *a.Email
	}
	if a.Role != nil {
		set[user.RoleKey] = *a.Role
	}

	return bson.M{"$set": set}
}

// Validate checks the constraints on whichever fields the request
// provided.
func (a *APIUser) Validate() error {
	catcher := grip.NewBasicCatcher()

	if a.Name != nil && *a.Name == "" {
		catcher.New("name must not be empty")
	}
	if a.Email != nil && *a.Email == "" {
		catcher.New("email must not be empty")
	}
	if a.Role != nil && !campdirector.IsValidUserRole(*a.Role) {
		catcher.Errorf("invalid role '%s'", *a.Role)
	}

	return catcher.Resolve()
}
