package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/campdirector/campdirector"
	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DBUser is a platform user. Password and session management live
// outside this service; callers authenticate with the user's API
// key. DBUser satisfies gimlet.User so it can ride on the request
// context.
type DBUser struct {
	Id           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	EmailAddress string    `bson:"email" json:"email"`
	Role         string    `bson:"role" json:"role"`
	APIKey       string    `bson:"apikey" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

func (u *DBUser) Username() string        { return u.Id }
func (u *DBUser) Email() string           { return u.EmailAddress }
func (u *DBUser) GetAPIKey() string       { return u.APIKey }
func (u *DBUser) GetAccessToken() string  { return "" }
func (u *DBUser) GetRefreshToken() string { return "" }
func (u *DBUser) IsNil() bool             { return u == nil }

func (u *DBUser) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Id
}

func (u *DBUser) Roles() []string {
	if u.Role == "" {
		return []string{}
	}
	return []string{u.Role}
}

// HasPermission implements gimlet.User; the platform's permission
// model is the single role field.
func (u *DBUser) HasPermission(_ gimlet.PermissionOpts) bool {
	return u.IsAdmin()
}

// IsAdmin reports whether the user holds the admin role.
func (u *DBUser) IsAdmin() bool {
	return u.Role == campdirector.RoleAdmin
}

// Validate checks the document's schema-level constraints before a
// write.
func (u *DBUser) Validate() error {
	catcher := grip.NewBasicCatcher()

	if u.Name == "" {
		catcher.New("name must not be empty")
	}
	if u.EmailAddress == "" {
		catcher.New("email must not be empty")
	}
	if !campdirector.IsValidUserRole(u.Role) {
		catcher.Errorf("invalid role '%s'", u.Role)
	}

	return catcher.Resolve()
}

// Insert writes the user to the database, minting an id, an API key,
// and a creation time when unset. New users default to the plain
// user role.
func (u *DBUser) Insert(ctx context.Context) error {
	if u.Id == "" {
		u.Id = primitive.NewObjectID().Hex()
	}
	if u.Role == "" {
		u.Role = campdirector.RoleUser
	}
	if u.APIKey == "" {
		key, err := generateAPIKey()
		if err != nil {
			return errors.Wrap(err, "generating API key")
		}
		u.APIKey = key
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	if err := u.Validate(); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(insert(ctx, u))
}

func generateAPIKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", errors.WithStack(err)
	}
	return hex.EncodeToString(b), nil
}
