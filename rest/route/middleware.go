package route

import (
	"context"
	"net/http"

	"github.com/campdirector/campdirector/model/bootcamp"
	"github.com/campdirector/campdirector/model/review"
	"github.com/campdirector/campdirector/model/user"
	"github.com/campdirector/campdirector/rest/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// MustHaveUser returns the user attached to the request. The auth
// middleware guarantees a user is present on every route wrapped
// with the authentication handler, so a missing user here is a
// programmer error.
func MustHaveUser(ctx context.Context) *user.DBUser {
	u := gimlet.GetUser(ctx)
	if u == nil {
		grip.EmergencyPanic(message.Fields{
			"message": "no user attached to request expecting user",
		})
	}
	usr, ok := u.(*user.DBUser)
	if !ok {
		grip.EmergencyPanic(message.Fields{
			"message": "user attached to request was not a DB user",
		})
	}
	return usr
}

// canModifyBootcamp implements the ownership policy for bootcamps
// and their courses: the bootcamp's creator or an admin.
func canModifyBootcamp(usr *user.DBUser, b *bootcamp.Bootcamp) bool {
	if usr.IsAdmin() {
		return true
	}
	return b != nil && b.IsOwnedBy(usr.Id)
}

// canModifyReview implements the ownership policy for reviews: the
// review's author or an admin.
func canModifyReview(usr *user.DBUser, r *review.Review) bool {
	return usr.IsAdmin() || r.IsAuthoredBy(usr.Id)
}

type requireAdminMiddleware struct{}

// NewRequireAdmin produces middleware that rejects any request whose
// user does not hold the admin role.
func NewRequireAdmin() gimlet.Middleware {
	return &requireAdminMiddleware{}
}

func (m *requireAdminMiddleware) ServeHTTP(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	usr, ok := gimlet.GetUser(r.Context()).(*user.DBUser)
	if !ok || !usr.IsAdmin() {
		gimlet.WriteJSONResponse(rw, http.StatusUnauthorized, model.NewErrorEnvelope("admin role required"))
		return
	}

	next(rw, r)
}
