package service

import (
	"crypto/subtle"
	"net/http"

	"github.com/campdirector/campdirector"
	"github.com/campdirector/campdirector/model/user"
	"github.com/campdirector/campdirector/rest/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

// UserMiddleware checks for API credentials on the request, then looks
// up and attaches a user when they are valid. Requests without
// credentials continue anonymously; routes that require a user reject
// them later.
func UserMiddleware() func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	return func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		userID := r.Header.Get(campdirector.APIUserHeader)
		apiKey := r.Header.Get(campdirector.APIKeyHeader)
		if userID == "" || apiKey == "" {
			next(rw, r)
			return
		}

		usr, err := user.FindOneId(r.Context(), userID)
		if err != nil {
			grip.Error(message.WrapError(err, message.Fields{
				"message": "finding user for request",
				"user":    userID,
				"path":    r.URL.Path,
			}))
			gimlet.WriteJSONInternalError(rw, model.NewErrorEnvelope("could not authenticate request"))
			return
		}
		if usr == nil || subtle.ConstantTimeCompare([]byte(usr.APIKey), []byte(apiKey)) != 1 {
			gimlet.WriteJSONResponse(rw, http.StatusUnauthorized, model.NewErrorEnvelope("invalid API credentials"))
			return
		}

		r = r.WithContext(gimlet.AttachUser(r.Context(), usr))
		next(rw, r)
	}
}
