package route

import (
	"context"
	"net/http"

	"github.com/campdirector/campdirector/db"
	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// applyUpdate writes a request-body patch to the document with the
// given id, returning a responder only on failure. A patch with no
// provided fields is a no-op rather than an error.
func applyUpdate(ctx context.Context, update bson.M, collection, id string) gimlet.Responder {
	if set, ok := update["$set"].(bson.M); ok && len(set) == 0 {
		return nil
	}

	if err := db.UpdateIdContext(ctx, collection, id, update); err != nil {
		if db.ResultsNotFound(err) {
			return makeNotFoundResponder("document", id)
		}
		if db.IsDuplicateKey(err) {
			return makeErrorResponder(http.StatusBadRequest, "duplicate value for a unique field")
		}
		return makeInternalErrorResponder(errors.Wrapf(err, "updating document '%s'", id))
	}

	return nil
}
