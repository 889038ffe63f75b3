package route

import (
	"context"
	"net/http"

	"github.com/campdirector/campdirector/db"
	"github.com/campdirector/campdirector/model/bootcamp"
	"github.com/campdirector/campdirector/model/review"
	"github.com/campdirector/campdirector/rest/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// refreshAverageRating recomputes a bootcamp's average rating after a
// review changes. Failures do not fail the request; the periodic
// reconciliation job repairs any drift.
func refreshAverageRating(ctx context.Context, bootcampID string) {
	grip.Error(message.WrapError(review.UpdateAverageRating(ctx, bootcampID), message.Fields{
		"message":  "could not update average rating",
		"bootcamp": bootcampID,
	}))
}

////////////////////////////////////////////////////////////////////////
//
// GET /reviews
// GET /bootcamps/{bootcamp_id}/reviews

func makeFetchReviews() gimlet.RouteHandler {
	return &reviewsGetHandler{}
}

type reviewsGetHandler struct {
	bootcampID string
	opts       db.AdvancedOptions
}

func (h *reviewsGetHandler) Factory() gimlet.RouteHandler {
	return &reviewsGetHandler{}
}

func (h *reviewsGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]
	h.opts = db.ParseAdvanced(r.URL.Query())

	return nil
}

func (h *reviewsGetHandler) Run(ctx context.Context) gimlet.Responder {
	if h.bootcampID != "" {
		reviews, err := review.Find(ctx, review.ByBootcamp(h.bootcampID))
		if err != nil {
			return makeInternalErrorResponder(errors.Wrapf(err, "finding reviews for bootcamp '%s'", h.bootcampID))
		}
		return gimlet.NewJSONResponse(model.NewListEnvelope(reviews, len(reviews)))
	}

	reviews, err := review.Find(ctx, h.opts.Query())
	if err != nil {
		return makeInternalErrorResponder(errors.Wrap(err, "finding reviews"))
	}

	total, err := review.Count(ctx, db.Query(h.opts.Filter))
	if err != nil {
		return makeInternalErrorResponder(errors.Wrap(err, "counting reviews"))
	}

	return gimlet.NewJSONResponse(model.NewPagedEnvelope(reviews, len(reviews), h.opts.Pagination(total)))
}

////////////////////////////////////////////////////////////////////////
//
// GET /reviews/{review_id}

func makeGetReviewByID() gimlet.RouteHandler {
	return &reviewGetHandler{}
}

type reviewGetHandler struct {
	reviewID string
}

func (h *reviewGetHandler) Factory() gimlet.RouteHandler {
	return &reviewGetHandler{}
}

func (h *reviewGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.reviewID = gimlet.GetVars(r)["review_id"]

	return nil
}

func (h *reviewGetHandler) Run(ctx context.Context) gimlet.Responder {
	found, err := review.FindOneId(ctx, h.reviewID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding review '%s'", h.reviewID))
	}
	if found == nil {
		return makeNotFoundResponder("review", h.reviewID)
	}

	return gimlet.NewJSONResponse(model.NewDataEnvelope(found))
}

////////////////////////////////////////////////////////////////////////
//
// POST /bootcamps/{bootcamp_id}/reviews

func makeAddReview() gimlet.RouteHandler {
	return &reviewPostHandler{}
}

type reviewPostHandler struct {
	bootcampID string
	body       model.APIReview
}

func (h *reviewPostHandler) Factory() gimlet.RouteHandler {
	return &reviewPostHandler{}
}

func (h *reviewPostHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]

	body := utility.NewRequestReader(r)
	defer body.Close()

	if err := utility.ReadJSON(body, &h.body); err != nil {
		return errors.Wrap(err, "reading review from JSON request body")
	}

	return h.body.Validate()
}

func (h *reviewPostHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	parent, err := bootcamp.FindOneId(ctx, h.bootcampID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding bootcamp '%s'", h.bootcampID))
	}
	if parent == nil {
		return makeNotFoundResponder("bootcamp", h.bootcampID)
	}

	rev := h.body.ToService(h.bootcampID, usr.Id)
	if err := rev.Insert(ctx); err != nil {
		if db.IsDuplicateKey(err) {
			return makeErrorResponder(http.StatusBadRequest, "user has already reviewed this bootcamp")
		}
		return makeValidationErrorResponder(err)
	}

	refreshAverageRating(ctx, h.bootcampID)

	return makeCreatedResponder(rev)
}

////////////////////////////////////////////////////////////////////////
//
// PUT /reviews/{review_id}

func makeUpdateReview() gimlet.RouteHandler {
	return &reviewPutHandler{}
}

type reviewPutHandler struct {
	reviewID string
	body     model.APIReview
}

func (h *reviewPutHandler) Factory() gimlet.RouteHandler {
	return &reviewPutHandler{}
}

func (h *reviewPutHandler) Parse(ctx context.Context, r *http.Request) error {
	h.reviewID = gimlet.GetVars(r)["review_id"]

	body := utility.NewRequestReader(r)
	defer body.Close()

	if err := utility.ReadJSON(body, &h.body); err != nil {
		return errors.Wrap(err, "reading review from JSON request body")
	}

	return h.body.Validate()
}

func (h *reviewPutHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	found, err := review.FindOneId(ctx, h.reviewID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding review '%s'", h.reviewID))
	}
	if found == nil {
		return makeNotFoundResponder("review", h.reviewID)
	}
	if !canModifyReview(usr, found) {
		return makeUnauthorizedResponder("not authorized to update this review")
	}

	if resp := applyUpdate(ctx, h.body.ToUpdate(), review.Collection, h.reviewID); resp != nil {
		return resp
	}

	refreshAverageRating(ctx, found.Bootcamp)

	updated, err := review.FindOneId(ctx, h.reviewID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding updated review '%s'", h.reviewID))
	}

	return gimlet.NewJSONResponse(model.NewDataEnvelope(updated))
}

////////////////////////////////////////////////////////////////////////
//
// DELETE /reviews/{review_id}

func makeDeleteReview() gimlet.RouteHandler {
	return &reviewDeleteHandler{}
}

type reviewDeleteHandler struct {
	reviewID string
}

func (h *reviewDeleteHandler) Factory() gimlet.RouteHandler {
	return &reviewDeleteHandler{}
}

func (h *reviewDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.reviewID = gimlet.GetVars(r)["review_id"]

	return nil
}

func (h *reviewDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	found, err := review.FindOneId(ctx, h.reviewID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding review '%s'", h.reviewID))
	}
	if found == nil {
		return makeNotFoundResponder("review", h.reviewID)
	}
	if !canModifyReview(usr, found) {
		return makeUnauthorizedResponder("not authorized to delete this review")
	}

	if err = review.RemoveOne(ctx, h.reviewID); err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "deleting review '%s'", h.reviewID))
	}

	refreshAverageRating(ctx, found.Bootcamp)

	return gimlet.NewJSONResponse(model.NewDeleteEnvelope())
}
