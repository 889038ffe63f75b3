package route

import (
	"context"
	"net/http"

	"github.com/campdirector/campdirector/db"
	"github.com/campdirector/campdirector/model/bootcamp"
	"github.com/campdirector/campdirector/model/course"
	"github.com/campdirector/campdirector/model/review"
	"github.com/campdirector/campdirector/rest/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

////////////////////////////////////////////////////////////////////////
//
// GET /bootcamps

func makeFetchBootcamps() gimlet.RouteHandler {
	return &bootcampsGetHandler{}
}

type bootcampsGetHandler struct {
	opts db.AdvancedOptions
}

func (h *bootcampsGetHandler) Factory() gimlet.RouteHandler {
	return &bootcampsGetHandler{}
}

func (h *bootcampsGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.opts = db.ParseAdvanced(r.URL.Query())

	return nil
}

func (h *bootcampsGetHandler) Run(ctx context.Context) gimlet.Responder {
	bootcamps, err := bootcamp.Find(ctx, h.opts.Query())
	if err != nil {
		return makeInternalErrorResponder(errors.Wrap(err, "finding bootcamps"))
	}

	total, err := bootcamp.Count(ctx, db.Query(h.opts.Filter))
	if err != nil {
		return makeInternalErrorResponder(errors.Wrap(err, "counting bootcamps"))
	}

	return gimlet.NewJSONResponse(model.NewPagedEnvelope(bootcamps, len(bootcamps), h.opts.Pagination(total)))
}

////////////////////////////////////////////////////////////////////////
//
// GET /bootcamps/{bootcamp_id}

func makeGetBootcampByID() gimlet.RouteHandler {
	return &bootcampGetHandler{}
}

type bootcampGetHandler struct {
	bootcampID string
}

func (h *bootcampGetHandler) Factory() gimlet.RouteHandler {
	return &bootcampGetHandler{}
}

func (h *bootcampGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]

	return nil
}

func (h *bootcampGetHandler) Run(ctx context.Context) gimlet.Responder {
	found, err := bootcamp.FindOneId(ctx, h.bootcampID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding bootcamp '%s'", h.bootcampID))
	}
	if found == nil {
		return makeNotFoundResponder("bootcamp", h.bootcampID)
	}

	return gimlet.NewJSONResponse(model.NewDataEnvelope(found))
}

////////////////////////////////////////////////////////////////////////
//
// POST /bootcamps

func makeCreateBootcamp() gimlet.RouteHandler {
	return &bootcampPostHandler{}
}

type bootcampPostHandler struct {
	body model.APIBootcamp
}

func (h *bootcampPostHandler) Factory() gimlet.RouteHandler {
	return &bootcampPostHandler{}
}

func (h *bootcampPostHandler) Parse(ctx context.Context, r *http.Request) error {
	body := utility.NewRequestReader(r)
	defer body.Close()

	if err := utility.ReadJSON(body, &h.body); err != nil {
		return errors.Wrap(err, "reading bootcamp from JSON request body")
	}

	return h.body.Validate()
}

func (h *bootcampPostHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	// Plain users may publish at most one bootcamp.
	if !usr.IsAdmin() {
		owned, err := bootcamp.Count(ctx, bootcamp.ByUser(usr.Id))
		if err != nil {
			return makeInternalErrorResponder(errors.Wrapf(err, "counting bootcamps owned by user '%s'", usr.Id))
		}
		if owned > 0 {
			return makeErrorResponder(http.StatusBadRequest, "user has already published a bootcamp")
		}
	}

	b := h.body.ToService(usr.Id)
	if err := b.Insert(ctx); err != nil {
		return makeValidationErrorResponder(err)
	}

	return makeCreatedResponder(b)
}

////////////////////////////////////////////////////////////////////////
//
// PUT /bootcamps/{bootcamp_id}

func makeUpdateBootcamp() gimlet.RouteHandler {
	return &bootcampPutHandler{}
}

type bootcampPutHandler struct {
	bootcampID string
	body       model.APIBootcamp
}

func (h *bootcampPutHandler) Factory() gimlet.RouteHandler {
	return &bootcampPutHandler{}
}

func (h *bootcampPutHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]

	body := utility.NewRequestReader(r)
	defer body.Close()

	if err := utility.ReadJSON(body, &h.body); err != nil {
		return errors.Wrap(err, "reading bootcamp from JSON request body")
	}

	return h.body.Validate()
}

func (h *bootcampPutHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	found, err := bootcamp.FindOneId(ctx, h.bootcampID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding bootcamp '%s'", h.bootcampID))
	}
	if found == nil {
		return makeNotFoundResponder("bootcamp", h.bootcampID)
	}
	if !canModifyBootcamp(usr, found) {
		return makeUnauthorizedResponder("not authorized to update this bootcamp")
	}

	if resp := applyUpdate(ctx, h.body.ToUpdate(), bootcamp.Collection, h.bootcampID); resp != nil {
		return resp
	}

	updated, err := bootcamp.FindOneId(ctx, h.bootcampID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding updated bootcamp '%s'", h.bootcampID))
	}

	return gimlet.NewJSONResponse(model.NewDataEnvelope(updated))
}

////////////////////////////////////////////////////////////////////////
//
// DELETE /bootcamps/{bootcamp_id}

func makeDeleteBootcamp() gimlet.RouteHandler {
	return &bootcampDeleteHandler{}
}

type bootcampDeleteHandler struct {
	bootcampID string
}

func (h *bootcampDeleteHandler) Factory() gimlet.RouteHandler {
	return &bootcampDeleteHandler{}
}

func (h *bootcampDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]

	return nil
}

func (h *bootcampDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	found, err := bootcamp.FindOneId(ctx, h.bootcampID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding bootcamp '%s'", h.bootcampID))
	}
	if found == nil {
		return makeNotFoundResponder("bootcamp", h.bootcampID)
	}
	if !canModifyBootcamp(usr, found) {
		return makeUnauthorizedResponder("not authorized to delete this bootcamp")
	}

	// Courses and reviews are owned by the bootcamp they reference
	// and do not outlive it.
	if err = course.RemoveAllForBootcamp(ctx, h.bootcampID); err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "deleting courses for bootcamp '%s'", h.bootcampID))
	}
	if err = review.RemoveAllForBootcamp(ctx, h.bootcampID); err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "deleting reviews for bootcamp '%s'", h.bootcampID))
	}
	if err = bootcamp.RemoveOne(ctx, h.bootcampID); err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "deleting bootcamp '%s'", h.bootcampID))
	}

	return gimlet.NewJSONResponse(model.NewDeleteEnvelope())
}
