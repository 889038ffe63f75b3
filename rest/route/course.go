package route

import (
	"context"
	"net/http"

	"github.com/campdirector/campdirector/db"
	"github.com/campdirector/campdirector/model/bootcamp"
	"github.com/campdirector/campdirector/model/course"
	"github.com/campdirector/campdirector/rest/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

////////////////////////////////////////////////////////////////////////
//
// GET /courses
// GET /bootcamps/{bootcamp_id}/courses

func makeFetchCourses() gimlet.RouteHandler {
	return &coursesGetHandler{}
}

type coursesGetHandler struct {
	bootcampID string
	opts       db.AdvancedOptions
}

func (h *coursesGetHandler) Factory() gimlet.RouteHandler {
	return &coursesGetHandler{}
}

func (h *coursesGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]
	h.opts = db.ParseAdvanced(r.URL.Query())

	return nil
}

func (h *coursesGetHandler) Run(ctx context.Context) gimlet.Responder {
	// The nested route lists one bootcamp's courses without
	// pagination; the top-level route is a full advanced query.
	if h.bootcampID != "" {
		courses, err := course.Find(ctx, course.ByBootcamp(h.bootcampID))
		if err != nil {
			return makeInternalErrorResponder(errors.Wrapf(err, "finding courses for bootcamp '%s'", h.bootcampID))
		}
		return gimlet.NewJSONResponse(model.NewListEnvelope(courses, len(courses)))
	}

	courses, err := course.Find(ctx, h.opts.Query())
	if err != nil {
		return makeInternalErrorResponder(errors.Wrap(err, "finding courses"))
	}

	total, err := course.Count(ctx, db.Query(h.opts.Filter))
	if err != nil {
		return makeInternalErrorResponder(errors.Wrap(err, "counting courses"))
	}

	return gimlet.NewJSONResponse(model.NewPagedEnvelope(courses, len(courses), h.opts.Pagination(total)))
}

////////////////////////////////////////////////////////////////////////
//
// GET /courses/{course_id}

func makeGetCourseByID() gimlet.RouteHandler {
	return &courseGetHandler{}
}

type courseGetHandler struct {
	courseID string
}

func (h *courseGetHandler) Factory() gimlet.RouteHandler {
	return &courseGetHandler{}
}

func (h *courseGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.courseID = gimlet.GetVars(r)["course_id"]

	return nil
}

func (h *courseGetHandler) Run(ctx context.Context) gimlet.Responder {
	found, err := course.FindOneId(ctx, h.courseID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding course '%s'", h.courseID))
	}
	if found == nil {
		return makeNotFoundResponder("course", h.courseID)
	}

	return gimlet.NewJSONResponse(model.NewDataEnvelope(found))
}

////////////////////////////////////////////////////////////////////////
//
// POST /bootcamps/{bootcamp_id}/courses

func makeAddCourse() gimlet.RouteHandler {
	return &coursePostHandler{}
}

type coursePostHandler struct {
	bootcampID string
	body       model.APICourse
}

func (h *coursePostHandler) Factory() gimlet.RouteHandler {
	return &coursePostHandler{}
}

func (h *coursePostHandler) Parse(ctx context.Context, r *http.Request) error {
	h.bootcampID = gimlet.GetVars(r)["bootcamp_id"]

	body := utility.NewRequestReader(r)
	defer body.Close()

	if err := utility.ReadJSON(body, &h.body); err != nil {
		return errors.Wrap(err, "reading course from JSON request body")
	}

	return h.body.Validate()
}

func (h *coursePostHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	parent, err := bootcamp.FindOneId(ctx, h.bootcampID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding bootcamp '%s'", h.bootcampID))
	}
	if parent == nil {
		return makeNotFoundResponder("bootcamp", h.bootcampID)
	}
	if !canModifyBootcamp(usr, parent) {
		return makeUnauthorizedResponder("not authorized to add a course to this bootcamp")
	}

	c := h.body.ToService(h.bootcampID)
	if err := c.Insert(ctx); err != nil {
		return makeValidationErrorResponder(err)
	}

	return makeCreatedResponder(c)
}

////////////////////////////////////////////////////////////////////////
//
// PUT /courses/{course_id}

func makeUpdateCourse() gimlet.RouteHandler {
	return &coursePutHandler{}
}

type coursePutHandler struct {
	courseID string
	body     model.APICourse
}

func (h *coursePutHandler) Factory() gimlet.RouteHandler {
	return &coursePutHandler{}
}

func (h *coursePutHandler) Parse(ctx context.Context, r *http.Request) error {
	h.courseID = gimlet.GetVars(r)["course_id"]

	body := utility.NewRequestReader(r)
	defer body.Close()

	if err := utility.ReadJSON(body, &h.body); err != nil {
		return errors.Wrap(err, "reading course from JSON request body")
	}

	return h.body.Validate()
}

func (h *coursePutHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	found, err := course.FindOneId(ctx, h.courseID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding course '%s'", h.courseID))
	}
	if found == nil {
		return makeNotFoundResponder("course", h.courseID)
	}

	parent, err := bootcamp.FindOneId(ctx, found.Bootcamp)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding bootcamp '%s'", found.Bootcamp))
	}
	if !canModifyBootcamp(usr, parent) {
		return makeUnauthorizedResponder("not authorized to update this course")
	}

	if resp := applyUpdate(ctx, h.body.ToUpdate(), course.Collection, h.courseID); resp != nil {
		return resp
	}

	updated, err := course.FindOneId(ctx, h.courseID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding updated course '%s'", h.courseID))
	}

	return gimlet.NewJSONResponse(model.NewDataEnvelope(updated))
}

////////////////////////////////////////////////////////////////////////
//
// DELETE /courses/{course_id}

func makeDeleteCourse() gimlet.RouteHandler {
	return &courseDeleteHandler{}
}

type courseDeleteHandler struct {
	courseID string
}

func (h *courseDeleteHandler) Factory() gimlet.RouteHandler {
	return &courseDeleteHandler{}
}

func (h *courseDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.courseID = gimlet.GetVars(r)["course_id"]

	return nil
}

func (h *courseDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	usr := MustHaveUser(ctx)

	found, err := course.FindOneId(ctx, h.courseID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding course '%s'", h.courseID))
	}
	if found == nil {
		return makeNotFoundResponder("course", h.courseID)
	}

	parent, err := bootcamp.FindOneId(ctx, found.Bootcamp)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding bootcamp '%s'", found.Bootcamp))
	}
	if !canModifyBootcamp(usr, parent) {
		return makeUnauthorizedResponder("not authorized to delete this course")
	}

	if err = course.RemoveOne(ctx, h.courseID); err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "deleting course '%s'", h.courseID))
	}

	return gimlet.NewJSONResponse(model.NewDeleteEnvelope())
}
