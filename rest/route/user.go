package route

import (
	"context"
	"net/http"

	"github.com/campdirector/campdirector/db"
	"github.com/campdirector/campdirector/model/user"
	"github.com/campdirector/campdirector/rest/model"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

////////////////////////////////////////////////////////////////////////
//
// GET /users

func makeFetchUsers() gimlet.RouteHandler {
	return &usersGetHandler{}
}

type usersGetHandler struct {
	opts db.AdvancedOptions
}

func (h *usersGetHandler) Factory() gimlet.RouteHandler {
	return &usersGetHandler{}
}

func (h *usersGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.opts = db.ParseAdvanced(r.URL.Query())

	return nil
}

func (h *usersGetHandler) Run(ctx context.Context) gimlet.Responder {
	users, err := user.Find(ctx, h.opts.Query())
	if err != nil {
		return makeInternalErrorResponder(errors.Wrap(err, "finding users"))
	}

	total, err := user.Count(ctx, db.Query(h.opts.Filter))
	if err != nil {
		return makeInternalErrorResponder(errors.Wrap(err, "counting users"))
	}

	return gimlet.NewJSONResponse(model.NewPagedEnvelope(users, len(users), h.opts.Pagination(total)))
}

////////////////////////////////////////////////////////////////////////
//
// GET /users/{user_id}

func makeGetUserByID() gimlet.RouteHandler {
	return &userGetHandler{}
}

type userGetHandler struct {
	userID string
}

func (h *userGetHandler) Factory() gimlet.RouteHandler {
	return &userGetHandler{}
}

func (h *userGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.userID = gimlet.GetVars(r)["user_id"]

	return nil
}

func (h *userGetHandler) Run(ctx context.Context) gimlet.Responder {
	found, err := user.FindOneId(ctx, h.userID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding user '%s'", h.userID))
	}
	if found == nil {
		return makeNotFoundResponder("user", h.userID)
	}

	return gimlet.NewJSONResponse(model.NewDataEnvelope(found))
}

////////////////////////////////////////////////////////////////////////
//
// POST /users

func makeAddUser() gimlet.RouteHandler {
	return &userPostHandler{}
}

type userPostHandler struct {
	body model.APIUser
}

func (h *userPostHandler) Factory() gimlet.RouteHandler {
	return &userPostHandler{}
}

func (h *userPostHandler) Parse(ctx context.Context, r *http.Request) error {
	body := utility.NewRequestReader(r)
	defer body.Close()

	if err := utility.ReadJSON(body, &h.body); err != nil {
		return errors.Wrap(err, "reading user from JSON request body")
	}

	return h.body.Validate()
}

func (h *userPostHandler) Run(ctx context.Context) gimlet.Responder {
	u := h.body.ToService()
	if err := u.Insert(ctx); err != nil {
		if db.IsDuplicateKey(err) {
			return makeErrorResponder(http.StatusBadRequest, "a user with that email address already exists")
		}
		return makeValidationErrorResponder(err)
	}

	return makeCreatedResponder(u)
}

////////////////////////////////////////////////////////////////////////
//
// PUT /users/{user_id}

func makeUpdateUser() gimlet.RouteHandler {
	return &userPutHandler{}
}

type userPutHandler struct {
	userID string
	body   model.APIUser
}

func (h *userPutHandler) Factory() gimlet.RouteHandler {
	return &userPutHandler{}
}

func (h *userPutHandler) Parse(ctx context.Context, r *http.Request) error {
	h.userID = gimlet.GetVars(r)["user_id"]

	body := utility.NewRequestReader(r)
	defer body.Close()

	if err := utility.ReadJSON(body, &h.body); err != nil {
		return errors.Wrap(err, "reading user from JSON request body")
	}

	return h.body.Validate()
}

func (h *userPutHandler) Run(ctx context.Context) gimlet.Responder {
	found, err := user.FindOneId(ctx, h.userID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding user '%s'", h.userID))
	}
	if found == nil {
		return makeNotFoundResponder("user", h.userID)
	}

	if resp := applyUpdate(ctx, h.body.ToUpdate(), user.Collection, h.userID); resp != nil {
		return resp
	}

	updated, err := user.FindOneId(ctx, h.userID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding updated user '%s'", h.userID))
	}

	return gimlet.NewJSONResponse(model.NewDataEnvelope(updated))
}

////////////////////////////////////////////////////////////////////////
//
// DELETE /users/{user_id}

func makeDeleteUser() gimlet.RouteHandler {
	return &userDeleteHandler{}
}

type userDeleteHandler struct {
	userID string
}

func (h *userDeleteHandler) Factory() gimlet.RouteHandler {
	return &userDeleteHandler{}
}

func (h *userDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.userID = gimlet.GetVars(r)["user_id"]

	return nil
}

func (h *userDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	found, err := user.FindOneId(ctx, h.userID)
	if err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "finding user '%s'", h.userID))
	}
	if found == nil {
		return makeNotFoundResponder("user", h.userID)
	}

	if err = user.RemoveOne(ctx, h.userID); err != nil {
		return makeInternalErrorResponder(errors.Wrapf(err, "deleting user '%s'", h.userID))
	}

	return gimlet.NewJSONResponse(model.NewDeleteEnvelope())
}
