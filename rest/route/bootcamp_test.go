package route

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campdirector/campdirector"
	"github.com/campdirector/campdirector/db"
	"github.com/campdirector/campdirector/model/bootcamp"
	"github.com/campdirector/campdirector/model/course"
	"github.com/campdirector/campdirector/model/review"
	"github.com/campdirector/campdirector/model/user"
	"github.com/campdirector/campdirector/rest/model"
	"github.com/campdirector/campdirector/testutil"
	"github.com/evergreen-ci/gimlet"
	"github.com/stretchr/testify/suite"
)

type BootcampRouteSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc

	owner *user.DBUser
	admin *user.DBUser
	other *user.DBUser
	camp  bootcamp.Bootcamp
}

func TestBootcampRouteSuite(t *testing.T) {
	testutil.Setup()
	suite.Run(t, &BootcampRouteSuite{})
}

func (s *BootcampRouteSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.Require().NoError(db.ClearCollections(s.ctx,
		bootcamp.Collection, course.Collection, review.Collection, user.Collection))

	s.owner = &user.DBUser{Id: "owner", Name: "Owner", EmailAddress: "owner@example.com"}
	s.admin = &user.DBUser{Id: "admin", Name: "Admin", EmailAddress: "admin@example.com", Role: campdirector.RoleAdmin}
	s.other = &user.DBUser{Id: "other", Name: "Other", EmailAddress: "other@example.com"}
	for _, u := range []*user.DBUser{s.owner, s.admin, s.other} {
		s.Require().NoError(u.Insert(s.ctx))
	}

	s.camp = bootcamp.Bootcamp{
		Name:        "Devworks Bootcamp",
		Description: "Get a developer job in 12 weeks",
		User:        s.owner.Id,
	}
	s.Require().NoError(s.camp.Insert(s.ctx))
}

func (s *BootcampRouteSuite) TearDownTest() {
	s.cancel()
}

func (s *BootcampRouteSuite) userCtx(u *user.DBUser) context.Context {
	return gimlet.AttachUser(s.ctx, u)
}

func (s *BootcampRouteSuite) TestGetByIDFound() {
	h := makeGetBootcampByID().(*bootcampGetHandler)
	h.bootcampID = s.camp.Id

	resp := h.Run(s.ctx)
	s.Equal(http.StatusOK, resp.Status())

	envelope, ok := resp.Data().(*model.Envelope)
	s.Require().True(ok)
	s.True(envelope.Success)
	s.Equal(s.camp.Name, envelope.Data.(*bootcamp.Bootcamp).Name)
}

func (s *BootcampRouteSuite) TestGetByIDNotFound() {
	h := makeGetBootcampByID().(*bootcampGetHandler)
	h.bootcampID = "nonexistent"

	resp := h.Run(s.ctx)
	s.Equal(http.StatusNotFound, resp.Status())
}

func (s *BootcampRouteSuite) TestListBootcamps() {
	h := makeFetchBootcamps().(*bootcampsGetHandler)
	h.opts = db.ParseAdvanced(nil)

	resp := h.Run(s.ctx)
	s.Equal(http.StatusOK, resp.Status())

	envelope, ok := resp.Data().(*model.Envelope)
	s.Require().True(ok)
	s.Require().NotNil(envelope.Count)
	s.Equal(1, *envelope.Count)
}

func (s *BootcampRouteSuite) TestParseRejectsInvalidBody() {
	h := makeCreateBootcamp().(*bootcampPostHandler)
	body := bytes.NewBufferString(`{"name": ""}`)
	r := httptest.NewRequest(http.MethodPost, "/bootcamps", body)

	s.Error(h.Parse(s.ctx, r))
}

func (s *BootcampRouteSuite) TestCreateResponds201() {
	h := makeCreateBootcamp().(*bootcampPostHandler)
	body := bytes.NewBufferString(`{"name": "ModernTech", "description": "d"}`)
	r := httptest.NewRequest(http.MethodPost, "/bootcamps", body)
	s.Require().NoError(h.Parse(s.ctx, r))

	resp := h.Run(s.userCtx(s.other))
	s.Equal(http.StatusCreated, resp.Status())
}

func (s *BootcampRouteSuite) TestCreateEnforcesOneBootcampPerUser() {
	h := makeCreateBootcamp().(*bootcampPostHandler)
	body := bytes.NewBufferString(`{"name": "Second Camp", "description": "d"}`)
	r := httptest.NewRequest(http.MethodPost, "/bootcamps", body)
	s.Require().NoError(h.Parse(s.ctx, r))

	resp := h.Run(s.userCtx(s.owner))
	s.Equal(http.StatusBadRequest, resp.Status())

	// admins are exempt
	h = makeCreateBootcamp().(*bootcampPostHandler)
	r = httptest.NewRequest(http.MethodPost, "/bootcamps", bytes.NewBufferString(`{"name": "Admin Camp", "description": "d"}`))
	s.Require().NoError(h.Parse(s.ctx, r))
	adminCamp := bootcamp.Bootcamp{Name: "Existing", Description: "d", User: s.admin.Id}
	s.Require().NoError(adminCamp.Insert(s.ctx))

	resp = h.Run(s.userCtx(s.admin))
	s.Equal(http.StatusCreated, resp.Status())
}

func (s *BootcampRouteSuite) TestUpdateOwnership() {
	name := "Devworks 2.0"
	h := makeUpdateBootcamp().(*bootcampPutHandler)
	h.bootcampID = s.camp.Id
	h.body = model.APIBootcamp{Name: &name}

	resp := h.Run(s.userCtx(s.other))
	s.Equal(http.StatusUnauthorized, resp.Status())

	resp = h.Run(s.userCtx(s.owner))
	s.Equal(http.StatusOK, resp.Status())

	updated, err := bootcamp.FindOneId(s.ctx, s.camp.Id)
	s.Require().NoError(err)
	s.Equal(name, updated.Name)
}

func (s *BootcampRouteSuite) TestUpdateAsAdmin() {
	name := "Renamed By Admin"
	h := makeUpdateBootcamp().(*bootcampPutHandler)
	h.bootcampID = s.camp.Id
	h.body = model.APIBootcamp{Name: &name}

	resp := h.Run(s.userCtx(s.admin))
	s.Equal(http.StatusOK, resp.Status())
}

func (s *BootcampRouteSuite) TestUpdateMissingBootcamp() {
	h := makeUpdateBootcamp().(*bootcampPutHandler)
	h.bootcampID = "nonexistent"

	resp := h.Run(s.userCtx(s.admin))
	s.Equal(http.StatusNotFound, resp.Status())
}

func (s *BootcampRouteSuite) TestDeleteCascades() {
	c := course.Course{Title: "Course", Description: "d", Bootcamp: s.camp.Id}
	s.Require().NoError(c.Insert(s.ctx))
	rev := review.Review{Title: "Review", Text: "t", Rating: 7, Bootcamp: s.camp.Id, User: s.other.Id}
	s.Require().NoError(rev.Insert(s.ctx))

	h := makeDeleteBootcamp().(*bootcampDeleteHandler)
	h.bootcampID = s.camp.Id

	resp := h.Run(s.userCtx(s.owner))
	s.Equal(http.StatusOK, resp.Status())

	removed, err := bootcamp.FindOneId(s.ctx, s.camp.Id)
	s.Require().NoError(err)
	s.Nil(removed)

	courses, err := course.Find(s.ctx, course.ByBootcamp(s.camp.Id))
	s.Require().NoError(err)
	s.Empty(courses)

	reviews, err := review.Find(s.ctx, review.ByBootcamp(s.camp.Id))
	s.Require().NoError(err)
	s.Empty(reviews)
}

func (s *BootcampRouteSuite) TestDeleteRequiresOwnership() {
	h := makeDeleteBootcamp().(*bootcampDeleteHandler)
	h.bootcampID = s.camp.Id

	resp := h.Run(s.userCtx(s.other))
	s.Equal(http.StatusUnauthorized, resp.Status())
}
