package route

import (
	"context"
	"net/http"
	"testing"

	"github.com/campdirector/campdirector"
	"github.com/campdirector/campdirector/db"
	"github.com/campdirector/campdirector/model/bootcamp"
	"github.com/campdirector/campdirector/model/course"
	"github.com/campdirector/campdirector/model/user"
	"github.com/campdirector/campdirector/rest/model"
	"github.com/campdirector/campdirector/testutil"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/suite"
)

type CourseRouteSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc

	owner  *user.DBUser
	admin  *user.DBUser
	other  *user.DBUser
	camp   bootcamp.Bootcamp
	course course.Course
}

func TestCourseRouteSuite(t *testing.T) {
	testutil.Setup()
	suite.Run(t, &CourseRouteSuite{})
}

func (s *CourseRouteSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.Require().NoError(db.ClearCollections(s.ctx,
		bootcamp.Collection, course.Collection, user.Collection))

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

	s.course = course.Course{
		Title:       "Full Stack Web Development",
		Description: "12 weeks of web fundamentals",
		Tuition:     utility.ToFloat64Ptr(10000),
		Bootcamp:    s.camp.Id,
	}
	s.Require().NoError(s.course.Insert(s.ctx))
}

func (s *CourseRouteSuite) TearDownTest() {
	s.cancel()
}

func (s *CourseRouteSuite) userCtx(u *user.DBUser) context.Context {
	return gimlet.AttachUser(s.ctx, u)
}

func (s *CourseRouteSuite) TestGetByIDFound() {
	h := makeGetCourseByID().(*courseGetHandler)
	h.courseID = s.course.Id

	resp := h.Run(s.ctx)
	s.Equal(http.StatusOK, resp.Status())

	envelope, ok := resp.Data().(*model.Envelope)
	s.Require().True(ok)
	s.True(envelope.Success)
	s.Equal(s.course.Title, envelope.Data.(*course.Course).Title)
}

func (s *CourseRouteSuite) TestGetByIDNotFound() {
	h := makeGetCourseByID().(*courseGetHandler)
	h.courseID = "nonexistent"

	resp := h.Run(s.ctx)
	s.Equal(http.StatusNotFound, resp.Status())
}

func (s *CourseRouteSuite) TestListForBootcamp() {
	h := makeFetchCourses().(*coursesGetHandler)
	h.bootcampID = s.camp.Id

	resp := h.Run(s.ctx)
	s.Equal(http.StatusOK, resp.Status())

	envelope, ok := resp.Data().(*model.Envelope)
	s.Require().True(ok)
	s.Require().NotNil(envelope.Count)
	s.Equal(1, *envelope.Count)
}

func (s *CourseRouteSuite) TestAddCourseRequiresBootcampOwnership() {
	h := makeAddCourse().(*coursePostHandler)
	h.bootcampID = s.camp.Id
	h.body = model.APICourse{Title: utility.ToStringPtr("Intro to UX")}

	resp := h.Run(s.userCtx(s.other))
	s.Equal(http.StatusUnauthorized, resp.Status())

	count, err := course.Count(s.ctx, db.Query(nil))
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *CourseRouteSuite) TestAddCourseAsOwnerAndAdmin() {
	h := makeAddCourse().(*coursePostHandler)
	h.bootcampID = s.camp.Id
	h.body = model.APICourse{Title: utility.ToStringPtr("Intro to UX")}

	resp := h.Run(s.userCtx(s.owner))
	s.Equal(http.StatusCreated, resp.Status())

	h = makeAddCourse().(*coursePostHandler)
	h.bootcampID = s.camp.Id
	h.body = model.APICourse{Title: utility.ToStringPtr("Data Science Basics")}

	resp = h.Run(s.userCtx(s.admin))
	s.Equal(http.StatusCreated, resp.Status())

	courses, err := course.Find(s.ctx, course.ByBootcamp(s.camp.Id))
	s.Require().NoError(err)
	s.Len(courses, 3)
}

func (s *CourseRouteSuite) TestAddCourseMissingBootcamp() {
	h := makeAddCourse().(*coursePostHandler)
	h.bootcampID = "nonexistent"
	h.body = model.APICourse{Title: utility.ToStringPtr("Orphaned")}

	resp := h.Run(s.userCtx(s.admin))
	s.Equal(http.StatusNotFound, resp.Status())
}

func (s *CourseRouteSuite) TestUpdateOwnership() {
	title := "Full Stack Web Development 2.0"
	h := makeUpdateCourse().(*coursePutHandler)
	h.courseID = s.course.Id
	h.body = model.APICourse{Title: &title}

	resp := h.Run(s.userCtx(s.other))
	s.Equal(http.StatusUnauthorized, resp.Status())

	unchanged, err := course.FindOneId(s.ctx, s.course.Id)
	s.Require().NoError(err)
	s.Equal(s.course.Title, unchanged.Title)

	resp = h.Run(s.userCtx(s.owner))
	s.Equal(http.StatusOK, resp.Status())

	updated, err := course.FindOneId(s.ctx, s.course.Id)
	s.Require().NoError(err)
	s.Equal(title, updated.Title)
}

func (s *CourseRouteSuite) TestUpdateAsAdmin() {
	title := "Renamed By Admin"
	h := makeUpdateCourse().(*coursePutHandler)
	h.courseID = s.course.Id
	h.body = model.APICourse{Title: &title}

	resp := h.Run(s.userCtx(s.admin))
	s.Equal(http.StatusOK, resp.Status())
}

func (s *CourseRouteSuite) TestUpdateMissingCourse() {
	h := makeUpdateCourse().(*coursePutHandler)
	h.courseID = "nonexistent"

	resp := h.Run(s.userCtx(s.admin))
	s.Equal(http.StatusNotFound, resp.Status())
}

func (s *CourseRouteSuite) TestDeleteRequiresOwnership() {
	h := makeDeleteCourse().(*courseDeleteHandler)
	h.courseID = s.course.Id

	resp := h.Run(s.userCtx(s.other))
	s.Equal(http.StatusUnauthorized, resp.Status())

	still, err := course.FindOneId(s.ctx, s.course.Id)
	s.Require().NoError(err)
	s.NotNil(still)
}

func (s *CourseRouteSuite) TestDeleteAsOwner() {
	h := makeDeleteCourse().(*courseDeleteHandler)
	h.courseID = s.course.Id

	resp := h.Run(s.userCtx(s.owner))
	s.Equal(http.StatusOK, resp.Status())

	removed, err := course.FindOneId(s.ctx, s.course.Id)
	s.Require().NoError(err)
	s.Nil(removed)
}
