package route

import (
	"context"
	"net/http"
	"testing"

	"github.com/campdirector/campdirector"
	"github.com/campdirector/campdirector/db"
	"github.com/campdirector/campdirector/model/bootcamp"
	"github.com/campdirector/campdirector/model/review"
	"github.com/campdirector/campdirector/model/user"
	"github.com/campdirector/campdirector/rest/model"
	"github.com/campdirector/campdirector/testutil"
	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/suite"
)

type ReviewRouteSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc

	author *user.DBUser
	admin  *user.DBUser
	other  *user.DBUser
	camp   bootcamp.Bootcamp
}

func TestReviewRouteSuite(t *testing.T) {
	testutil.Setup()
	suite.Run(t, &ReviewRouteSuite{})
}

func (s *ReviewRouteSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.Require().NoError(db.ClearCollections(s.ctx,
		bootcamp.Collection, review.Collection, user.Collection))
	s.Require().NoError(review.EnsureIndexes(s.ctx))

	s.author = &user.DBUser{Id: "author", Name: "Author", EmailAddress: "author@example.com"}
	s.admin = &user.DBUser{Id: "admin", Name: "Admin", EmailAddress: "admin@example.com", Role: campdirector.RoleAdmin}
	s.other = &user.DBUser{Id: "other", Name: "Other", EmailAddress: "other@example.com"}
	for _, u := range []*user.DBUser{s.author, s.admin, s.other} {
		s.Require().NoError(u.Insert(s.ctx))
	}

	s.camp = bootcamp.Bootcamp{Name: "Devworks", Description: "d", User: "someone"}
	s.Require().NoError(s.camp.Insert(s.ctx))
}

func (s *ReviewRouteSuite) TearDownTest() {
	s.cancel()
}

func (s *ReviewRouteSuite) userCtx(u *user.DBUser) context.Context {
	return gimlet.AttachUser(s.ctx, u)
}

func (s *ReviewRouteSuite) averageRating() *float64 {
	b, err := bootcamp.FindOneId(s.ctx, s.camp.Id)
	s.Require().NoError(err)
	s.Require().NotNil(b)
	return b.AverageRating
}

func (s *ReviewRouteSuite) addReview(h *reviewPostHandler, u *user.DBUser, rating float64) gimlet.Responder {
	h.bootcampID = s.camp.Id
	h.body = model.APIReview{
		Title:  utility.ToStringPtr("thoughts from " + u.Id),
		Text:   utility.ToStringPtr("some text"),
		Rating: utility.ToFloat64Ptr(rating),
	}
	return h.Run(s.userCtx(u))
}

func (s *ReviewRouteSuite) TestAddReviewUpdatesAverage() {
	resp := s.addReview(makeAddReview().(*reviewPostHandler), s.author, 8)
	s.Equal(http.StatusCreated, resp.Status())

	avg := s.averageRating()
	s.Require().NotNil(avg)
	s.Equal(8.0, *avg)

	resp = s.addReview(makeAddReview().(*reviewPostHandler), s.other, 4)
	s.Equal(http.StatusCreated, resp.Status())

	avg = s.averageRating()
	s.Require().NotNil(avg)
	s.Equal(6.0, *avg)
}

func (s *ReviewRouteSuite) TestAddReviewMissingBootcamp() {
	h := makeAddReview().(*reviewPostHandler)
	h.bootcampID = "nonexistent"
	h.body = model.APIReview{
		Title:  utility.ToStringPtr("t"),
		Text:   utility.ToStringPtr("x"),
		Rating: utility.ToFloat64Ptr(5),
	}

	resp := h.Run(s.userCtx(s.author))
	s.Equal(http.StatusNotFound, resp.Status())
}

func (s *ReviewRouteSuite) TestAddReviewRejectsDuplicate() {
	resp := s.addReview(makeAddReview().(*reviewPostHandler), s.author, 8)
	s.Equal(http.StatusCreated, resp.Status())

	resp = s.addReview(makeAddReview().(*reviewPostHandler), s.author, 3)
	s.Equal(http.StatusBadRequest, resp.Status())
}

func (s *ReviewRouteSuite) TestUpdateReviewOwnership() {
	s.Require().Equal(http.StatusCreated, s.addReview(makeAddReview().(*reviewPostHandler), s.author, 8).Status())

	reviews, err := review.Find(s.ctx, review.ByBootcamp(s.camp.Id))
	s.Require().NoError(err)
	s.Require().Len(reviews, 1)

	h := makeUpdateReview().(*reviewPutHandler)
	h.reviewID = reviews[0].Id
	h.body = model.APIReview{Rating: utility.ToFloat64Ptr(2)}

	resp := h.Run(s.userCtx(s.other))
	s.Equal(http.StatusUnauthorized, resp.Status())

	resp = h.Run(s.userCtx(s.author))
	s.Equal(http.StatusOK, resp.Status())

	avg := s.averageRating()
	s.Require().NotNil(avg)
	s.Equal(2.0, *avg)
}

func (s *ReviewRouteSuite) TestDeleteLastReviewClearsAverage() {
	s.Require().Equal(http.StatusCreated, s.addReview(makeAddReview().(*reviewPostHandler), s.author, 8).Status())
	s.Require().NotNil(s.averageRating())

	reviews, err := review.Find(s.ctx, review.ByBootcamp(s.camp.Id))
	s.Require().NoError(err)
	s.Require().Len(reviews, 1)

	h := makeDeleteReview().(*reviewDeleteHandler)
	h.reviewID = reviews[0].Id

	// admins may remove any review
	resp := h.Run(s.userCtx(s.admin))
	s.Equal(http.StatusOK, resp.Status())

	s.Nil(s.averageRating())
}
