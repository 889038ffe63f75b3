package route

import (
	"github.com/evergreen-ci/gimlet"
)

// AttachRoutes attaches the API's request handlers to the given app.
//
// Read routes are public. Mutations require an authenticated user, and
// the user management routes additionally require the admin role.
func AttachRoutes(app *gimlet.APIApp) {
	checkUser := gimlet.NewRequireAuthHandler()
	checkAdmin := NewRequireAdmin()

	// bootcamps
	app.AddRoute("/bootcamps").Version(1).Get().RouteHandler(makeFetchBootcamps())
	app.AddRoute("/bootcamps").Version(1).Post().Wrap(checkUser).RouteHandler(makeCreateBootcamp())
	app.AddRoute("/bootcamps/{bootcamp_id}").Version(1).Get().RouteHandler(makeGetBootcampByID())
	app.AddRoute("/bootcamps/{bootcamp_id}").Version(1).Put().Wrap(checkUser).RouteHandler(makeUpdateBootcamp())
	app.AddRoute("/bootcamps/{bootcamp_id}").Version(1).Delete().Wrap(checkUser).RouteHandler(makeDeleteBootcamp())

	// courses
	app.AddRoute("/courses").Version(1).Get().RouteHandler(makeFetchCourses())
	app.AddRoute("/courses/{course_id}").Version(1).Get().RouteHandler(makeGetCourseByID())
	app.AddRoute("/courses/{course_id}").Version(1).Put().Wrap(checkUser).RouteHandler(makeUpdateCourse())
	app.AddRoute("/courses/{course_id}").Version(1).Delete().Wrap(checkUser).RouteHandler(makeDeleteCourse())
	app.AddRoute("/bootcamps/{bootcamp_id}/courses").Version(1).Get().RouteHandler(makeFetchCourses())
	app.AddRoute("/bootcamps/{bootcamp_id}/courses").Version(1).Post().Wrap(checkUser).RouteHandler(makeAddCourse())

	// reviews
	app.AddRoute("/reviews").Version(1).Get().RouteHandler(makeFetchReviews())
	app.AddRoute("/reviews/{review_id}").Version(1).Get().RouteHandler(makeGetReviewByID())
	app.AddRoute("/reviews/{review_id}").Version(1).Put().Wrap(checkUser).RouteHandler(makeUpdateReview())
	app.AddRoute("/reviews/{review_id}").Version(1).Delete().Wrap(checkUser).RouteHandler(makeDeleteReview())
	app.AddRoute("/bootcamps/{bootcamp_id}/reviews").Version(1).Get().RouteHandler(makeFetchReviews())
	app.AddRoute("/bootcamps/{bootcamp_id}/reviews").Version(1).Post().Wrap(checkUser).RouteHandler(makeAddReview())

	// users
	app.AddRoute("/users").Version(1).Get().Wrap(checkUser).Wrap(checkAdmin).RouteHandler(makeFetchUsers())
	app.AddRoute("/users").Version(1).Post().Wrap(checkUser).Wrap(checkAdmin).RouteHandler(makeAddUser())
	app.AddRoute("/users/{user_id}").Version(1).Get().Wrap(checkUser).Wrap(checkAdmin).RouteHandler(makeGetUserByID())
	app.AddRoute("/users/{user_id}").Version(1).Put().Wrap(checkUser).Wrap(checkAdmin).RouteHandler(makeUpdateUser())
	app.AddRoute("/users/{user_id}").Version(1).Delete().Wrap(checkUser).Wrap(checkAdmin).RouteHandler(makeDeleteUser())
}
