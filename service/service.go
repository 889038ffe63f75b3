package service

import (
	"net/http"
	"time"

	"github.com/campdirector/campdirector"
	"github.com/campdirector/campdirector/rest/route"
	"github.com/evergreen-ci/gimlet"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/negroni"
)

// GetServer produces an HTTP server instance for a handler.
func GetServer(addr string, n http.Handler) *http.Server {
	grip.Notice(message.Fields{
		"action":  "starting service",
		"service": addr,
		"build":   campdirector.BuildRevision,
		"process": grip.Name(),
	})

	return &http.Server{
		Addr:              addr,
		Handler:           n,
		ReadTimeout:       time.Minute,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      time.Minute,
	}
}

// GetRouter builds the API handler with its middleware stack and all
// of the REST routes attached.
func GetRouter() (http.Handler, error) {
	app := gimlet.NewApp()
	app.SetPrefix("api")
	app.ResetMiddleware()
	app.AddMiddleware(gimlet.MakeRecoveryLogger())
	app.AddMiddleware(negroni.HandlerFunc(UserMiddleware()))

	route.AttachRoutes(app)

	handler, err := app.Handler()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return handler, nil
}
