package operations

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campdirector/campdirector"
	"github.com/campdirector/campdirector/model/review"
	"github.com/campdirector/campdirector/model/user"
	"github.com/campdirector/campdirector/service"
	"github.com/campdirector/campdirector/units"
	"github.com/mongodb/amboy"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/recovery"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Service returns the command that runs the API web service.
func Service() cli.Command {
	return cli.Command{
		Name:  "service",
		Usage: "run the campdirector services",
		Subcommands: []cli.Command{
			startWebService(),
		},
	}
}

func startWebService() cli.Command {
	return cli.Command{
		Name:   "web",
		Usage:  "run the REST API web service",
		Flags:  serviceConfigFlags(),
		Before: mergeBeforeFuncs(setupService(), requireFileExists(confFlagName)),
		Action: func(c *cli.Context) error {
			confPath := c.String(confFlagName)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			defer recovery.LogStackTraceAndExit("campdirector service")

			env, err := campdirector.NewEnvironment(ctx, confPath)
			if err != nil {
				return errors.Wrap(err, "configuring application environment")
			}
			campdirector.SetEnvironment(env)
			defer func() {
				grip.Error(message.WrapError(env.Close(context.Background()), "closing application environment"))
			}()

			if err = ensureIndexes(ctx); err != nil {
				return errors.Wrap(err, "building indexes")
			}

			settings := env.Settings()

			amboy.IntervalQueueOperation(ctx, env.LocalQueue(),
				time.Duration(settings.Amboy.PeriodicJobIntervalMin)*time.Minute,
				time.Now(), amboy.QueueOperationConfig{ContinueOnError: true},
				units.PopulateRatingReconciliationJobs())

			handler, err := service.GetRouter()
			if err != nil {
				return errors.Wrap(err, "building request handler")
			}

			srv := service.GetServer(settings.Api.HttpListenAddr, handler)

			go func() {
				defer recovery.LogStackTraceAndContinue("web service")

				err := srv.ListenAndServe()
				if err != nil && err != http.ErrServerClosed {
					grip.EmergencyFatal(errors.Wrap(err, "running web service"))
				}
			}()

			waitForInterrupt(ctx)

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()

			return errors.Wrap(srv.Shutdown(shutdownCtx), "shutting down web service")
		},
	}
}

func setupService() cli.BeforeFunc {
	return func(c *cli.Context) error {
		grip.SetName("campdirector.service")

		return nil
	}
}

// ensureIndexes builds the indexes that back the service's uniqueness
// rules before any requests are served.
func ensureIndexes(ctx context.Context) error {
	catcher := grip.NewBasicCatcher()
	catcher.Add(review.EnsureIndexes(ctx))
	catcher.Add(user.EnsureIndexes(ctx))
	return catcher.Resolve()
}

func waitForInterrupt(ctx context.Context) {
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGTERM, os.Interrupt)

	select {
	case sig := <-sigChan:
		grip.Notice(message.Fields{
			"message": "terminating service",
			"signal":  sig.String(),
		})
	case <-ctx.Done():
	}
}
