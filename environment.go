package campdirector

import (
	"context"
	"sync"
	"time"

	"github.com/mongodb/amboy"
	"github.com/mongodb/amboy/queue"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	globalEnv     Environment
	globalEnvLock sync.RWMutex
)

// GetEnvironment returns the global application level environment.
// This implementation is thread safe, but must be configured before
// use.
//
// In general you should call this operation once per process
// execution and pass the Environment interface through your
// application like a context, although in the implementation of
// amboy jobs and in model-layer helpers it is necessary to access
// the global environment.
func GetEnvironment() Environment {
	globalEnvLock.RLock()
	defer globalEnvLock.RUnlock()

	return globalEnv
}

func SetEnvironment(env Environment) {
	globalEnvLock.Lock()
	defer globalEnvLock.Unlock()

	globalEnv = env
}

// Environment provides application-level services: configuration,
// the database, and the background work queue. It is established at
// process startup and torn down at process exit.
type Environment interface {
	// Settings returns the settings object. The settings object
	// is not necessarily safe for concurrent access.
	Settings() *Settings

	Client() *mongo.Client
	DB() *mongo.Database

	// LocalQueue is a process-local amboy queue for background
	// work. It is not durable, and results aren't available
	// between process restarts.
	LocalQueue() amboy.Queue

	// Close terminates the environment's database connection and
	// stops background workers.
	Close(context.Context) error
}

// NewEnvironment constructs an environment from the settings file at
// confPath, connects to the database, and starts the local queue.
func NewEnvironment(ctx context.Context, confPath string) (Environment, error) {
	settings, err := NewSettings(confPath)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return NewEnvironmentWithSettings(ctx, settings)
}

// NewEnvironmentWithSettings constructs an environment from an
// already-populated settings object.
func NewEnvironmentWithSettings(ctx context.Context, settings *Settings) (Environment, error) {
	if err := settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating settings")
	}

	e := &envState{settings: settings}

	catcher := grip.NewBasicCatcher()
	catcher.Add(e.initDB(ctx, settings.Database))
	catcher.Add(e.initQueue(ctx, settings.Amboy))
	if catcher.HasErrors() {
		return nil, errors.WithStack(catcher.Resolve())
	}

	return e, nil
}

type envState struct {
	settings   *Settings
	client     *mongo.Client
	localQueue amboy.Queue

	mu sync.RWMutex
}

func (e *envState) initDB(ctx context.Context, settings DBSettings) error {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(settings.Url))
	if err != nil {
		return errors.Wrap(err, "constructing database connection")
	}

	if err = client.Ping(connectCtx, readpref.Primary()); err != nil {
		return errors.Wrap(err, "pinging database")
	}

	e.client = client
	return nil
}

func (e *envState) initQueue(ctx context.Context, settings AmboySettings) error {
	e.localQueue = queue.NewLocalLimitedSize(settings.PoolSizeLocal, settings.LocalStorage)

	return errors.Wrap(e.localQueue.Start(ctx), "starting local queue")
}

func (e *envState) Settings() *Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.settings
}

func (e *envState) Client() *mongo.Client {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.client
}

func (e *envState) DB() *mongo.Database {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.client.Database(e.settings.Database.DB)
}

func (e *envState) LocalQueue() amboy.Queue {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.localQueue
}

func (e *envState) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.localQueue.Close(ctx)

	return errors.Wrap(e.client.Disconnect(ctx), "disconnecting from database")
}
