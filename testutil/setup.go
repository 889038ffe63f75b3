package testutil

import (
	"context"
	"os"

	"github.com/campdirector/campdirector"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

const (
	// TestDBUrlEnv overrides the database the tests run against.
	TestDBUrlEnv = "CD_TEST_DB_URL"

	defaultTestDBUrl = "mongodb://localhost:27017"
	testDBName       = "campdirector_test"
)

// Setup initializes the global test environment against a local
// database. Tests that touch the database call this from TestMain or
// at the top of the test.
func Setup() {
	if campdirector.GetEnvironment() != nil {
		return
	}

	url := os.Getenv(TestDBUrlEnv)
	if url == "" {
		url = defaultTestDBUrl
	}

	settings := &campdirector.Settings{
		Database: campdirector.DBSettings{
			Url: url,
			DB:  testDBName,
		},
	}

	env, err := campdirector.NewEnvironmentWithSettings(context.Background(), settings)
	grip.EmergencyPanic(message.WrapError(err, message.Fields{
		"message": "could not initialize test environment",
		"db_url":  url,
	}))

	campdirector.SetEnvironment(env)
}
