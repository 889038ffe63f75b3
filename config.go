package campdirector

import (
	"os"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"
)

// Settings contains the complete configuration for a campdirector
// process, read from a YAML file at startup.
type Settings struct {
	Database DBSettings    `yaml:"database"`
	Api      APISettings   `yaml:"api"`
	Amboy    AmboySettings `yaml:"amboy"`
	LogLevel string        `yaml:"log_level"`
}

type DBSettings struct {
	Url string `yaml:"url"`
	DB  string `yaml:"db"`
}

type APISettings struct {
	HttpListenAddr string `yaml:"http_listen_addr"`
	Url            string `yaml:"url"`
}

// AmboySettings configures the local background work queue.
type AmboySettings struct {
	PoolSizeLocal          int `yaml:"pool_size_local"`
	LocalStorage           int `yaml:"local_storage_size"`
	PeriodicJobIntervalMin int `yaml:"periodic_job_interval_minutes"`
}

const (
	defaultAmboyPoolSize     = 2
	defaultAmboyLocalStorage = 1024
	defaultAmboyPeriodMin    = 15
)

// NewSettings builds the in-memory representation of the settings
// file at the given path.
func NewSettings(filename string) (*Settings, error) {
	configData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading configuration file '%s'", filename)
	}

	settings := &Settings{}
	if err = yaml.Unmarshal(configData, settings); err != nil {
		return nil, errors.Wrapf(err, "parsing configuration file '%s'", filename)
	}

	return settings, nil
}

// Validate checks the settings for internal consistency and fills in
// defaults for optional sections.
func (s *Settings) Validate() error {
	catcher := grip.NewBasicCatcher()

	if s.Database.Url == "" {
		catcher.New("database url must not be empty")
	}
	if s.Database.DB == "" {
		catcher.New("database name must not be empty")
	}
	if s.Api.HttpListenAddr == "" {
		s.Api.HttpListenAddr = ":8080"
	}

	if s.Amboy.PoolSizeLocal <= 0 {
		s.Amboy.PoolSizeLocal = defaultAmboyPoolSize
	}
	if s.Amboy.LocalStorage <= 0 {
		s.Amboy.LocalStorage = defaultAmboyLocalStorage
	}
	if s.Amboy.PeriodicJobIntervalMin <= 0 {
		s.Amboy.PeriodicJobIntervalMin = defaultAmboyPeriodMin
	}

	return catcher.Resolve()
}
