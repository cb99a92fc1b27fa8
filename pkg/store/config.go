package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config supplies the externally provided startup inputs: the base path
// for local drivers, the application namespace, the store driver, and an
// optional pre-supplied identity token.
type Config interface {
	BasePath() string
	Namespace() string
	Driver() string
	Token() string
}

const (
	// DriverFile keeps one JSON document per recipe on the local disk.
	DriverFile = "file"
	// DriverSQLite keeps recipes in a local SQLite database.
	DriverSQLite = "sqlite"
	// DriverCharm keeps recipes in the hosted Charm Cloud KV store.
	DriverCharm = "charm"
)

// LoadConfig resolves configuration from a .cookbook file, the COOKBOOK_*
// environment, and defaults. A missing config file is fine; an unreadable
// one is fatal for the session.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.cookbook.db")
	viper.SetDefault("namespace", "cookbook")
	viper.SetDefault("driver", DriverFile)
	viper.SetConfigName(".cookbook") // .yaml is implicit
	viper.SetEnvPrefix("COOKBOOK")
	viper.AutomaticEnv()

	if override := os.Getenv("COOKBOOK_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:      path,
		Space:     viper.GetString("namespace"),
		DriverID:  viper.GetString("driver"),
		AuthToken: viper.GetString("token"),
	}, nil
}

type fileConfig struct {
	Path      string `json:"path"`
	Space     string `json:"namespace"`
	DriverID  string `json:"driver"`
	AuthToken string `json:"token"`
}

func (f *fileConfig) BasePath() string  { return f.Path }
func (f *fileConfig) Namespace() string { return f.Space }
func (f *fileConfig) Driver() string    { return f.DriverID }
func (f *fileConfig) Token() string     { return f.AuthToken }

// StaticConfig is a fixed configuration value, handy for tests and for
// callers that resolve settings themselves.
type StaticConfig struct {
	Path      string
	Space     string
	DriverID  string
	AuthToken string
}

func (s StaticConfig) BasePath() string  { return s.Path }
func (s StaticConfig) Namespace() string { return s.Space }
func (s StaticConfig) Driver() string    { return s.DriverID }
func (s StaticConfig) Token() string     { return s.AuthToken }
