package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/portal/pkg/actor"
)

// Config locates the durable slot and names the default actor.
type Config interface {
	BasePath() string
	Actor() string
}

// LoadConfig resolves configuration from a `.portal` file (yaml), PORTAL_*
// environment variables and defaults. A missing config file is fine.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.portal.db")
	viper.SetDefault("actor", actor.Guest)
	viper.SetConfigName(".portal") // .yaml is implicit
	viper.SetEnvPrefix("PORTAL")
	viper.AutomaticEnv()

	if override := os.Getenv("PORTAL_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &fileConfig{Path: path, ActorID: viper.GetString("actor")}, nil
}

type fileConfig struct {
	Path    string `json:"path"`
	ActorID string `json:"actor"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Actor() string {
	return f.ActorID
}

// StaticConfig is a Config with fixed values, used by tests and embedders.
type StaticConfig struct {
	Path    string
	ActorID string
}

// BasePath implements Config.
func (s StaticConfig) BasePath() string { return s.Path }

// Actor implements Config.
func (s StaticConfig) Actor() string {
	if s.ActorID == "" {
		return actor.Guest
	}
	return s.ActorID
}
