package store

import (
	"errors"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const defaultPath = "~/.dreamer.db"

// Config describes where the journal lives and how dreamer reports on itself.
type Config interface {
	BasePath() string
	Debug() bool
	LogPath() string
}

// LoadConfig reads .dreamer.yaml from $DREAMER_CONFIG_PATH or the working
// directory, layered under DREAMER_* environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("debug", false)
	v.SetDefault("log", "")
	v.SetConfigName(".dreamer") // .yaml is implicit
	v.SetEnvPrefix("DREAMER")
	v.AutomaticEnv()

	if override := os.Getenv("DREAMER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	logPath, err := homedir.Expand(v.GetString("log"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:     path,
		Verbose:  v.GetBool("debug"),
		LogsPath: logPath,
	}, nil
}

type fileConfig struct {
	Path     string `json:"path"`
	Verbose  bool   `json:"debug"`
	LogsPath string `json:"log"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Debug() bool {
	return f.Verbose
}

func (f *fileConfig) LogPath() string {
	return f.LogsPath
}

// StaticConfig is a Config with fixed values, used by tests and callers that
// already know the path.
type StaticConfig struct {
	Path    string
	Verbose bool
	Logs    string
}

func (s StaticConfig) BasePath() string { return s.Path }
func (s StaticConfig) Debug() bool      { return s.Verbose }
func (s StaticConfig) LogPath() string  { return s.Logs }
