package config

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "GH_REST_BINDINGS"
	configName = "gh-rest-bindings"

	KeyHost     = "host"
	KeyToken    = "token"
	KeyTimeout  = "timeout"
	KeyLogLevel = "log_level"
	KeyFormat   = "format"
	KeyRepo     = "repo"
)

// Config is the resolved runtime configuration of the CLI
type Config struct {
	Host     string
	Token    string
	Timeout  time.Duration
	LogLevel string
	Format   string
	Repo     string
}

// New returns a viper instance with defaults and env lookups installed
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyFormat, "typed")
	return v
}

// Read loads configFile, or the first gh-rest-bindings.yaml found in the
// working directory or $HOME/.config/gh-rest-bindings. A missing default
// file is not an error.
func Read(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/" + configName)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse config file").
			WithCause(err)
	}
	return nil
}

// Load snapshots the current viper values
func Load(v *viper.Viper) Config {
	return Config{
		Host:     v.GetString(KeyHost),
		Token:    v.GetString(KeyToken),
		Timeout:  v.GetDuration(KeyTimeout),
		LogLevel: v.GetString(KeyLogLevel),
		Format:   v.GetString(KeyFormat),
		Repo:     v.GetString(KeyRepo),
	}
}

// SetupLogging installs a console logger on w at the given level
func SetupLogging(level string, w io.Writer) zerolog.Logger {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	return log.Logger
}
