// Package config loads uibuild settings from an optional uibuild.yaml and
// UIBUILD_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/go-drift/uiloader/pkg/logging"
)

// FileName is the config file looked up in the working directory.
const FileName = "uibuild"

// EnvConfig names the variable holding an explicit config file path.
const EnvConfig = "UIBUILD_CONFIG"

// Config holds uibuild settings.
type Config struct {
	Resources ResourcesConfig
	Log       LogConfig
	Output    OutputConfig
}

// ResourcesConfig says where UI descriptions and images are read from.
type ResourcesConfig struct {
	// Dir is a resource directory laid out as <dir>/<type>/<name><ext>.
	Dir string
	// DB is an optional SQLite resource database, consulted after Dir.
	DB string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// OutputConfig holds settings for generated files.
type OutputConfig struct {
	Dir string
}

// Load reads configuration from path, or from $UIBUILD_CONFIG, or from
// uibuild.yaml in the working directory, in that order. An explicit file's
// format follows its extension. A missing default
// file is not an error; a missing explicit file is. Env var overrides use
// prefix UIBUILD_ (UIBUILD_RESOURCES_DIR, UIBUILD_LOG_LEVEL, ...).
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("resources.dir", "res")
	v.SetDefault("resources.db", "")
	v.SetDefault("log.level", logging.LevelWarn)
	v.SetDefault("output.dir", "")

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("UIBUILD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Resources.Dir) == "" && strings.TrimSpace(c.Resources.DB) == "" {
		return fmt.Errorf("config: resources.dir or resources.db is required")
	}
	if _, err := logging.New(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
