// Package config loads the ambient settings for the featurectl CLI: the
// selection cache capacity, the default log level, and the path of a
// configuration record to load. This has nothing to do
// with the toolchain ConfigurationRecord the engine selects over — it is
// the CLI's own settings file, the same role beads' internal/config
// plays for `bd`.
//
// Grounded on beads' internal/config/local_config.go for the
// file-then-env precedence shape (LoadLocalConfigWithEnv: read the file,
// then let environment variables win), layered here on top of
// spf13/viper instead of a bare os.ReadFile+yaml.Unmarshal pair, since
// viper is already the teacher's chosen library for exactly this job
// (its yaml_config.go builds on a package-level viper instance for the
// CLI's settings) and it gives FEATURECTL_-prefixed env overrides for
// free via AutomaticEnv instead of a hand-written switch per field.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the CLI's own settings, as opposed to a toolchain
// ConfigurationRecord.
type Config struct {
	CacheCapacity    int    `mapstructure:"cache-capacity"`
	LogLevel         string `mapstructure:"log-level"`
	ConfigRecordPath string `mapstructure:"config-record-path"`
}

// Defaults returns the configuration used when no file and no
// environment overrides are present.
func Defaults() Config {
	return Config{
		CacheCapacity: 10000,
		LogLevel:      "info",
	}
}

// Load reads "featurectl.yaml" from dir (if present) over top of
// Defaults, then applies FEATURECTL_-prefixed environment overrides. A
// missing or unparseable file yields Defaults (still overridden by the
// environment) rather than an error, matching LoadLocalConfig's "never block startup on a bad/missing
// settings file" behavior.
func Load(dir string) Config {
	v := viper.New()
	v.SetConfigName("featurectl")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	defaults := Defaults()
	v.SetDefault("cache-capacity", defaults.CacheCapacity)
	v.SetDefault("log-level", defaults.LogLevel)
	v.SetDefault("config-record-path", defaults.ConfigRecordPath)

	v.SetEnvPrefix("FEATURECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	_ = v.ReadInConfig() // missing/unparseable file: fall through to defaults+env

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return defaults
	}
	return cfg
}
