// Package config loads converter settings from a JSON config file via viper.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ConfigName is the config file the converter looks for in its config dir.
const ConfigName = "mrkconvert.cfg.json"

// SetDefaults registers default values for every known key.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./mrklogs")

	viper.SetDefault("convert.swapCoordinates", false)

	viper.SetDefault("output.dir", ".")
	viper.SetDefault("output.compress", false)

	viper.SetDefault("catalog.enabled", false)
	viper.SetDefault("catalog.sqlitePath", "./mrkconvert.db")

	viper.SetDefault("catalog.db.host", "")
	viper.SetDefault("catalog.db.port", "5432")
	viper.SetDefault("catalog.db.username", "postgres")
	viper.SetDefault("catalog.db.password", "postgres")
	viper.SetDefault("catalog.db.database", "mrkconvert")
}

// Load reads configuration from the JSON config file in configDir and sets
// default values. A missing config file is not an error; defaults apply.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(ConfigName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
