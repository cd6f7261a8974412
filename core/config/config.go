package config

import (
	"reflect"
	"strings"

	"backup-manager/core/logger"
	"backup-manager/core/primary"
	"backup-manager/core/replica"
	"backup-manager/core/server"
	"backup-manager/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Primary holds configuration for the authoritative document store.
	Primary primary.Config `mapstructure:"primary"`
	// Replica holds configuration for the relational replica store.
	Replica replica.Config `mapstructure:"replica"`
	// Storage holds configuration for the object storage used to archive
	// sync run reports. Optional; leave the endpoint empty to disable.
	Storage storage.Config `mapstructure:"storage"`
	// Backup holds configuration for the sync scheduler.
	Backup BackupConfig `mapstructure:"backup"`
}

// BackupConfig holds scheduler and sync-run settings.
//
// The interval is in-memory process state: it resets to the default on
// restart. This is an accepted operational characteristic, not a bug.
type BackupConfig struct {
	// IntervalHours is the default scheduler interval, bounded to [1,24].
	IntervalHours int `mapstructure:"interval_hours" default:"6"`
	// TimeoutSeconds bounds a single full sync run.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"300"`
	// AutoStart arms the scheduler when the server starts.
	AutoStart bool `mapstructure:"auto_start" default:"true"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values
// in Viper based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
