package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"

	"dummy-importer/core/database"
	"dummy-importer/core/dummyapi"
	"dummy-importer/core/logger"
	"dummy-importer/core/server"
	"dummy-importer/core/storage"
	"dummy-importer/feature/importer"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration, one section per component.
// Every key can be set from the environment as SECTION_KEY (e.g. IMPORT_LIMIT).
type Config struct {
	Server   server.Config   `mapstructure:"server"`
	API      dummyapi.Config `mapstructure:"api"`
	Storage  storage.Config  `mapstructure:"storage"`
	Log      logger.Config   `mapstructure:"log"`
	Database database.Config `mapstructure:"database"`
	Import   importer.Config `mapstructure:"import"`
}

// LoadConfig reads dir/.env when present, then the process environment.
// Values from .env override variables already set in the environment.
func LoadConfig(dir string) (*Config, error) {
	if err := godotenv.Overload(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	registerKeys(v, reflect.TypeOf(Config{}), "")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// registerKeys declares every leaf key of t with its `default` tag.
// AutomaticEnv only resolves keys viper already knows about.
func registerKeys(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("mapstructure")
		if name == "" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct {
			registerKeys(v, field.Type, name)
			continue
		}
		v.SetDefault(name, field.Tag.Get("default"))
	}
}
