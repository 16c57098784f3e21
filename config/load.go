package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/godot-bevy/typegen/errors"
)

const (
	// EnvPrefix makes GDTYPEGEN_SKIP_DUMP and friends work.
	EnvPrefix = "GDTYPEGEN"

	// ConfigFileName is looked up (with a .toml extension) in the working
	// directory when --config is not given.
	ConfigFileName = "godot-typegen"
)

// NewViper returns a viper instance with defaults and environment binding
// applied. The cmd layer binds its flags on top before LoadWithViper.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// ReadConfigFile merges a TOML config file into v. An explicit path must
// exist; the implicit godot-typegen.toml lookup tolerates absence.
func ReadConfigFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		v.SetConfigFile(explicit)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config file %s", explicit)
		}
		return nil
	}

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "reading config file")
	}
	return nil
}

// LoadWithViper unmarshals the resolved settings.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &cfg, nil
}

// Load resolves configuration without flag overrides, the path used by
// tests and library callers.
func Load() (*Config, error) {
	v := NewViper()
	if err := ReadConfigFile(v, ""); err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}
