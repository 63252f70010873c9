// Package config loads converter settings from an optional YAML file and
// KML2GPX_* environment variables on top of a built-in dialect profile.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"kml2gpx/internal/convert"
	"kml2gpx/pkg/geo"
)

// Config holds all application configuration.
type Config struct {
	Profile    string           `mapstructure:"profile"`
	Conversion ConversionConfig `mapstructure:"conversion"`
	Schemas    []string         `mapstructure:"schemas"`
	Log        LogConfig        `mapstructure:"log"`
}

// ConversionConfig overrides individual parts of the selected profile.
// Unset values keep the profile's choice.
type ConversionConfig struct {
	PrimaryDescriptionField *string              `mapstructure:"primary_description_field"`
	FieldMapping            []convert.FieldLabel `mapstructure:"field_mapping"`
	CoordinateFallback      *convert.FieldPair   `mapstructure:"coordinate_fallback"`
	IdentifierField         *string              `mapstructure:"identifier_field"`
	NameField               *string              `mapstructure:"name_field"`
	ValidationExtent        *geo.Extent          `mapstructure:"validation_extent"`
	FilterExtent            *geo.Extent          `mapstructure:"filter_extent"`
	NoFilter                bool                 `mapstructure:"no_filter"`
	Precision               *int                 `mapstructure:"precision"`
	SwapPredicate           string               `mapstructure:"swap_predicate"`
	DiscoverFields          bool                 `mapstructure:"discover_fields"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// envKeys are the scalar settings that can be overridden from the
// environment, e.g. KML2GPX_CONVERSION_PRECISION. Extents, the coordinate
// fallback and the field mapping come from the config file only.
var envKeys = []string{
	"schemas",
	"conversion.primary_description_field",
	"conversion.identifier_field",
	"conversion.name_field",
	"conversion.no_filter",
	"conversion.precision",
	"conversion.swap_predicate",
	"conversion.discover_fields",
}

// Load reads configuration from file and environment variables. path may be
// empty, in which case kml2gpx.yaml is looked up in . and ./configs and
// silently skipped when missing.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("profile", DefaultProfile)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		v.SetConfigName("kml2gpx")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		_ = v.ReadInConfig() // OK if missing
	}

	// Environment variables: KML2GPX_LOG_LEVEL → log.level
	v.SetEnvPrefix("KML2GPX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Overrides have no default, so viper only sees them when bound.
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "bind %s", key)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &cfg, nil
}

// Resolve resolves the profile and applies the overrides, returning the
// pipeline configuration and whether field discovery was requested.
func (c *Config) Resolve() (convert.Config, bool, error) {
	name := c.Profile
	if name == "" {
		name = DefaultProfile
	}
	out, ok := Profile(name)
	if !ok {
		return convert.Config{}, false, errors.Newf("unknown profile %q (known: %s)", name, strings.Join(ProfileNames(), ", "))
	}

	o := c.Conversion
	if o.PrimaryDescriptionField != nil {
		out.PrimaryDescriptionField = *o.PrimaryDescriptionField
	}
	if o.FieldMapping != nil {
		out.FieldMapping = o.FieldMapping
	}
	if o.CoordinateFallback != nil {
		out.CoordinateFallback = o.CoordinateFallback
	}
	if o.IdentifierField != nil {
		out.IdentifierField = *o.IdentifierField
	}
	if o.NameField != nil {
		out.NameField = *o.NameField
	}
	if o.ValidationExtent != nil {
		out.ValidationExtent = *o.ValidationExtent
	}
	if o.FilterExtent != nil {
		out.FilterExtent = o.FilterExtent
	}
	if o.NoFilter {
		out.FilterExtent = nil
	}
	if o.Precision != nil {
		out.Precision = *o.Precision
	}
	swap, ok := geo.LookupSwapPredicate(o.SwapPredicate)
	if !ok {
		return convert.Config{}, false, errors.Newf("unknown swap predicate %q", o.SwapPredicate)
	}
	out.Swap = swap

	if err := out.Validate(); err != nil {
		return convert.Config{}, false, err
	}
	return out, o.DiscoverFields, nil
}
