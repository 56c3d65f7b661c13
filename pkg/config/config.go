// Package config loads chordwheel settings from a TOML file.
//
// Config file locations (priority order):
//  1. $CHORDWHEEL_CONFIG
//  2. ./chordwheel.toml
//  3. $XDG_CONFIG_HOME/chordwheel/config.toml (~/.config/chordwheel/config.toml)
//
// A missing file is not an error: [Load] returns [Default]. Command-line flags
// override file values; see [Config.ApplyTo].
//
// Example file:
//
//	[layout]
//	base_weight = 0.3
//	pad_angle = 0.015
//
//	[render]
//	style = "gradient"
//	formats = ["svg", "png"]
//
//	[palette]
//	positive = "#4caf50"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	layout_ttl = "12h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chordwheel/pkg/cache"
	"github.com/matzehuels/chordwheel/pkg/errors"
	"github.com/matzehuels/chordwheel/pkg/pipeline"
)

const (
	appName = "chordwheel"

	// EnvPath names a config file that takes precedence over the search path.
	EnvPath = "CHORDWHEEL_CONFIG"

	// LocalFile is looked up in the working directory.
	LocalFile = "chordwheel.toml"

	// DefaultAddr is the server listen address.
	DefaultAddr = ":8080"
)

// Config is the decoded config file.
type Config struct {
	Layout  Layout  `toml:"layout"`
	Render  Render  `toml:"render"`
	Palette Palette `toml:"palette"`
	Cache   Cache   `toml:"cache"`
	Server  Server  `toml:"server"`
}

// Layout overrides the layout constants. Zero keeps the built-in value.
type Layout struct {
	VizType     string  `toml:"viz_type,omitempty" validate:"omitempty,oneof=chord nodelink"`
	BaseWeight  float64 `toml:"base_weight,omitempty" validate:"gte=0"`
	PadAngle    float64 `toml:"pad_angle,omitempty" validate:"gte=0"`
	FlowScale   float64 `toml:"flow_scale,omitempty" validate:"gte=0"`
	FlowEpsilon float64 `toml:"flow_epsilon,omitempty" validate:"gte=0"`
	Engine      string  `toml:"engine,omitempty" validate:"omitempty,oneof=circo neato twopi fdp"`
}

// Render holds output defaults.
type Render struct {
	Width   float64  `toml:"width,omitempty" validate:"gte=0,lte=10000"`
	Height  float64  `toml:"height,omitempty" validate:"gte=0,lte=10000"`
	Style   string   `toml:"style,omitempty" validate:"omitempty,oneof=simple gradient handdrawn"`
	Formats []string `toml:"formats,omitempty" validate:"dive,oneof=svg png pdf json"`
	Scale   float64  `toml:"scale,omitempty" validate:"gte=0,lte=8"`
	Seed    int64    `toml:"seed,omitempty"`
}

// Palette overrides the sentiment colors.
type Palette struct {
	Positive string `toml:"positive,omitempty" validate:"omitempty,rgbhex"`
	Neutral  string `toml:"neutral,omitempty" validate:"omitempty,rgbhex"`
	Negative string `toml:"negative,omitempty" validate:"omitempty,rgbhex"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend       string   `toml:"backend" validate:"omitempty,oneof=file memory redis mongo none"`
	Dir           string   `toml:"dir,omitempty"`
	RedisAddr     string   `toml:"redis_addr,omitempty" validate:"required_if=Backend redis"`
	MongoURI      string   `toml:"mongo_uri,omitempty" validate:"required_if=Backend mongo"`
	MongoDatabase string   `toml:"mongo_database,omitempty" validate:"required_if=Backend mongo"`
	Collection    string   `toml:"collection,omitempty"`
	LayoutTTL     Duration `toml:"layout_ttl,omitempty" validate:"gte=0"`
	ArtifactTTL   Duration `toml:"artifact_ttl,omitempty" validate:"gte=0"`
}

// Server configures `chordwheel serve`.
type Server struct {
	Addr        string   `toml:"addr" validate:"required"`
	ReadTimeout Duration `toml:"read_timeout,omitempty" validate:"gte=0"`
	MaxBodySize int64    `toml:"max_body_size,omitempty" validate:"gte=0"`
}

// Duration is a time.Duration written as a string such as "12h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: Render{
			Style:   pipeline.DefaultStyle,
			Formats: []string{pipeline.FormatSVG},
		},
		Cache: Cache{
			Backend:     cache.BackendFile,
			LayoutTTL:   Duration(cache.TTLLayout),
			ArtifactTTL: Duration(cache.TTLArtifact),
		},
		Server: Server{
			Addr:        DefaultAddr,
			ReadTimeout: Duration(30 * time.Second),
			MaxBodySize: 4 << 20,
		},
	}
}

// =============================================================================
// Paths
// =============================================================================

// Path returns the per-user config file location.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the file cache directory (~/.cache/chordwheel/).
func CacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Find returns the first existing config file in priority order, or "".
// A file named by $CHORDWHEEL_CONFIG is returned even if it does not exist,
// so that Load reports it.
func Find() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	candidates := []string{LocalFile}
	if p, err := Path(); err == nil {
		candidates = append(candidates, p)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the file at path over the defaults. An empty path searches the
// default locations and falls back to [Default] when none exists. The
// returned string is the file actually read.
func Load(path string) (Config, string, error) {
	if path == "" {
		path = Find()
		if path == "" {
			return Default(), "", nil
		}
	}
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return Config{}, path, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return Config{}, path, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// Parse decodes TOML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = pipeline.NewValidator()

// Validate checks the struct tags on c.
func (c Config) Validate() error {
	if err := pipeline.ValidationError(validate.Struct(c)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	return nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}

// Save writes c to path, creating parent directories.
func (c Config) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create config dir")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write config")
	}
	return nil
}

// =============================================================================
// Conversions
// =============================================================================

// ApplyTo fills unset pipeline options from the config. Options already set,
// typically from flags, are left alone.
func (c Config) ApplyTo(opts *pipeline.Options) {
	setString(&opts.VizType, c.Layout.VizType)
	setFloat(&opts.BaseWeight, c.Layout.BaseWeight)
	setFloat(&opts.PadAngle, c.Layout.PadAngle)
	setFloat(&opts.FlowScale, c.Layout.FlowScale)
	setFloat(&opts.FlowEpsilon, c.Layout.FlowEpsilon)
	setString(&opts.Engine, c.Layout.Engine)

	setFloat(&opts.Width, c.Render.Width)
	setFloat(&opts.Height, c.Render.Height)
	setString(&opts.Style, c.Render.Style)
	setFloat(&opts.Scale, c.Render.Scale)
	if opts.Seed == 0 {
		opts.Seed = c.Render.Seed
	}
	if len(opts.Formats) == 0 && len(c.Render.Formats) > 0 {
		opts.Formats = append([]string(nil), c.Render.Formats...)
	}

	setString(&opts.Palette.Positive, c.Palette.Positive)
	setString(&opts.Palette.Neutral, c.Palette.Neutral)
	setString(&opts.Palette.Negative, c.Palette.Negative)
}

// CacheOptions converts the [cache] section for [cache.Open]. The file
// backend defaults to [CacheDir].
func (c Config) CacheOptions() (cache.Options, error) {
	opts := cache.Options{
		Backend:       c.Cache.Backend,
		Dir:           c.Cache.Dir,
		RedisAddr:     c.Cache.RedisAddr,
		MongoURI:      c.Cache.MongoURI,
		MongoDatabase: c.Cache.MongoDatabase,
		Collection:    c.Cache.Collection,
	}
	if (opts.Backend == "" || opts.Backend == cache.BackendFile) && opts.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return cache.Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve cache dir")
		}
		opts.Dir = dir
	}
	return opts, nil
}

func setString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if *dst == 0 {
		*dst = v
	}
}
