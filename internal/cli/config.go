package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgen/pkg/cache"
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/generator"
	"github.com/matzehuels/roomgen/pkg/pipeline"
	"github.com/matzehuels/roomgen/pkg/render"
	"github.com/matzehuels/roomgen/pkg/store"
)

// =============================================================================
// Config File
// =============================================================================

// Config is the TOML profile. Values apply wherever the matching flag was
// not given on the command line.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Render   RenderConfig   `toml:"render"`
	Cache    CacheConfig    `toml:"cache"`
	Store    StoreConfig    `toml:"store"`
	Server   ServerConfig   `toml:"server"`
}

// GenerateConfig holds generation defaults. The seed is always per run.
type GenerateConfig struct {
	Height        int      `toml:"height,omitempty"`
	Width         int      `toml:"width,omitempty"`
	Density       float64  `toml:"density,omitempty"`
	Retries       int      `toml:"retries,omitempty"`
	RoomMin       float64  `toml:"room_min,omitempty"`
	RoomMax       float64  `toml:"room_max,omitempty"`
	LShapeChance  *float64 `toml:"l_shape_chance,omitempty"`
	FurnishChance float64  `toml:"furnish_chance,omitempty"`
	NoEntrances   bool     `toml:"no_entrances,omitempty"`
	Parallel      bool     `toml:"parallel,omitempty"`
}

// RenderConfig holds output defaults.
type RenderConfig struct {
	Formats  []string `toml:"formats,omitempty"`
	CellSize int      `toml:"cell_size,omitempty"`
	Glyphs   bool     `toml:"glyphs,omitempty"`
	Outlines bool     `toml:"outlines,omitempty"`
	Labels   bool     `toml:"labels,omitempty"`
}

// CacheConfig selects the artifact cache: file (default), redis or none.
type CacheConfig struct {
	Backend string            `toml:"backend"`
	Dir     string            `toml:"dir,omitempty"`
	Redis   cache.RedisConfig `toml:"redis"`
}

// StoreConfig selects the dungeon store: file (default), memory or mongo.
type StoreConfig struct {
	Backend string            `toml:"backend"`
	Dir     string            `toml:"dir,omitempty"`
	Mongo   store.MongoConfig `toml:"mongo"`
}

// ServerConfig configures `roomgen serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// Timeout bounds each request, as a Go duration string.
	Timeout string `toml:"timeout"`
}

// Server defaults.
const (
	defaultAddr    = "127.0.0.1:8080"
	defaultTimeout = "30s"
)

// DefaultConfig returns the profile written by `config init`.
func DefaultConfig() *Config {
	d := generator.DefaultOptions(0)
	lShape := d.LShapeChance
	return &Config{
		Generate: GenerateConfig{
			Height:        d.Height,
			Width:         d.Width,
			Density:       d.Density,
			Retries:       d.Retries,
			RoomMin:       d.RoomMin,
			RoomMax:       d.RoomMax,
			LShapeChance:  &lShape,
			FurnishChance: d.FurnishChance,
		},
		Render: RenderConfig{
			Formats:  []string{pipeline.DefaultFormat},
			CellSize: render.DefaultCellSize,
		},
		Cache: CacheConfig{
			Backend: backendFile,
			Redis:   cache.RedisConfig{Addr: "localhost:6379", Prefix: cache.DefaultRedisPrefix},
		},
		Store: StoreConfig{
			Backend: backendFile,
			Mongo: store.MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   store.DefaultMongoDatabase,
				Collection: store.DefaultMongoCollection,
			},
		},
		Server: ServerConfig{Addr: defaultAddr, Timeout: defaultTimeout},
	}
}

// LoadConfig decodes path over the defaults. Unknown keys and unknown
// backends are rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backend names, formats and the server timeout.
func (c *Config) Validate() error {
	if !slices.Contains([]string{"", backendFile, backendRedis, backendNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if !slices.Contains([]string{"", backendFile, backendMemory, backendMongo}, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	for _, f := range c.Render.Formats {
		if err := errors.ValidateFormat(f, pipeline.Formats); err != nil {
			return err
		}
	}
	if _, err := c.Server.timeout(); err != nil {
		return err
	}
	return nil
}

// WriteConfig encodes c as TOML.
func WriteConfig(w io.Writer, c *Config) error {
	return toml.NewEncoder(w).Encode(c)
}

func (s ServerConfig) timeout() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid server timeout %q", s.Timeout)
	}
	return d, nil
}

// =============================================================================
// Flag Merging
// =============================================================================

// applyGenerate copies generation values into o for every flag the user
// did not set. lShape is the --l-shape flag value.
func (g GenerateConfig) applyGenerate(cmd *cobra.Command, o *pipeline.Options, lShape float64) {
	unset := func(name string) bool { return !cmd.Flags().Changed(name) }

	if unset("height") && g.Height != 0 {
		o.Height = g.Height
	}
	if unset("width") && g.Width != 0 {
		o.Width = g.Width
	}
	if unset("density") && g.Density != 0 {
		o.Density = g.Density
	}
	if unset("retries") && g.Retries != 0 {
		o.Retries = g.Retries
	}
	if unset("room-min") && g.RoomMin != 0 {
		o.RoomMin = g.RoomMin
	}
	if unset("room-max") && g.RoomMax != 0 {
		o.RoomMax = g.RoomMax
	}
	if unset("furnish") && g.FurnishChance != 0 {
		o.FurnishChance = g.FurnishChance
	}
	o.NoEntrances = o.NoEntrances || (unset("no-entrances") && g.NoEntrances)
	o.Parallel = o.Parallel || (unset("parallel") && g.Parallel)

	switch {
	case !unset("l-shape") || g.LShapeChance == nil:
		o.LShapeChance = &lShape
	default:
		p := *g.LShapeChance
		o.LShapeChance = &p
	}
}

// applyRender copies render values into o for every flag the user did not set.
func (r RenderConfig) applyRender(cmd *cobra.Command, o *pipeline.Options) {
	unset := func(name string) bool { return !cmd.Flags().Changed(name) }

	if unset("format") && len(r.Formats) > 0 {
		o.Formats = slices.Clone(r.Formats)
	}
	if unset("cell-size") && r.CellSize != 0 {
		o.CellSize = r.CellSize
	}
	o.Glyphs = o.Glyphs || (unset("glyphs") && r.Glyphs)
	o.Outlines = o.Outlines || (unset("outlines") && r.Outlines)
	o.Labels = o.Labels || (unset("labels") && r.Labels)
}

// =============================================================================
// Config Command
// =============================================================================

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration profile",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolvedConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}

			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := WriteConfig(f, DefaultConfig()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			printSuccess("Wrote default config")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return WriteConfig(cmd.OutOrStdout(), c.config)
		},
	}
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolvedConfigPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func (c *CLI) resolvedConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return configFilePath()
}
