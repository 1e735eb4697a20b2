package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/chazu/drawerbox/internal/app"
	"github.com/chazu/drawerbox/pkg/joinery"
	"github.com/chazu/drawerbox/pkg/kernel/sdfx"
)

// EnvPrefix prefixes every environment variable the CLI reads, e.g.
// DRAWERBOX_FINGER_WIDTH=1.2.
const EnvPrefix = "DRAWERBOX_"

// ConfigFileNames are looked up in the working directory when --config is
// not given.
var ConfigFileNames = []string{"drawerbox.yaml", "drawerbox.yml"}

// Config is the effective CLI configuration.
type Config struct {
	joinery.Params `koanf:",squash"`

	Kernel      string        `koanf:"kernel"`
	MeshCells   int           `koanf:"mesh_cells"`
	Concurrency int           `koanf:"concurrency"`
	Timeout     time.Duration `koanf:"timeout"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// defaults returns the lowest configuration layer. insertion_notch_depth
// is absent so that it follows thickness_structural unless set.
func defaults() map[string]any {
	p := joinery.DefaultParams()
	return map[string]any{
		"thickness_structural":  p.ThicknessStructural,
		"thickness_insert":      p.ThicknessInsert,
		"finger_width":          p.FingerWidth,
		"margin":                p.Margin,
		"insert_inset":          p.InsertInset,
		"separator_notch_depth": p.SeparatorNotchDepth,
		"saw_relief_radius":     p.SawReliefRadius,
		"air_gap":               p.AirGap,
		"pull_width":            p.PullWidth,
		"pull_height":           p.PullHeight,
		"kernel":                app.BackendSDFX,
		"mesh_cells":            sdfx.DefaultMeshCells,
		"concurrency":           0,
		"timeout":               "5s",
	}
}

// addConfigFlags registers one flag per configuration key, named in
// kebab-case (--finger-width for finger_width).
func addConfigFlags(fs *pflag.FlagSet) {
	p := joinery.DefaultParams()
	fs.Float64("thickness-structural", p.ThicknessStructural, "structural panel thickness")
	fs.Float64("thickness-insert", p.ThicknessInsert, "insert panel thickness")
	fs.Float64("finger-width", p.FingerWidth, "finger joint slot width")
	fs.Float64("margin", p.Margin, "distance from panel edge to the first slot")
	fs.Float64("insert-inset", p.InsertInset, "distance of the bottom/back channel from its edge")
	fs.Float64("insertion-notch-depth", 0, "channel depth (default half the structural thickness)")
	fs.Float64("separator-notch-depth", p.SeparatorNotchDepth, "separator notch depth")
	fs.Float64("saw-relief-radius", p.SawReliefRadius, "saw blade radius for separator notch runout")
	fs.Float64("air-gap", p.AirGap, "clearance around each drawer")
	fs.Float64("pull-width", p.PullWidth, "finger pull width")
	fs.Float64("pull-height", p.PullHeight, "finger pull height")
	fs.String("kernel", app.BackendSDFX, "geometry backend: sdfx or manifold")
	fs.Int("mesh-cells", sdfx.DefaultMeshCells, "marching cubes resolution for --mesh")
	fs.Int("concurrency", 0, "panels meshed at once (0 = GOMAXPROCS)")
	fs.String("timeout", "5s", "script evaluation timeout")
}

// findConfigFile returns explicit, or the first of ConfigFileNames present
// in dir, or "".
func findConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range ConfigFileNames {
		path := name
		if dir != "" {
			path = dir + string(os.PathSeparator) + name
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadConfig layers defaults, the config file, DRAWERBOX_ environment
// variables, and explicitly set flags, in increasing precedence, then
// validates the joinery constants.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile, "")
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// DRAWERBOX_FINGER_WIDTH -> finger_width
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" || f.Name == "verbose" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used
	if cfg.InsertionNotchDepth == 0 {
		cfg.InsertionNotchDepth = cfg.ThicknessStructural / 2
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if cfg.MeshCells < 1 {
		return nil, fmt.Errorf("%w: mesh_cells is %d, must be positive", joinery.ErrInvalidConfiguration, cfg.MeshCells)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout is %s, must be positive", joinery.ErrInvalidConfiguration, cfg.Timeout)
	}
	return &cfg, nil
}

func withConfig(ctx context.Context, c *Config) context.Context {
	return context.WithValue(ctx, configKey, c)
}

// configFromContext returns the loaded config, or the defaults when none
// was attached.
func configFromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey).(*Config); ok {
		return c
	}
	return &Config{Params: joinery.DefaultParams(), Kernel: app.BackendSDFX, MeshCells: sdfx.DefaultMeshCells, Timeout: 5 * time.Second}
}
