// Package config provides configuration loading and access for the background effects.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all effect and host configuration parameters.
type Config struct {
	Screen    ScreenConfig             `yaml:"screen"`
	Manager   ManagerConfig            `yaml:"manager"`
	Telemetry TelemetryConfig          `yaml:"telemetry"`
	Minimal   MinimalConfig            `yaml:"minimal"`
	Starfield StarfieldConfig          `yaml:"starfield"`
	Nature    NatureConfig             `yaml:"nature"`
	Synthwave SynthwaveConfig          `yaml:"synthwave"`
	Terrains  map[string]TerrainConfig `yaml:"terrains"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings for the raylib host.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
	Page      Color  `yaml:"page"` // Colour behind all layers
}

// ManagerConfig holds effect selection settings.
type ManagerConfig struct {
	Breakpoint    int    `yaml:"breakpoint"`     // Viewport width below which nothing is mounted
	DefaultEffect string `yaml:"default_effect"` // Used when no preference is stored
	PreferenceKey string `yaml:"preference_key"` // Storage key for the selected effect
	AppName       string `yaml:"app_name"`       // gdata application name
}

// TelemetryConfig holds frame timing parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // Frames kept per effect
	LogInterval float64 `yaml:"log_interval"` // Seconds between perf log lines (0 = off)
}

// MinimalConfig holds the minimalist particle field parameters.
type MinimalConfig struct {
	Background Color   `yaml:"background"`
	Star       Color   `yaml:"star"`
	Count      int     `yaml:"count"`   // Fixed count when density is 0
	Density    float64 `yaml:"density"` // Viewport pixels per point (0 = use count)
	MaxRadius  float64 `yaml:"max_radius"`
	MinSpeed   float64 `yaml:"min_speed"`
	SpeedRange float64 `yaml:"speed_range"`
}

// StarfieldConfig holds the twinkling star layer parameters.
type StarfieldConfig struct {
	Count         int     `yaml:"count"`
	HeightFrac    float64 `yaml:"height_frac"` // Fraction of the viewport covered from the top
	MinSize       float64 `yaml:"min_size"`
	SizeRange     float64 `yaml:"size_range"`
	MinPeriod     float64 `yaml:"min_period"` // Seconds per twinkle cycle
	PeriodRange   float64 `yaml:"period_range"`
	MaxDelay      float64 `yaml:"max_delay"`
	FlickerChance float64 `yaml:"flicker_chance"` // Per-frame chance to re-roll brightness
	Color         Color   `yaml:"color"`
}

// NatureConfig holds the layered landscape scene parameters.
type NatureConfig struct {
	Sky       SkyConfig       `yaml:"sky"`
	Sun       SunConfig       `yaml:"sun"`
	Rain      RainConfig      `yaml:"rain"`
	Stars     StarfieldConfig `yaml:"stars"`
	Landscape LandscapeConfig `yaml:"landscape"`
}

// SkyConfig holds a vertical sky gradient.
type SkyConfig struct {
	Top    Color `yaml:"top"`
	Bottom Color `yaml:"bottom"`
}

// SunConfig holds sun renderer parameters.
type SunConfig struct {
	Radius      float64 `yaml:"radius"`
	Glow        float64 `yaml:"glow"`
	PulseSpeed  float64 `yaml:"pulse_speed"`  // Pulse phase advance per frame
	PulseAmount float64 `yaml:"pulse_amount"` // Relative pulse amplitude
	Rays        int     `yaml:"rays"`
	CoronaRings int     `yaml:"corona_rings"`
}

// RainConfig holds rain layer parameters.
type RainConfig struct {
	Density     float64 `yaml:"density"` // Viewport pixels per drop
	Color       Color   `yaml:"color"`
	MinLength   float64 `yaml:"min_length"`
	LengthRange float64 `yaml:"length_range"`
	MinSpeed    float64 `yaml:"min_speed"`
	SpeedRange  float64 `yaml:"speed_range"`
	MinAlpha    float64 `yaml:"min_alpha"`
	AlphaRange  float64 `yaml:"alpha_range"`
}

// LandscapeConfig holds procedural landscape generation parameters.
type LandscapeConfig struct {
	HeightFrac  float64       `yaml:"height_frac"` // Landscape layer height relative to the viewport
	GrassTop    float64       `yaml:"grass_top"`   // Grass band start relative to the layer
	MinSpacing  float64       `yaml:"min_spacing"` // Base spacing; objects scale it
	Attempts    int           `yaml:"attempts"`    // Rejection sampling cap per object
	GrassBlades int           `yaml:"grass_blades"`
	Flowers     int           `yaml:"flowers"`
	Houses      ObjectConfig  `yaml:"houses"`
	Trees       ObjectConfig  `yaml:"trees"`
	Bushes      ObjectConfig  `yaml:"bushes"`
	Palette     ScenePalette  `yaml:"palette"`
	Ridges      []RidgeConfig `yaml:"ridges"`
}

// ObjectConfig holds placement rules for one scenery kind.
type ObjectConfig struct {
	Min     int      `yaml:"min"`
	Max     int      `yaml:"max"`
	Spacing float64  `yaml:"spacing"` // Multiplier on min_spacing
	Margin  float64  `yaml:"margin"`  // Horizontal margin from the layer edges
	Avoid   []string `yaml:"avoid"`   // Kinds this object keeps its spacing from
}

// RidgeConfig describes one mountain band.
type RidgeConfig struct {
	Top      float64 `yaml:"top"`    // Band top relative to the layer height
	Height   float64 `yaml:"height"` // Band height relative to the layer height
	Peaks    int     `yaml:"peaks"`
	Detail   float64 `yaml:"detail"` // Higher is taller, with more shadow
	TopColor Color   `yaml:"top_color"`
	Base     Color   `yaml:"base_color"`
}

// ScenePalette holds scenery colours.
type ScenePalette struct {
	GrassTop    Color      `yaml:"grass_top"`
	GrassBottom Color      `yaml:"grass_bottom"`
	Blade       Color      `yaml:"blade"`
	Walls       []Color    `yaml:"walls"`
	Roofs       []Color    `yaml:"roofs"`
	Foliage     []Color    `yaml:"foliage"`
	Bush        Color      `yaml:"bush"`
	Trunk       Color      `yaml:"trunk"`
	Door        Color      `yaml:"door"`
	Window      Color      `yaml:"window"`
	FlowerHue   [2]float64 `yaml:"flower_hue"` // Hue range in degrees
	FlowerHeart Color      `yaml:"flower_heart"`
}

// SynthwaveConfig holds the decoration drawn around the synthwave grid.
type SynthwaveConfig struct {
	SkyTop      Color   `yaml:"sky_top"`
	SkyBottom   Color   `yaml:"sky_bottom"`
	Floor       Color   `yaml:"floor"`
	SunTop      Color   `yaml:"sun_top"`
	SunBottom   Color   `yaml:"sun_bottom"`
	Glow        Color   `yaml:"glow"`
	HorizonY    float64 `yaml:"horizon_y"`    // Horizon relative to the viewport height
	SunRadius   float64 `yaml:"sun_radius"`   // Relative to the viewport height
	Scanlines   int     `yaml:"scanlines"`    // Horizontal cut-outs across the sun
	StarDensity float64 `yaml:"star_density"` // Viewport pixels per star
}

// TerrainConfig holds one pseudo-3D terrain grid variant.
type TerrainConfig struct {
	Background   Color   `yaml:"background"`
	Low          Color   `yaml:"low"`
	High         Color   `yaml:"high"`
	Peak         Color   `yaml:"peak"`
	Glow         Color   `yaml:"glow"`
	Particle     Color   `yaml:"particle"`
	Rows         int     `yaml:"rows"`
	ColDivisor   float64 `yaml:"col_divisor"` // cols = ceil(width / col_divisor) + col_padding
	ColPadding   int     `yaml:"col_padding"`
	CellSize     float64 `yaml:"cell_size"`
	Amplitude    float64 `yaml:"amplitude"`
	Slope        float64 `yaml:"slope"`
	Speed        float64 `yaml:"speed"` // Flight offset change per frame
	FOV          float64 `yaml:"fov"`
	CameraHeight float64 `yaml:"camera_height"`
	CameraZ      float64 `yaml:"camera_z"`
	Parallax     float64 `yaml:"parallax"` // Camera origin shift toward the pointer
	OriginY      float64 `yaml:"origin_y"` // Camera origin relative to the viewport height
	LineWidth    float64 `yaml:"line_width"`
	FadeNear     float64 `yaml:"fade_near"`      // Rows faded in near the camera
	FadeFarStart float64 `yaml:"fade_far_start"` // Row fraction where the far fade begins
	Diagonals    bool    `yaml:"diagonals"`
	HorizonGlow  bool    `yaml:"horizon_glow"`

	Noise     NoiseConfig    `yaml:"noise"`
	Mouse     MouseConfig    `yaml:"mouse"`
	Pulse     PulseConfig    `yaml:"pulse"`
	Particles ParticleConfig `yaml:"particles"`
}

// NoiseConfig describes a height field as a sum of waves.
type NoiseConfig struct {
	Terms  []NoiseTerm  `yaml:"terms"`
	Detail DetailConfig `yaml:"detail"`
}

// NoiseTerm is amp * wave(fx*x + fz*z + phase), optionally times a modulating wave.
type NoiseTerm struct {
	Amp   float64   `yaml:"amp"`
	FX    float64   `yaml:"fx"`
	FZ    float64   `yaml:"fz"`
	Phase float64   `yaml:"phase"`
	Wave  string    `yaml:"wave"` // "sin" or "cos"
	Mod   *NoiseMod `yaml:"mod,omitempty"`
}

// NoiseMod is a modulating wave multiplied into a term.
type NoiseMod struct {
	FX    float64 `yaml:"fx"`
	FZ    float64 `yaml:"fz"`
	Phase float64 `yaml:"phase"`
	Wave  string  `yaml:"wave"`
}

// DetailConfig adds seeded simplex detail to a height field (amp 0 = off).
type DetailConfig struct {
	Amp   float64 `yaml:"amp"`
	Scale float64 `yaml:"scale"`
	Seed  int64   `yaml:"seed"`
}

// MouseConfig holds pointer distortion parameters.
type MouseConfig struct {
	Radius float64 `yaml:"radius"`
	Force  float64 `yaml:"force"`
	Smooth float64 `yaml:"smooth"` // Exponential smoothing factor per frame
	Mode   string  `yaml:"mode"`   // "sine" (push ring) or "cosine" (bulge)
}

// PulseConfig holds click pulse parameters.
type PulseConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Speed     float64 `yaml:"speed"` // Radius growth per frame
	Force     float64 `yaml:"force"`
	Decay     float64 `yaml:"decay"` // Strength multiplier per frame
	Width     float64 `yaml:"width"` // Ring band half-width
	Threshold float64 `yaml:"threshold"`
}

// ParticleConfig holds the floating 3D particle cloud.
type ParticleConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Count    int     `yaml:"count"`
	Speed    float64 `yaml:"speed"`
	Parallax float64 `yaml:"parallax"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TerrainNames []string // Sorted keys of Terrains
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file. Terrain entries are replaced whole.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Terrain returns the named terrain variant.
func (c *Config) Terrain(name string) (TerrainConfig, bool) {
	t, ok := c.Terrains[name]
	return t, ok
}

func (c *Config) validate() error {
	if c.Manager.Breakpoint < 0 {
		return fmt.Errorf("manager.breakpoint must be >= 0, got %d", c.Manager.Breakpoint)
	}
	for name, t := range c.Terrains {
		if t.Pulse.Enabled && (t.Pulse.Decay <= 0 || t.Pulse.Decay >= 1) {
			return fmt.Errorf("terrains.%s.pulse.decay must be in (0, 1), got %g", name, t.Pulse.Decay)
		}
		if t.Pulse.Enabled && t.Pulse.Threshold <= 0 {
			return fmt.Errorf("terrains.%s.pulse.threshold must be > 0, got %g", name, t.Pulse.Threshold)
		}
		if t.Rows < 0 {
			return fmt.Errorf("terrains.%s.rows must be >= 0, got %d", name, t.Rows)
		}
		if t.ColDivisor <= 0 {
			return fmt.Errorf("terrains.%s.col_divisor must be > 0, got %g", name, t.ColDivisor)
		}
		for i, term := range t.Noise.Terms {
			if !validWave(term.Wave) || (term.Mod != nil && !validWave(term.Mod.Wave)) {
				return fmt.Errorf("terrains.%s.noise.terms[%d]: unknown wave", name, i)
			}
		}
	}
	return nil
}

func validWave(w string) bool {
	return w == "" || w == "sin" || w == "cos"
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TerrainNames = c.Derived.TerrainNames[:0]
	for name := range c.Terrains {
		c.Derived.TerrainNames = append(c.Derived.TerrainNames, name)
	}
	sort.Strings(c.Derived.TerrainNames)

	// Missing palette lists would make object colour picks panic.
	p := &c.Nature.Landscape.Palette
	if len(p.Walls) == 0 {
		p.Walls = []Color{MustColor("#8b4513")}
	}
	if len(p.Roofs) == 0 {
		p.Roofs = []Color{MustColor("#a0522d")}
	}
	if len(p.Foliage) == 0 {
		p.Foliage = []Color{MustColor("#228b22")}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
