// Package config defines the flag plumbing and runtime options shared by the
// rugate commands, layering defaults, a YAML config file, RUGATE_* environment
// variables and command-line flags (highest precedence) into one typed struct.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"rugate/core/design"
	"rugate/core/profile"
	"rugate/core/spectrum"
)

// EnvPrefix is prepended to flag names (dashes become underscores) for env lookup.
const EnvPrefix = "RUGATE"

// Output formats understood by the writers.
var Formats = []string{"text", "tsv", "csv", "json", "jsonl", "yaml"}

// Color modes.
var ColorModes = []string{"auto", "always", "never"}

// Options holds all CLI configuration.
type Options struct {
	Design design.Params
	Kinds  []string // profile variants, in presentation order
	Sweep  spectrum.Sweep

	Threads int

	Output     string
	PlotPath   string
	PlotWidth  float64 // inches
	PlotHeight float64 // inches

	LogLevel   string
	Color      string
	ConfigFile string
}

// NewOptions returns the reference configuration.
func NewOptions() *Options {
	return &Options{
		Design:     design.Default(),
		Kinds:      []string{string(profile.KindSimple), string(profile.KindApodized)},
		Sweep:      spectrum.DefaultSweep(),
		Threads:    1,
		Output:     "text",
		PlotPath:   "rugate.png",
		PlotWidth:  12,
		PlotHeight: 6,
		LogLevel:   "info",
		Color:      "auto",
	}
}

// AddDesignFlags registers the design and sweep parameters.
func (o *Options) AddDesignFlags(fs *pflag.FlagSet) {
	d := &o.Design
	fs.Float64Var(&d.TargetWavelength, "target-wavelength", d.TargetWavelength, "Design (notch) wavelength in nm")
	fs.IntVar(&d.NumLayers, "layers", d.NumLayers, "Number of discrete layers sampling the film")
	fs.Float64Var(&d.HighIndex, "high-index", d.HighIndex, "Refractive index of the high-index material")
	fs.Float64Var(&d.LowIndex, "low-index", d.LowIndex, "Refractive index of the low-index material")
	fs.Float64Var(&d.SubstrateIndex, "substrate-index", d.SubstrateIndex, "Refractive index of the substrate")
	fs.Float64Var(&d.AmbientIndex, "ambient-index", d.AmbientIndex, "Refractive index of the incidence medium")
	fs.Float64Var(&d.ApodizationWidth, "apodization-width", d.ApodizationWidth, "Gaussian apodization width as a fraction of film thickness")
	fs.Float64Var(&d.ThicknessMargin, "thickness-margin", d.ThicknessMargin, "Relative margin added to the quarter-wave film thickness")

	fs.StringSliceVar(&o.Kinds, "kinds", o.Kinds, "Profile variants to build, in order: simple,apodized")

	s := &o.Sweep
	fs.Float64Var(&s.Start, "wl-start", s.Start, "First wavelength of the sweep in nm")
	fs.Float64Var(&s.Stop, "wl-stop", s.Stop, "Last wavelength of the sweep in nm")
	fs.IntVar(&s.Samples, "wl-samples", s.Samples, "Number of wavelengths in the sweep (endpoints included)")
}

// AddRunFlags registers evaluation and presentation flags.
func (o *Options) AddRunFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.Threads, "threads", o.Threads, "Wavelengths evaluated concurrently (1 = sequential)")
	fs.StringVar(&o.PlotPath, "plot", o.PlotPath, "Write the two-panel figure to this .png or .svg file (empty disables)")
	fs.Float64Var(&o.PlotWidth, "plot-width", o.PlotWidth, "Figure width in inches")
	fs.Float64Var(&o.PlotHeight, "plot-height", o.PlotHeight, "Figure height in inches")
}

// AddOutputFlags registers the stdout format and terminal flags.
func (o *Options) AddOutputFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Output format: "+strings.Join(Formats, "|"))
	fs.StringVar(&o.Color, "color", o.Color, "Colorize text output: "+strings.Join(ColorModes, "|"))
}

// AddGlobalFlags registers flags shared by every command.
func (o *Options) AddGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Config file (default: rugate.yaml in . or $XDG_CONFIG_HOME/rugate; env "+EnvPrefix+"_CONFIG)")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level: debug|info|warn|error")
}

// Load fills every flag the user did not set explicitly from the environment or
// the config file, and returns the config file it read ("" when none).
// An explicitly named config file must exist.
func Load(o *Options, flagSets ...*pflag.FlagSet) (string, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	explicit := strings.TrimSpace(o.ConfigFile)
	if explicit == "" {
		explicit = strings.TrimSpace(os.Getenv(EnvPrefix + "_CONFIG"))
	}
	if expanded, err := homedir.Expand(explicit); err == nil {
		explicit = expanded
	}
	configureConfigFile(v, explicit)
	used, err := readConfigFile(v, explicit != "")
	if err != nil {
		return "", fmt.Errorf("read config: %w", err)
	}

	for _, fs := range flagSets {
		if fs == nil {
			continue
		}
		if err := v.BindPFlags(fs); err != nil {
			return "", err
		}
	}
	var errs []error
	for _, fs := range flagSets {
		if fs == nil {
			continue
		}
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
				return
			}
			val := fmt.Sprintf("%v", v.Get(f.Name))
			if f.Value.Type() == "stringSlice" {
				val = strings.Join(v.GetStringSlice(f.Name), ",")
			}
			if val == "" {
				return
			}
			if err := f.Value.Set(val); err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid value %q: %w", f.Name, val, err))
			}
		})
	}
	return used, errors.Join(errs...)
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("rugate")
	v.SetConfigType("yaml")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) (string, error) {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return "", nil
		}
		return "", err
	}
	return v.ConfigFileUsed(), nil
}

func configSearchDirs() []string {
	added := make(map[string]struct{})
	var dirs []string
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := added[path]; ok {
			return
		}
		added[path] = struct{}{}
		dirs = append(dirs, path)
	}
	add(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		add(filepath.Join(xdg, "rugate"))
	}
	if home, err := homedir.Dir(); err == nil {
		add(filepath.Join(home, ".config", "rugate"))
	}
	return dirs
}

// Validate checks the combined options.
func (o *Options) Validate() error {
	if err := o.Design.Validate(); err != nil {
		return err
	}
	if _, err := o.ProfileKinds(); err != nil {
		return err
	}
	if err := o.Sweep.Validate(); err != nil {
		return err
	}
	if o.Threads < 1 {
		return fmt.Errorf("--threads must be >= 1 (got %d)", o.Threads)
	}
	if !contains(Formats, strings.ToLower(o.Output)) {
		return fmt.Errorf("--output must be one of %s (got %q)", strings.Join(Formats, ", "), o.Output)
	}
	if !contains(ColorModes, strings.ToLower(o.Color)) {
		return fmt.Errorf("--color must be one of %s (got %q)", strings.Join(ColorModes, ", "), o.Color)
	}
	if o.PlotPath != "" {
		switch strings.ToLower(filepath.Ext(o.PlotPath)) {
		case ".png", ".svg":
		default:
			return fmt.Errorf("--plot must end in .png or .svg (got %q)", o.PlotPath)
		}
		if !(o.PlotWidth > 0) || !(o.PlotHeight > 0) {
			return fmt.Errorf("--plot-width and --plot-height must be > 0")
		}
	}
	return nil
}

// ProfileKinds parses --kinds. At least one kind is required and none may repeat.
func (o *Options) ProfileKinds() ([]profile.Kind, error) {
	if len(o.Kinds) == 0 {
		return nil, fmt.Errorf("--kinds must name at least one of %s", kindNames())
	}
	out := make([]profile.Kind, 0, len(o.Kinds))
	seen := make(map[profile.Kind]bool, len(o.Kinds))
	for _, s := range o.Kinds {
		k, err := profile.ParseKind(s)
		if err != nil {
			return nil, fmt.Errorf("--kinds: %w", err)
		}
		if seen[k] {
			return nil, fmt.Errorf("--kinds: %s listed twice", k)
		}
		seen[k] = true
		out = append(out, k)
	}
	return out, nil
}

func kindNames() string {
	names := make([]string, len(profile.Kinds))
	for i, k := range profile.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
