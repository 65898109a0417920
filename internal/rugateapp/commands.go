// internal/rugateapp/commands.go
package rugateapp

import (
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"rugate/core/design"
	"rugate/core/spectrum"
	"rugate/core/tmm"
	"rugate/internal/config"
	"rugate/internal/jsonutil"
	"rugate/internal/logging"
	"rugate/internal/pipeline"
	"rugate/internal/plotting"
	"rugate/internal/version"
	"rugate/internal/writers"
)

// env is the state shared by the commands of one invocation.
type env struct {
	opts *config.Options
	out  io.Writer // buffered stdout
	err  io.Writer
	tty  io.Writer // raw stdout, for terminal detection
	log  logr.Logger
}

func newRootCommand(out, stderr, tty io.Writer) *cobra.Command {
	e := &env{opts: config.NewOptions(), out: out, err: stderr, tty: tty, log: logr.Discard()}

	root := &cobra.Command{
		Use:   "rugate",
		Short: "Compare simple and apodized rugate notch filters",
		Long: `rugate designs a sinusoidal refractive-index (rugate) notch filter and a
Gaussian-apodized variant, discretizes both into thin layers, computes their
normal-incidence reflectance with the transfer-matrix method and plots the
profiles and spectra side by side.

Every flag can also be set in a YAML config file or through a RUGATE_* environment
variable (dashes become underscores, e.g. RUGATE_WL_SAMPLES).`,
		Example: `  rugate
  rugate --layers 40 --apodization-width 0.15 --plot filters.svg
  rugate -o tsv --plot "" | head
  rugate profile -o json
  rugate stack --layers 8`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              noArgs,
		PersistentPreRunE: e.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runCompare(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return asUsage(err) })

	e.opts.AddGlobalFlags(root.PersistentFlags())
	e.opts.AddDesignFlags(root.Flags())
	e.opts.AddRunFlags(root.Flags())
	e.opts.AddOutputFlags(root.Flags())

	root.AddCommand(
		e.newViewCommand(writers.ViewProfile, "profile", "Print the sampled index profiles of both variants"),
		e.newViewCommand(writers.ViewStack, "stack", "Print the layer stacks (index and thickness per medium)"),
		e.newVersionCommand(),
	)
	return root
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		if cmd.HasSubCommands() {
			return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
		}
		return usagef("%s takes no arguments (got %q)", cmd.CommandPath(), strings.Join(args, " "))
	}
	return nil
}

func (e *env) newViewCommand(view writers.View, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runView(view)
		},
	}
	e.opts.AddDesignFlags(cmd.Flags())
	e.opts.AddOutputFlags(cmd.Flags())
	return cmd
}

func (e *env) newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "version",
		Short:         "Print version information",
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			switch strings.ToLower(e.opts.Output) {
			case "json":
				return jsonutil.EncodePretty(e.out, info)
			case "yaml":
				return yaml.NewEncoder(e.out).Encode(info)
			default:
				_, err := io.WriteString(e.out, info.String()+"\n")
				return err
			}
		},
	}
	cmd.Flags().StringVarP(&e.opts.Output, "output", "o", "text", "Output format: text|json|yaml")
	return cmd
}

// setup layers config sources over the parsed flags, validates them and builds
// the logger. It runs before every command.
func (e *env) setup(cmd *cobra.Command, _ []string) error {
	used, err := config.Load(e.opts, cmd.Flags())
	if err != nil {
		return asUsage(err)
	}
	if err := e.opts.Validate(); err != nil {
		return asUsage(err)
	}
	log, err := logging.New(e.opts.LogLevel, e.err)
	if err != nil {
		return asUsage(err)
	}
	e.log = log.WithName(cmd.Name())
	if used != "" {
		e.log.V(1).Info("loaded config file", "path", used)
	}
	return nil
}

func (e *env) derive() (design.Derived, []pipeline.Variant, error) {
	d := e.opts.Design.Derive()
	e.log.V(1).Info("derived design",
		"average_index", d.AverageIndex, "amplitude", d.Amplitude,
		"film_nm", d.FilmThickness, "layer_nm", d.LayerThickness)
	kinds, err := e.opts.ProfileKinds()
	if err != nil {
		return d, nil, asUsage(err)
	}
	vs, err := pipeline.Prepare(d, kinds...)
	if err != nil {
		return d, nil, errors.Wrap(err, "prepare variants")
	}
	return d, vs, nil
}

func (e *env) runView(view writers.View) error {
	d, vs, err := e.derive()
	if err != nil {
		return err
	}
	return e.write(buildReport(view, d, nil, vs, nil))
}

func (e *env) runCompare(cmd *cobra.Command) error {
	d, vs, err := e.derive()
	if err != nil {
		return err
	}
	sweep := e.opts.Sweep
	curves, err := pipeline.Run(cmd.Context(), pipeline.Config{
		Sweep:        sweep,
		Threads:      e.opts.Threads,
		Polarization: tmm.S,
		Log:          e.log,
	}, vs, tmm.Coherent{})
	if err != nil {
		return errors.Wrap(err, "reflectance sweep")
	}
	for _, c := range curves {
		s := spectrum.Summarize(c)
		e.log.Info("spectrum", "variant", c.Label, "peak_R", s.PeakR, "peak_nm", s.PeakWavelength, "fwhm_nm", s.FWHM)
	}

	if e.opts.PlotPath != "" {
		if err := plotting.Save(e.opts.PlotPath, figure(e.opts, vs, curves)); err != nil {
			return errors.Wrapf(err, "plot %s", e.opts.PlotPath)
		}
		e.log.Info("wrote figure", "path", e.opts.PlotPath)
	}
	return e.write(buildReport(writers.ViewSpectrum, d, &sweep, vs, curves))
}

func (e *env) write(r writers.Report) error {
	o := writers.Options{Color: useColor(e.opts.Color, e.tty)}
	if err := writers.Write(e.opts.Output, e.out, r, o); err != nil {
		return errors.Wrapf(err, "write %s", e.opts.Output)
	}
	return nil
}

func buildReport(view writers.View, d design.Derived, sweep *spectrum.Sweep, vs []pipeline.Variant, curves []spectrum.Curve) writers.Report {
	r := writers.Report{View: view, Design: d, Sweep: sweep}
	for i, v := range vs {
		ent := writers.Entry{Kind: v.Kind, Label: v.Label, Profile: v.Profile, Stack: v.Stack}
		if i < len(curves) {
			ent.Curve = &curves[i]
		}
		r.Entries = append(r.Entries, ent)
	}
	return r
}

func figure(o *config.Options, vs []pipeline.Variant, curves []spectrum.Curve) plotting.Figure {
	f := plotting.Figure{Width: o.PlotWidth, Height: o.PlotHeight}
	for _, v := range vs {
		f.Profiles = append(f.Profiles, plotting.Series{Label: v.Label, X: v.Profile.Depth, Y: v.Profile.Index})
	}
	for _, c := range curves {
		f.Spectra = append(f.Spectra, plotting.Series{Label: c.Label, X: c.Wavelengths, Y: c.R})
	}
	return f
}

// useColor resolves --color; "auto" colors only a terminal and honours NO_COLOR.
func useColor(mode string, w io.Writer) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
