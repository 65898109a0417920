package writers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"syscall"
	"testing"

	"gopkg.in/yaml.v3"

	"rugate/core/design"
	"rugate/core/profile"
	"rugate/core/spectrum"
	"rugate/core/stack"
	"rugate/pkg/api"
)

// sampleReport builds a small report without running the solver: each curve is
// a synthetic peak so the band summary is well defined.
func sampleReport(view View) Report {
	p := design.Default()
	p.NumLayers = 4
	d := p.Derive()
	sw := spectrum.Sweep{Start: 400, Stop: 600, Samples: 5}
	r := Report{View: view, Design: d, Sweep: &sw}
	peaks := map[profile.Kind][]float64{
		profile.KindSimple:   {0.01, 0.2, 0.6, 0.2, 0.01},
		profile.KindApodized: {0.01, 0.2, 0.5, 0.2, 0.01},
	}
	for _, k := range profile.Kinds {
		pr, _ := profile.Generate(k, d)
		c := &spectrum.Curve{Label: k.Label(), Wavelengths: sw.Wavelengths(), R: peaks[k]}
		r.Entries = append(r.Entries, Entry{
			Kind:    k,
			Label:   k.Label(),
			Profile: pr,
			Stack:   stack.Assemble(pr.Index, d.LayerThickness, d.AmbientIndex, d.SubstrateIndex),
			Curve:   c,
		})
	}
	return r
}

func render(t *testing.T, format string, r Report, o Options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(format, &buf, r, o); err != nil {
		t.Fatalf("%s: %v", format, err)
	}
	return buf.String()
}

func TestFormatsRegistered(t *testing.T) {
	got := strings.Join(Formats(), ",")
	if got != "csv,json,jsonl,text,tsv,yaml" {
		t.Fatalf("formats = %s", got)
	}
	if err := Write("xml", io.Discard, sampleReport(ViewSpectrum), Options{}); err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
	if err := Write("JSON", io.Discard, sampleReport(ViewSpectrum), Options{}); err != nil {
		t.Fatalf("format lookup should be case-insensitive: %v", err)
	}
}

func TestTSV_Views(t *testing.T) {
	lines := strings.Split(strings.TrimRight(render(t, "tsv", sampleReport(ViewSpectrum), Options{}), "\n"), "\n")
	if lines[0] != "wavelength_nm\tR_simple\tR_apodized" {
		t.Fatalf("spectrum header = %q", lines[0])
	}
	if len(lines) != 6 || lines[1] != "400\t0.01\t0.01" || lines[3] != "500\t0.6\t0.5" {
		t.Fatalf("spectrum rows = %q", lines)
	}

	lines = strings.Split(strings.TrimRight(render(t, "tsv", sampleReport(ViewProfile), Options{}), "\n"), "\n")
	if lines[0] != "depth_nm\tn_simple\tn_apodized" || len(lines) != 5 {
		t.Fatalf("profile table = %q", lines)
	}
	if !strings.HasPrefix(lines[1], "0\t1.875\t1.875") {
		t.Fatalf("first profile row = %q", lines[1])
	}

	lines = strings.Split(strings.TrimRight(render(t, "tsv", sampleReport(ViewStack), Options{}), "\n"), "\n")
	if lines[0] != "variant\tposition\tn\tk\tthickness_nm" || len(lines) != 1+2*6 {
		t.Fatalf("stack table = %q", lines)
	}
	if lines[1] != "simple\t0\t1\t0\tinf" || lines[6] != "simple\t5\t1.5\t0\tinf" {
		t.Fatalf("stack outer rows = %q / %q", lines[1], lines[6])
	}
}

func TestCSV_Spectrum(t *testing.T) {
	out := render(t, "csv", sampleReport(ViewSpectrum), Options{})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "wavelength_nm,R_simple,R_apodized" {
		t.Fatalf("header = %q", lines[0])
	}
	if len(lines) != 6 {
		t.Fatalf("rows = %d, want 6", len(lines))
	}
	if !strings.HasPrefix(lines[3], "500") {
		t.Fatalf("row 3 = %q", lines[3])
	}
}

func TestCSV_Stack(t *testing.T) {
	out := render(t, "csv", sampleReport(ViewStack), Options{})
	if !strings.HasPrefix(out, "variant,position,n,k,thickness_nm\n") {
		t.Fatalf("header = %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "apodized,5,") {
		t.Fatalf("missing apodized substrate row:\n%s", out)
	}
}

func TestCSV_CellsMatchTSV(t *testing.T) {
	r := sampleReport(ViewSpectrum)
	r.Entries[0].Curve.R = []float64{1.23456789e-7, 0.123456789, 0.6, 0.2, 0.01}
	for _, view := range []View{ViewSpectrum, ViewProfile, ViewStack} {
		t.Run(string(view), func(t *testing.T) {
			r.View = view
			recs, err := csv.NewReader(strings.NewReader(render(t, "csv", r, Options{}))).ReadAll()
			if err != nil {
				t.Fatalf("parse csv: %v", err)
			}
			tsv := strings.Split(strings.TrimRight(render(t, "tsv", r, Options{}), "\n"), "\n")
			if len(recs) != len(tsv) {
				t.Fatalf("csv rows %d, tsv rows %d", len(recs), len(tsv))
			}
			for i, line := range tsv {
				if got, want := strings.Join(recs[i], "\t"), line; got != want {
					t.Fatalf("row %d: csv %q, tsv %q", i, got, want)
				}
			}
		})
	}
	out := render(t, "csv", r, Options{})
	if !strings.Contains(out, "simple,0,1,0,inf") {
		t.Fatalf("stack csv should print semi-infinite media as inf:\n%s", out)
	}
	r.View = ViewSpectrum
	out = render(t, "csv", r, Options{})
	if !strings.Contains(out, "400,1.23456789e-07,0.01") || !strings.Contains(out, "450,0.123456789,0.2") {
		t.Fatalf("csv lost precision:\n%s", out)
	}
}

func TestJSON_Spectrum(t *testing.T) {
	var rep api.ReportV1
	if err := json.Unmarshal([]byte(render(t, "json", sampleReport(ViewSpectrum), Options{})), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Design.NumLayers != 4 || math.Abs(rep.Design.AverageIndex-1.875) > 1e-12 {
		t.Fatalf("design = %+v", rep.Design)
	}
	if rep.Sweep == nil || rep.Sweep.Samples != 5 {
		t.Fatalf("sweep = %+v", rep.Sweep)
	}
	if len(rep.Variants) != 2 || rep.Variants[1].Kind != "apodized" {
		t.Fatalf("variants = %+v", rep.Variants)
	}
	v := rep.Variants[0]
	if len(v.Reflectance) != 5 || v.Summary == nil || v.Summary.PeakWavelength != 500 || v.Summary.PeakR != 0.6 {
		t.Fatalf("simple variant = %+v", v)
	}
	if v.Reflectance[0].Variant != "" {
		t.Fatal("nested samples should not repeat the variant")
	}
	if v.Profile != nil || v.Layers != nil {
		t.Fatal("spectrum view must not include profile or layers")
	}
}

func TestJSON_StackHasNoInfinities(t *testing.T) {
	out := render(t, "json", sampleReport(ViewStack), Options{})
	var rep api.ReportV1
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Sweep != nil {
		t.Fatal("stack view must not echo the sweep")
	}
	ls := rep.Variants[0].Layers
	if len(ls) != 6 {
		t.Fatalf("layers = %d", len(ls))
	}
	if !ls[0].SemiInfinite || ls[0].Thickness != nil || !ls[5].SemiInfinite {
		t.Fatalf("outer media = %+v / %+v", ls[0], ls[5])
	}
	if ls[1].Thickness == nil || math.Abs(*ls[1].Thickness-sampleReport(ViewStack).Design.LayerThickness) > 1e-12 {
		t.Fatalf("interior layer = %+v", ls[1])
	}
}

func TestJSONL_Views(t *testing.T) {
	out := render(t, "jsonl", sampleReport(ViewSpectrum), Options{})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("lines = %d, want 10", len(lines))
	}
	var s api.SampleV1
	if err := json.Unmarshal([]byte(lines[7]), &s); err != nil {
		t.Fatal(err)
	}
	if s.Variant != "apodized" || s.Wavelength != 500 || s.R != 0.5 {
		t.Fatalf("line 7 = %+v", s)
	}

	out = render(t, "jsonl", sampleReport(ViewProfile), Options{})
	if n := strings.Count(out, "\n"); n != 8 {
		t.Fatalf("profile lines = %d, want 8", n)
	}
	out = render(t, "jsonl", sampleReport(ViewStack), Options{})
	if n := strings.Count(out, `"semi_infinite":true`); n != 4 {
		t.Fatalf("semi-infinite media = %d, want 4", n)
	}
}

func TestYAML(t *testing.T) {
	out := render(t, "yaml", sampleReport(ViewProfile), Options{})
	var rep api.ReportV1
	if err := yaml.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rep.Variants) != 2 || len(rep.Variants[0].Profile) != 4 {
		t.Fatalf("yaml report = %+v", rep)
	}
	if !strings.Contains(out, "film_thickness_nm:") {
		t.Fatalf("missing design keys:\n%s", out)
	}
}

func TestText(t *testing.T) {
	out := render(t, "text", sampleReport(ViewSpectrum), Options{})
	for _, want := range []string{"Rugate design", "average index 1.8750", "Simple Sinusoidal", "Apodized Sinusoidal", "PEAK R", "0.6000", "500.0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("text missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("color codes emitted with Color=false")
	}
	if colored := render(t, "text", sampleReport(ViewSpectrum), Options{Color: true}); !strings.Contains(colored, "\x1b[") {
		t.Fatal("expected ANSI codes with Color=true")
	}

	out = render(t, "text", sampleReport(ViewStack), Options{})
	for _, want := range []string{"ambient", "substrate", "∞", "(6 media)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stack text missing %q:\n%s", want, out)
		}
	}
	out = render(t, "text", sampleReport(ViewProfile), Options{})
	if !strings.Contains(out, "DEPTH (nm)") || !strings.Contains(out, "1.87500") {
		t.Fatalf("profile text:\n%s", out)
	}
}

func TestTable_Errors(t *testing.T) {
	if err := Write("tsv", io.Discard, Report{View: ViewSpectrum}, Options{}); err == nil {
		t.Fatal("expected error for empty report")
	}
	r := sampleReport(ViewSpectrum)
	r.Entries[1].Curve = nil
	if err := Write("csv", io.Discard, r, Options{}); err == nil {
		t.Fatal("expected error for missing curve")
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWriteErrorsPropagate(t *testing.T) {
	for _, format := range Formats() {
		err := Write(format, failWriter{syscall.EPIPE}, sampleReport(ViewSpectrum), Options{})
		if !IsBrokenPipe(err) {
			t.Fatalf("%s: want broken pipe, got %v", format, err)
		}
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if !IsBrokenPipe(fmt.Errorf("write: %w", syscall.EPIPE)) || !IsBrokenPipe(io.ErrClosedPipe) {
		t.Fatal("expected broken pipe")
	}
	if IsBrokenPipe(nil) || IsBrokenPipe(errors.New("disk full")) {
		t.Fatal("unexpected broken pipe")
	}
}
