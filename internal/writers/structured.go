package writers

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"rugate/internal/jsonutil"
	"rugate/pkg/api"
)

func init() {
	Register("json", writeJSON)
	Register("jsonl", writeJSONL)
	Register("yaml", writeYAML)
}

func writeJSON(w io.Writer, r Report, _ Options) error {
	return jsonutil.EncodePretty(w, ToAPI(r))
}

// writeJSONL emits one record per line: samples for the spectrum view, profile
// points or layers otherwise. Every line names its variant.
func writeJSONL(w io.Writer, r Report, _ Options) error {
	switch r.View {
	case ViewProfile:
		var rows []api.ProfilePointV1
		for _, e := range r.Entries {
			rows = append(rows, profilePoints(e, string(e.Kind))...)
		}
		return jsonutil.EncodeLines(w, rows)
	case ViewStack:
		var rows []api.LayerV1
		for _, e := range r.Entries {
			rows = append(rows, layers(e, string(e.Kind))...)
		}
		return jsonutil.EncodeLines(w, rows)
	default:
		var rows []api.SampleV1
		for _, e := range r.Entries {
			rows = append(rows, samples(e, string(e.Kind))...)
		}
		return jsonutil.EncodeLines(w, rows)
	}
}

// writeYAML encodes into memory first: the yaml encoder flattens write errors
// into strings, which would hide a broken pipe.
func writeYAML(w io.Writer, r Report, _ Options) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToAPI(r)); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
