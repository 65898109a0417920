// pkg/api/report_v1.go
package api

// ReportV1 is the stable JSON/YAML schema for a rugate run.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ReportV1 struct {
	Design   DesignV1    `json:"design" yaml:"design"`
	Sweep    *SweepV1    `json:"sweep,omitempty" yaml:"sweep,omitempty"`
	Variants []VariantV1 `json:"variants" yaml:"variants"`
}

// DesignV1 echoes the inputs and the derived quantities.
type DesignV1 struct {
	TargetWavelength float64 `json:"target_wavelength_nm" yaml:"target_wavelength_nm"`
	NumLayers        int     `json:"num_layers" yaml:"num_layers"`
	HighIndex        float64 `json:"high_index" yaml:"high_index"`
	LowIndex         float64 `json:"low_index" yaml:"low_index"`
	SubstrateIndex   float64 `json:"substrate_index" yaml:"substrate_index"`
	AmbientIndex     float64 `json:"ambient_index" yaml:"ambient_index"`
	ApodizationWidth float64 `json:"apodization_width" yaml:"apodization_width"` // fraction of film
	ThicknessMargin  float64 `json:"thickness_margin" yaml:"thickness_margin"`

	AverageIndex   float64 `json:"average_index" yaml:"average_index"`
	Amplitude      float64 `json:"amplitude" yaml:"amplitude"`
	FilmThickness  float64 `json:"film_thickness_nm" yaml:"film_thickness_nm"`
	LayerThickness float64 `json:"layer_thickness_nm" yaml:"layer_thickness_nm"`
}

type SweepV1 struct {
	Start   float64 `json:"start_nm" yaml:"start_nm"`
	Stop    float64 `json:"stop_nm" yaml:"stop_nm"`
	Samples int     `json:"samples" yaml:"samples"`
}

type VariantV1 struct {
	Kind        string           `json:"kind" yaml:"kind"` // "simple" | "apodized"
	Label       string           `json:"label" yaml:"label"`
	Profile     []ProfilePointV1 `json:"profile,omitempty" yaml:"profile,omitempty"`
	Layers      []LayerV1        `json:"layers,omitempty" yaml:"layers,omitempty"`
	Reflectance []SampleV1       `json:"reflectance,omitempty" yaml:"reflectance,omitempty"`
	Summary     *SummaryV1       `json:"summary,omitempty" yaml:"summary,omitempty"`
}

type ProfilePointV1 struct {
	Variant string  `json:"variant,omitempty" yaml:"variant,omitempty"` // set on JSONL lines only
	Depth   float64 `json:"depth_nm" yaml:"depth_nm"`
	Index   float64 `json:"index" yaml:"index"`
}

// LayerV1 is one medium of the stack. Semi-infinite media have no thickness.
type LayerV1 struct {
	Variant      string   `json:"variant,omitempty" yaml:"variant,omitempty"` // set on JSONL lines only
	Position     int      `json:"position" yaml:"position"`
	Index        float64  `json:"index" yaml:"index"`
	Extinction   float64  `json:"k,omitempty" yaml:"k,omitempty"`
	Thickness    *float64 `json:"thickness_nm,omitempty" yaml:"thickness_nm,omitempty"`
	SemiInfinite bool     `json:"semi_infinite,omitempty" yaml:"semi_infinite,omitempty"`
}

type SampleV1 struct {
	Variant    string  `json:"variant,omitempty" yaml:"variant,omitempty"` // set on JSONL lines only
	Wavelength float64 `json:"wavelength_nm" yaml:"wavelength_nm"`
	R          float64 `json:"R" yaml:"R"`
}

type SummaryV1 struct {
	PeakR          float64 `json:"peak_R" yaml:"peak_R"`
	PeakWavelength float64 `json:"peak_wavelength_nm" yaml:"peak_wavelength_nm"`
	FWHM           float64 `json:"fwhm_nm" yaml:"fwhm_nm"`
	LowerEdge      float64 `json:"lower_edge_nm" yaml:"lower_edge_nm"`
	UpperEdge      float64 `json:"upper_edge_nm" yaml:"upper_edge_nm"`
	MaxSidelobe    float64 `json:"max_sidelobe_R" yaml:"max_sidelobe_R"`
	MeanR          float64 `json:"mean_R" yaml:"mean_R"`
}
