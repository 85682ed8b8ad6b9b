package types

// FeatureSet holds the six raw texture/artifact signals extracted from one image.
type FeatureSet struct {
	LaplacianVariance    float64 `json:"laplacian_variance"`
	MoireScore           float64 `json:"moire_score"`
	BrightnessUniformity float64 `json:"brightness_uniformity"`
	ColorSaturation      float64 `json:"color_saturation"`
	ReflectionRatio      float64 `json:"reflection_ratio"`
	FrequencyArtifacts   float64 `json:"frequency_artifacts"`
}

type SpoofType string

const (
	RealFace             SpoofType = "real_face"
	PrintedPhotoOrScreen SpoofType = "printed_photo_or_screen"
	ScreenDisplay        SpoofType = "screen_display"
	CompressedOrVideo    SpoofType = "compressed_or_video"
	EncodingArtifacts    SpoofType = "encoding_artifacts"
	VideoReplay          SpoofType = "video_replay"
	Unknown              SpoofType = "unknown"
)

// SpoofResult is the fused verdict for a single image.
type SpoofResult struct {
	Score      float64    `json:"score"`
	IsReal     bool       `json:"is_real"`
	Threshold  float64    `json:"threshold"`
	SpoofType  SpoofType  `json:"spoof_type"`
	Confidence float64    `json:"confidence"`
	Details    FeatureSet `json:"details"`
}

// TemporalResult describes how much the high-frequency structure of a frame
// burst changes from one frame to the next.
type TemporalResult struct {
	PerPairCorrelation []float64 `json:"per_pair_correlations"`
	AverageCorrelation float64   `json:"average_correlation"`
	IsStatic           bool      `json:"is_static"`
	FramesUsed         int       `json:"frames_used"`
	InsufficientFrames bool      `json:"insufficient_frames"`
}

// SessionResult combines a single-frame verdict with the temporal check of the
// burst it was captured in.
type SessionResult struct {
	IsReal   bool           `json:"is_real"`
	Spoof    SpoofResult    `json:"spoof"`
	Temporal TemporalResult `json:"temporal"`
	Reasons  []string       `json:"reasons,omitempty"`
}

type CalibrationLabel string

const (
	LabelReal  CalibrationLabel = "real"
	LabelSpoof CalibrationLabel = "spoof"
)

func (l CalibrationLabel) Valid() bool {
	return l == LabelReal || l == LabelSpoof
}

type SampleCorrelation struct {
	Label              CalibrationLabel `json:"label" bson:"label"`
	AverageCorrelation float64          `json:"average_correlation" bson:"averageCorrelation"`
	FramesUsed         int              `json:"frames_used" bson:"framesUsed"`
}

// CalibrationResult summarises a labelled calibration run. The means and the
// recommendation are nil when the corresponding label class had no samples.
type CalibrationResult struct {
	PerSample            []SampleCorrelation `json:"per_sample"`
	RealCount            int                 `json:"real_count"`
	SpoofCount           int                 `json:"spoof_count"`
	MeanReal             *float64            `json:"mean_real"`
	MeanSpoof            *float64            `json:"mean_spoof"`
	RecommendedThreshold *float64            `json:"recommended_threshold"`
	Warnings             []string            `json:"warnings,omitempty"`
}
