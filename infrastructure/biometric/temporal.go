package biometric

import (
	"fmt"
	"math"

	"facegate.io/infrastructure/biometric/types"
	"facegate.io/infrastructure/logger"
)

// TemporalAnalyzer flags bursts whose high-frequency structure barely changes
// between frames. A live subject always adds some micro-motion and sensor
// noise; a print or a frozen frame does not.
type TemporalAnalyzer struct {
	Config TemporalConfig
}

func NewTemporalAnalyzer(cfg TemporalConfig) *TemporalAnalyzer {
	return &TemporalAnalyzer{Config: cfg}
}

// NeutralTemporalResult is returned when fewer than two usable frames remain.
// It must not be read as a spoof signal.
func NeutralTemporalResult(framesUsed int) types.TemporalResult {
	return types.TemporalResult{
		PerPairCorrelation: []float64{},
		AverageCorrelation: 1.0,
		IsStatic:           false,
		FramesUsed:         framesUsed,
		InsufficientFrames: true,
	}
}

// Analyze uses the configured static threshold.
func (t *TemporalAnalyzer) Analyze(frames []*ImageBuffer) types.TemporalResult {
	return t.AnalyzeWithThreshold(frames, t.Config.StaticThreshold)
}

// AnalyzeWithThreshold correlates consecutive edge maps of the newest
// MaxFrames frames. Frames that fail validation or resampling are dropped.
func (t *TemporalAnalyzer) AnalyzeWithThreshold(frames []*ImageBuffer, staticThreshold float64) types.TemporalResult {
	maps, err := t.edgeMaps(frames)
	if err != nil {
		logger.Warning("temporal analysis degraded to neutral result", logger.LoggerOptions{
			Key:  "error",
			Data: err.Error(),
		})
		return NeutralTemporalResult(len(maps))
	}

	pairs := make([]float64, 0, len(maps)-1)
	sum := 0.0
	for i := 1; i < len(maps); i++ {
		c := correlate(maps[i-1], maps[i], t.Config.CorrelationStride, t.Config.Epsilon)
		pairs = append(pairs, c)
		sum += c
	}
	avg := sum / float64(len(pairs))

	return types.TemporalResult{
		PerPairCorrelation: pairs,
		AverageCorrelation: avg,
		IsStatic:           avg > staticThreshold,
		FramesUsed:         len(maps),
	}
}

func (t *TemporalAnalyzer) edgeMaps(frames []*ImageBuffer) ([][]float64, error) {
	if len(frames) > t.Config.MaxFrames {
		frames = frames[len(frames)-t.Config.MaxFrames:]
	}

	maps := make([][]float64, 0, len(frames))
	for i, frame := range frames {
		small, err := Resample(frame, t.Config.Width, t.Config.Height)
		if err != nil {
			logger.Warning("dropping frame from burst", logger.LoggerOptions{
				Key:  "frame",
				Data: i,
			}, logger.LoggerOptions{
				Key:  "error",
				Data: err.Error(),
			})
			continue
		}
		maps = append(maps, laplacianResponses(small))
	}

	if len(maps) < t.Config.MinFrames {
		return maps, fmt.Errorf("%w: %d usable of %d supplied", ErrInsufficientFrames, len(maps), len(frames))
	}
	return maps, nil
}

// correlate is the normalised cross-correlation of a and b over every
// stride-th element.
func correlate(a, b []float64, stride int, eps float64) float64 {
	n := min(len(a), len(b))
	var dot, normA, normB float64
	for i := 0; i < n; i += stride {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + eps)
}
