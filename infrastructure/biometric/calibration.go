package biometric

import (
	"context"
	"fmt"
	"runtime"

	"facegate.io/infrastructure/biometric/types"
	"golang.org/x/sync/errgroup"
)

type CalibrationSample struct {
	Label  types.CalibrationLabel
	Frames []*ImageBuffer
}

// CalibrationEngine derives a static-capture threshold from labelled bursts.
// The recommendation is the midpoint of the two class means, which assumes
// both classes have roughly the same spread.
type CalibrationEngine struct {
	Analyzer    *TemporalAnalyzer
	Concurrency int
}

func NewCalibrationEngine(analyzer *TemporalAnalyzer) *CalibrationEngine {
	return &CalibrationEngine{Analyzer: analyzer, Concurrency: runtime.NumCPU()}
}

// Calibrate analyses every sample and aggregates per label. A missing label
// class is reported in Warnings, not as an error. Samples without two usable
// frames keep the neutral 1.0 correlation and skew their class mean upward.
func (c *CalibrationEngine) Calibrate(ctx context.Context, samples []CalibrationSample) (types.CalibrationResult, error) {
	for i, s := range samples {
		if !s.Label.Valid() {
			return types.CalibrationResult{}, fmt.Errorf("%w: sample %d has label %q", ErrInvalidCalibrationLabel, i, s.Label)
		}
	}

	temporal := make([]types.TemporalResult, len(samples))
	g, gctx := errgroup.WithContext(ctx)
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}
	for i := range samples {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			temporal[i] = c.Analyzer.Analyze(samples[i].Frames)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.CalibrationResult{}, err
	}

	return summarise(samples, temporal), nil
}

func summarise(samples []CalibrationSample, temporal []types.TemporalResult) types.CalibrationResult {
	result := types.CalibrationResult{PerSample: make([]types.SampleCorrelation, 0, len(samples))}
	var sumReal, sumSpoof float64

	for i, s := range samples {
		t := temporal[i]
		result.PerSample = append(result.PerSample, types.SampleCorrelation{
			Label:              s.Label,
			AverageCorrelation: t.AverageCorrelation,
			FramesUsed:         t.FramesUsed,
		})
		if t.InsufficientFrames {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("sample %d (%s) has fewer than 2 usable frames; its neutral correlation biases the %s mean upward", i, s.Label, s.Label))
		}
		switch s.Label {
		case types.LabelReal:
			sumReal += t.AverageCorrelation
			result.RealCount++
		case types.LabelSpoof:
			sumSpoof += t.AverageCorrelation
			result.SpoofCount++
		}
	}

	if result.RealCount > 0 {
		m := sumReal / float64(result.RealCount)
		result.MeanReal = &m
	}
	if result.SpoofCount > 0 {
		m := sumSpoof / float64(result.SpoofCount)
		result.MeanSpoof = &m
	}

	if result.MeanReal != nil && result.MeanSpoof != nil {
		threshold := (*result.MeanReal + *result.MeanSpoof) / 2
		result.RecommendedThreshold = &threshold
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%v: need both real and spoof samples, got %d real and %d spoof", ErrCalibrationDataIncomplete, result.RealCount, result.SpoofCount))
	}
	return result
}
