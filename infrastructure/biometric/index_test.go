package biometric

import (
	"context"
	"testing"

	"facegate.io/infrastructure/biometric/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineValidatesConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Scoring.MoireWeight = 0.5

	_, err := NewEngine(cfg)
	assert.Error(t, err)

	engine, err := NewEngine(DefaultEngineConfig())
	require.NoError(t, err)
	assert.Equal(t, DefaultEngineConfig(), engine.Config())
}

func TestAnalyzeSessionStaticBurstVetoes(t *testing.T) {
	engine, err := NewEngine(DefaultEngineConfig())
	require.NoError(t, err)

	primary := texturedImage(160, 120, 4, 40)
	// threshold 0 guarantees the single frame passes on its own
	result, err := engine.AnalyzeSession(context.Background(), primary, identicalBurst(4, 4), 0, engine.Config().Temporal.StaticThreshold)
	require.NoError(t, err)

	assert.True(t, result.Temporal.IsStatic)
	assert.False(t, result.IsReal)
	assert.NotEmpty(t, result.Reasons)
}

func TestAnalyzeSessionWithoutBurstKeepsSingleFrameVerdict(t *testing.T) {
	engine, err := NewEngine(DefaultEngineConfig())
	require.NoError(t, err)

	primary := texturedImage(160, 120, 4, 40)
	result, err := engine.AnalyzeSession(context.Background(), primary, nil, 0, 0.96)
	require.NoError(t, err)

	assert.True(t, result.Temporal.InsufficientFrames)
	assert.Equal(t, result.Spoof.IsReal, result.IsReal)
	assert.Contains(t, result.Reasons, "temporal check skipped: fewer than 2 usable frames")
}

func TestAnalyzeImageRejectsInvalidBuffer(t *testing.T) {
	engine, err := NewEngine(DefaultEngineConfig())
	require.NoError(t, err)

	_, err = engine.AnalyzeImage(context.Background(), &ImageBuffer{Width: 3, Height: 3}, DefaultThreshold)
	assert.ErrorIs(t, err, ErrInvalidImageBuffer)
}

func TestAnalyzeImageCheckerboard(t *testing.T) {
	engine, err := NewEngine(DefaultEngineConfig())
	require.NoError(t, err)

	result, err := engine.AnalyzeImage(context.Background(), checkerboard(128, 128, 4), DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, types.PrintedPhotoOrScreen, result.SpoofType)
	assert.InDelta(t, 100.0, result.Details.MoireScore, 1e-9)
}
