package liveness_usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	"facegate.io/entities"
	"facegate.io/infrastructure/biometric"
	"facegate.io/infrastructure/database/repository/mongo"
	mq_types "facegate.io/infrastructure/message_queue/types"
	"facegate.io/infrastructure/workerpool"
)

// texturedPNG returns a base64 PNG of a gradient with seeded noise.
func texturedPNG(t *testing.T, w, h int, seed int64) string {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 60 + (x*120)/w + rng.Intn(81) - 40
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			img.Set(x, y, color.RGBA{R: uint8(v), G: uint8(v * 9 / 10), B: uint8(v * 8 / 10), A: 255})
		}
	}
	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(out.Bytes())
}

func repeat(frame string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = frame
	}
	return out
}

func noisyFrames(t *testing.T, n int, seed int64) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = texturedPNG(t, 96, 72, seed+int64(i)*7919)
	}
	return out
}

type memoryRunStore struct {
	mu        sync.Mutex
	runs      map[string]entities.CalibrationRun
	err       error
	updateErr error
}

func newMemoryRunStore() *memoryRunStore {
	return &memoryRunStore{runs: map[string]entities.CalibrationRun{}}
}

func (s *memoryRunStore) CreateOne(_ context.Context, payload entities.CalibrationRun) (*entities.CalibrationRun, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	parsed := payload.ParseModel().(*entities.CalibrationRun)
	s.runs[parsed.ID] = *parsed
	return parsed, nil
}

func (s *memoryRunStore) FindByID(_ context.Context, id string) (*entities.CalibrationRun, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, nil
	}
	return &run, nil
}

// FindMany filters on status only and always sorts newest first.
func (s *memoryRunStore) FindMany(_ context.Context, filter map[string]interface{}, opts *mongo.FindOptions) (*[]entities.CalibrationRun, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	runs := []entities.CalibrationRun{}
	for _, run := range s.runs {
		if status, ok := filter["status"]; ok && string(run.Status) != status {
			continue
		}
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].CreatedAt.After(runs[j].CreatedAt) })
	if opts != nil && opts.Limit != nil && int64(len(runs)) > *opts.Limit {
		runs = runs[:*opts.Limit]
	}
	return &runs, nil
}

func (s *memoryRunStore) UpdatePartialByID(_ context.Context, id string, payload map[string]interface{}) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.updateErr != nil {
		return 0, s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return 0, nil
	}
	if status, ok := payload["status"].(entities.CalibrationRunStatus); ok {
		run.Status = status
	}
	if applied, ok := payload["applied"].(bool); ok {
		run.Applied = applied
	}
	if recommended, ok := payload["recommendedThreshold"].(*float64); ok {
		run.RecommendedThreshold = recommended
	}
	if errMsg, ok := payload["error"].(*string); ok {
		run.Error = errMsg
	}
	s.runs[id] = run
	return 1, nil
}

type memoryThresholdStore struct {
	value *float64
	saves int
	err   error
}

func (s *memoryThresholdStore) Save(_ context.Context, threshold float64) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	s.value = &threshold
	return nil
}

func (s *memoryThresholdStore) Load(_ context.Context) (*float64, error) {
	return s.value, s.err
}

func (s *memoryThresholdStore) Clear(_ context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.value = nil
	return nil
}

type recordingQueue struct {
	ready      bool
	tasks      []mq_types.QueueTask
	enqueueErr error
}

func (q *recordingQueue) Start(map[mq_types.Queues]mq_types.TaskHandler) error { return nil }
func (q *recordingQueue) Ready() bool                                         { return q.ready }
func (q *recordingQueue) Shutdown()                                           {}
func (q *recordingQueue) Enqueue(task mq_types.QueueTask) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.tasks = append(q.tasks, task)
	return nil
}

type fixture struct {
	runs       *memoryRunStore
	thresholds *memoryThresholdStore
	queue      *recordingQueue
}

// withFixture points the usecases at in-memory backends and a real engine
// for the duration of the test.
func withFixture(t *testing.T) *fixture {
	t.Helper()
	e, err := biometric.NewEngine(biometric.DefaultEngineConfig())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	f := &fixture{
		runs:       newMemoryRunStore(),
		thresholds: &memoryThresholdStore{},
		queue:      &recordingQueue{ready: true},
	}

	prevRuns, prevThresholds, prevQueue, prevEngine, prevPool, prevTimeout := runStore, thresholdStore, taskQueue, engine, analysisPool, timeout
	runStore = func() RunStore { return f.runs }
	thresholdStore = func() ThresholdStore { return f.thresholds }
	taskQueue = func() mq_types.TaskQueueBroker { return f.queue }
	engine = func() biometric.LivenessEngine { return e }
	analysisPool = func() *workerpool.Pool { return nil }
	timeout = func() time.Duration { return 30 * time.Second }
	t.Cleanup(func() {
		runStore, thresholdStore, taskQueue, engine, analysisPool, timeout = prevRuns, prevThresholds, prevQueue, prevEngine, prevPool, prevTimeout
	})
	return f
}
