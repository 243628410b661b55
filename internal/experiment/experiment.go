package experiment

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/blobline/internal/blob"
	"github.com/san-kum/blobline/internal/config"
	"github.com/san-kum/blobline/internal/factory"
	"github.com/san-kum/blobline/internal/metrics"
	"github.com/san-kum/blobline/internal/sequencer"
)

// Experiment owns the single random source for a run. Population and
// simulation both draw from it, so one seed reproduces the whole output.
type Experiment struct {
	cfg        config.Config
	randSource *rand.Rand
	space      *blob.Space
	sequencer  *sequencer.Sequencer
}

func New(cfg config.Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Seed resets the random source. Call it before Setup.
func (e *Experiment) Seed(seed int64) {
	e.cfg.Seed = seed
	e.randSource.Seed(seed)
}

// Setup validates the config, builds the space and fills it with random
// blobs.
func (e *Experiment) Setup(extra ...metrics.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	space, err := blob.NewSpace(e.cfg.SpaceWidth, e.cfg.Background.Color())
	if err != nil {
		return err
	}
	if err := factory.Populate(e.randSource, space, e.cfg.NumBlobs, e.cfg.Ranges()); err != nil {
		return err
	}

	e.space = space
	e.sequencer = sequencer.New(space, e.randSource)
	for _, m := range metrics.Defaults() {
		e.sequencer.AddMetric(m)
	}
	for _, m := range extra {
		e.sequencer.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run() (*sequencer.Result, error) {
	if e.sequencer == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.sequencer.Generate(e.cfg.FrameCount, e.cfg.NoiseAmount)
}

// Stream is the video variant of Run.
func (e *Experiment) Stream(sink sequencer.FrameSink) (map[string]float64, error) {
	if e.sequencer == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.sequencer.Stream(e.cfg.FrameCount, e.cfg.NoiseAmount, e.cfg.Output.Height, sink)
}

func (e *Experiment) Config() config.Config           { return e.cfg }
func (e *Experiment) Space() *blob.Space              { return e.space }
func (e *Experiment) Sequencer() *sequencer.Sequencer { return e.sequencer }
