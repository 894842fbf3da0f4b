// Package recommendations assembles classification, risk, and advice into a
// single recommendation bundle for a usage snapshot.
package recommendations

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/detox/internal/risk"
	"github.com/JaimeStill/detox/internal/usage"
)

// Assessor estimates addiction risk for a profile.
type Assessor interface {
	Assess(ctx context.Context, p usage.Profile) (risk.Assessment, error)
}

// Rand picks an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Bundle is the full recommendation result for one usage snapshot.
type Bundle struct {
	ID                    uuid.UUID            `json:"id"`
	Input                 usage.Profile        `json:"input"`
	Classification        usage.Classification `json:"classification"`
	Risk                  risk.Assessment      `json:"risk"`
	Category              Category             `json:"category"`
	Suggestions           []string             `json:"suggestions"`
	TargetedTips          []string             `json:"targeted_tips"`
	Goals                 Goals                `json:"goals"`
	ReclaimableTime       int                  `json:"reclaimable_time"`
	AlternativeActivities []string             `json:"alternative_activities"`
	Encouragement         string               `json:"encouragement"`
	Insights              []string             `json:"insights"`
	GeneratedAt           time.Time            `json:"generated_at"`
}

// Engine builds recommendation bundles. It is safe for concurrent use when
// its Assessor and Rand are.
type Engine struct {
	assessor Assessor
	rng      Rand
	now      func() time.Time
	newID    func() uuid.UUID
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the source of Bundle.GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs sets the source of Bundle.ID.
func WithIDs(newID func() uuid.UUID) Option {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine creates an Engine. A nil rng draws from the math/rand/v2
// top-level source. Bundle ids default to random UUIDs and timestamps to
// the wall clock.
func NewEngine(assessor Assessor, rng Rand, logger *slog.Logger, opts ...Option) *Engine {
	if rng == nil {
		rng = globalRand{}
	}
	e := &Engine{
		assessor: assessor,
		rng:      rng,
		now:      time.Now,
		newID:    uuid.New,
		logger:   logger.With("system", "recommendations"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze parses a feature slice in canonical order and builds its bundle.
func (e *Engine) Analyze(ctx context.Context, values []float64) (*Bundle, error) {
	p, err := usage.Parse(values)
	if err != nil {
		return nil, err
	}
	return e.Build(ctx, p)
}

// Summarize parses a feature slice and renders its bundle as a text report.
func (e *Engine) Summarize(ctx context.Context, values []float64) (string, error) {
	b, err := e.Analyze(ctx, values)
	if err != nil {
		return "", err
	}
	return FormatReport(b), nil
}

// Build validates p and assembles its bundle. Validation defects are
// returned as *usage.Defect before any other work runs.
func (e *Engine) Build(ctx context.Context, p usage.Profile) (*Bundle, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var (
		classification usage.Classification
		assessment     risk.Assessment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		classification = usage.Classify(p)
		return nil
	})
	g.Go(func() error {
		a, err := e.assessor.Assess(gctx, p)
		if err != nil {
			return err
		}
		assessment = a
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	category := CategoryFor(classification.Label, assessment.Prediction)

	tips := TargetedTips(p)
	if len(tips) > MaxTargetedTips {
		tips = tips[:MaxTargetedTips]
	}

	reclaimable := ReclaimableTime(p, classification.Label, assessment.Prediction)

	b := &Bundle{
		ID:                    e.newID(),
		Input:                 p,
		Classification:        classification,
		Risk:                  assessment,
		Category:              category,
		Suggestions:           Suggestions(category),
		TargetedTips:          tips,
		Goals:                 PlanGoals(p, classification.Label),
		ReclaimableTime:       reclaimable,
		AlternativeActivities: AlternativeActivities(reclaimable),
		Encouragement:         e.encouragement(category),
		Insights:              usage.Insights(p),
		GeneratedAt:           e.now().UTC(),
	}

	e.logger.DebugContext(ctx, "bundle built",
		"id", b.ID,
		"tier", classification.Label,
		"score", classification.Score,
		"category", category,
		"risk_level", assessment.Level,
	)

	return b, nil
}

func (e *Engine) encouragement(c Category) string {
	pool := pools[c].encouragement
	return pool[e.rng.IntN(len(pool))]
}
