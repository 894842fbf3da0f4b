package risk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/JaimeStill/detox/internal/usage"
	"github.com/JaimeStill/detox/pkg/cache"
	"github.com/JaimeStill/detox/pkg/model"
)

// MinScreenTime is the daily screen time below which no inference is attempted.
const MinScreenTime = 30.0

// Edge-case and warning notes.
const (
	NoteZeroUsage         = "No usage recorded; there is not enough signal to estimate risk."
	NoteLowScreenTime     = "Screen time is under 30 minutes; there is not enough signal to estimate risk."
	NoteUnrealistic       = "Screen time exceeds 1440 minutes; the estimate may be unreliable."
	NoteNightExceedsTotal = "Night activity exceeds total screen time; the estimate may be unreliable."
	noteInferenceFailed   = "Model inference failed (%s); returning a conservative default."
)

// Assessor produces risk assessments from a shared classifier.
type Assessor struct {
	clf    model.Classifier
	cache  cache.System
	logger *slog.Logger
}

// New creates an Assessor. cache may be nil to disable memoization.
func New(clf model.Classifier, c cache.System, logger *slog.Logger) *Assessor {
	return &Assessor{
		clf:    clf,
		cache:  c,
		logger: logger.With("system", "risk"),
	}
}

// Assess estimates the addiction risk of p. The only error it returns is a
// NegativeValues defect; model faults are absorbed into a conservative
// assessment carrying a note.
func (a *Assessor) Assess(ctx context.Context, p usage.Profile) (Assessment, error) {
	if p.IsZero() {
		return conservative(NoteZeroUsage), nil
	}
	if p.HasNegative() {
		return Assessment{}, usage.NewDefect(usage.DefectNegativeValues)
	}
	if p.ScreenTime < MinScreenTime {
		return conservative(NoteLowScreenTime), nil
	}

	var warnings []string
	if p.ScreenTime > usage.MaxScreenTime {
		warnings = append(warnings, NoteUnrealistic)
	}
	if p.NightActivity > p.ScreenTime {
		warnings = append(warnings, NoteNightExceedsTotal)
	}

	assessment, err := a.cachedInfer(ctx, p)
	if err != nil {
		a.logger.WarnContext(ctx, "model inference failed", "error", err, "features", p.Values())
		warnings = append([]string{fmt.Sprintf(noteInferenceFailed, err)}, warnings...)
		return conservative(strings.Join(warnings, " ")), nil
	}

	assessment.Note = strings.Join(warnings, " ")
	return assessment, nil
}

func (a *Assessor) cachedInfer(ctx context.Context, p usage.Profile) (Assessment, error) {
	if a.cache == nil {
		return a.infer(p)
	}

	key := a.cacheKey(p)
	if data, ok, err := a.cache.Get(ctx, key); err != nil {
		a.logger.WarnContext(ctx, "risk cache read failed", "key", key, "error", err)
	} else if ok {
		var cached Assessment
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	assessment, err := a.infer(p)
	if err != nil {
		return Assessment{}, err
	}

	if data, err := json.Marshal(assessment); err == nil {
		if err := a.cache.Set(ctx, key, data); err != nil {
			a.logger.WarnContext(ctx, "risk cache write failed", "key", key, "error", err)
		}
	}

	return assessment, nil
}

func (a *Assessor) cacheKey(p usage.Profile) string {
	parts := []string{"risk", a.clf.Version()}
	for _, v := range p.Values() {
		parts = append(parts, usage.FormatNumber(v))
	}
	return a.cache.Key(parts...)
}

func (a *Assessor) infer(p usage.Profile) (assessment Assessment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panic: %v", r)
		}
	}()

	features := p.Values()

	label, err := a.clf.Predict(features)
	if err != nil {
		return Assessment{}, err
	}

	probs, err := a.clf.Probabilities(features)
	if err != nil {
		return Assessment{}, err
	}
	if len(probs) != 2 {
		return Assessment{}, fmt.Errorf("model returned %d class probabilities, want 2", len(probs))
	}

	addicted := probs[model.ClassAddicted]
	if math.IsNaN(addicted) || addicted < 0 || addicted > 1 {
		return Assessment{}, fmt.Errorf("model returned invalid probability %v", addicted)
	}

	addicted = usage.Round2(addicted)
	return Assessment{
		Prediction:  label == model.ClassAddicted,
		Probability: addicted,
		Probabilities: Probabilities{
			Healthy:  usage.Round2(1 - addicted),
			Addicted: addicted,
		},
		Level: LevelFor(addicted),
	}, nil
}
