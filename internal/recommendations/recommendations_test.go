package recommendations_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/detox/internal/recommendations"
	"github.com/JaimeStill/detox/internal/risk"
	"github.com/JaimeStill/detox/internal/usage"
	"github.com/JaimeStill/detox/pkg/model"
)

type stubAssessor struct {
	assessFn func(ctx context.Context, p usage.Profile) (risk.Assessment, error)
	calls    int
}

func (s *stubAssessor) Assess(ctx context.Context, p usage.Profile) (risk.Assessment, error) {
	s.calls++
	return s.assessFn(ctx, p)
}

func assessing(prediction bool, probability float64) *stubAssessor {
	return &stubAssessor{
		assessFn: func(context.Context, usage.Profile) (risk.Assessment, error) {
			return risk.Assessment{
				Prediction:    prediction,
				Probability:   probability,
				Probabilities: risk.Probabilities{Healthy: usage.Round2(1 - probability), Addicted: probability},
				Level:         risk.LevelFor(probability),
			}, nil
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func countOf(s []string, v string) int {
	n := 0
	for _, x := range s {
		if x == v {
			n++
		}
	}
	return n
}

func TestTargetedTipsScenario(t *testing.T) {
	p := usage.Profile{ScreenTime: 400, SessionDuration: 35, AppSwitches: 60, NightActivity: 50}
	tips := recommendations.TargetedTips(p)

	want := []string{
		"Set a daily screen-time limit in your phone's wellbeing settings.",
		"Move distracting apps off your home screen.",
		"Stop using screens 30 minutes before bed.",
	}
	for _, w := range want {
		if !slices.Contains(tips, w) {
			t.Errorf("tips missing %q: %v", w, tips)
		}
	}

	if n := countOf(tips, "Turn off non-essential notifications."); n != 1 {
		t.Errorf("shared tip appears %d times, want 1", n)
	}
}

func TestTargetedTipsNoDuplicates(t *testing.T) {
	profiles := []usage.Profile{
		{ScreenTime: 1000, SessionDuration: 100, AppSwitches: 100, NightActivity: 200},
		{ScreenTime: 200, SessionDuration: 30, AppSwitches: 40, NightActivity: 40},
		{ScreenTime: 300, SessionDuration: 25, AppSwitches: 50, NightActivity: 60},
	}

	for _, p := range profiles {
		tips := recommendations.TargetedTips(p)
		seen := map[string]bool{}
		for _, tip := range tips {
			if seen[tip] {
				t.Errorf("%v: duplicate tip %q", p.Values(), tip)
			}
			seen[tip] = true
		}
	}
}

func TestTargetedTipsThresholds(t *testing.T) {
	tests := []struct {
		name    string
		profile usage.Profile
		count   int
	}{
		{"all below moderate", usage.Profile{ScreenTime: 179, SessionDuration: 24, AppSwitches: 34, NightActivity: 29}, 0},
		{"screen moderate", usage.Profile{ScreenTime: 180, NightActivity: 10}, 1},
		{"screen high", usage.Profile{ScreenTime: 300, NightActivity: 10}, 2},
		{"session moderate", usage.Profile{ScreenTime: 100, SessionDuration: 25}, 1},
		{"night high", usage.Profile{ScreenTime: 100, NightActivity: 60}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recommendations.TargetedTips(tt.profile); len(got) != tt.count {
				t.Errorf("tips = %v, want %d", got, tt.count)
			}
		})
	}
}

func TestPlanGoals(t *testing.T) {
	p := usage.Profile{ScreenTime: 400, SessionDuration: 35, AppSwitches: 60, NightActivity: 50}
	goals := recommendations.PlanGoals(p, usage.TierModerate)

	short := strings.Join(goals.ShortTerm, "\n")
	if !strings.Contains(short, "from 400 to 360 minutes") {
		t.Errorf("short-term goals missing screen target: %v", goals.ShortTerm)
	}
	if !strings.Contains(short, "to 25 minutes (currently 50)") {
		t.Errorf("short-term goals missing night target: %v", goals.ShortTerm)
	}

	long := strings.Join(goals.LongTerm, "\n")
	if !strings.Contains(long, "324 minutes or less for 2 weeks") {
		t.Errorf("long-term goals missing sustain target: %v", goals.LongTerm)
	}
	if len(goals.LongTerm) != 3 {
		t.Errorf("long-term goals = %d, want 3", len(goals.LongTerm))
	}
}

func TestPlanGoalsMaintenance(t *testing.T) {
	goals := recommendations.PlanGoals(usage.Profile{ScreenTime: 29, NightActivity: 5}, usage.TierLight)
	for _, g := range append(goals.ShortTerm, goals.LongTerm...) {
		if strings.Contains(g, "Reduce") {
			t.Errorf("maintenance goals should not reduce: %q", g)
		}
	}
	if len(goals.ShortTerm) == 0 || len(goals.LongTerm) == 0 {
		t.Error("maintenance goals empty")
	}
}

func TestGoalTargets(t *testing.T) {
	tests := []struct {
		name   string
		screen float64
		tier   usage.Tier
		want   int
	}{
		{"heavy", 600, usage.TierHeavy, 510},
		{"moderate", 400, usage.TierModerate, 360},
		{"light", 200, usage.TierLight, 190},
		{"floor", 50, usage.TierLight, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recommendations.TargetScreenTime(tt.screen, tt.tier); got != tt.want {
				t.Errorf("TargetScreenTime(%v) = %d, want %d", tt.screen, got, tt.want)
			}
		})
	}

	nights := []struct {
		night float64
		want  int
	}{
		{45, 22},
		{47, 24},
		{20, 15},
		{100, 50},
	}

	for _, tt := range nights {
		if got := recommendations.TargetNightActivity(tt.night); got != tt.want {
			t.Errorf("TargetNightActivity(%v) = %d, want %d", tt.night, got, tt.want)
		}
	}
}

func TestReclaimableTime(t *testing.T) {
	tests := []struct {
		name     string
		profile  usage.Profile
		tier     usage.Tier
		addicted bool
		want     int
	}{
		{"light healthy", usage.Profile{ScreenTime: 120}, usage.TierLight, false, 30},
		{"moderate", usage.Profile{ScreenTime: 400}, usage.TierModerate, false, 60},
		{"heavy", usage.Profile{ScreenTime: 500}, usage.TierHeavy, false, 75},
		{"light addicted floor", usage.Profile{ScreenTime: 50}, usage.TierLight, true, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recommendations.ReclaimableTime(tt.profile, tt.tier, tt.addicted); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAlternativeActivities(t *testing.T) {
	buckets := [][]int{{0, 14}, {15, 29}, {30, 59}, {60, 1000}}

	var previous []string
	for _, bucket := range buckets {
		low := recommendations.AlternativeActivities(bucket[0])
		high := recommendations.AlternativeActivities(bucket[1])

		if !reflect.DeepEqual(low, high) {
			t.Errorf("bucket %v: %v != %v", bucket, low, high)
		}
		if len(low) == 0 || len(low) > recommendations.MaxActivities {
			t.Errorf("bucket %v: %d activities", bucket, len(low))
		}
		if reflect.DeepEqual(low, previous) {
			t.Errorf("bucket %v repeats the previous bucket", bucket)
		}
		previous = low
	}
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		tier     usage.Tier
		addicted bool
		want     recommendations.Category
	}{
		{usage.TierLight, false, recommendations.CategoryLight},
		{usage.TierModerate, false, recommendations.CategoryModerate},
		{usage.TierHeavy, false, recommendations.CategoryHeavy},
		{usage.TierLight, true, recommendations.CategoryAddicted},
		{usage.TierHeavy, true, recommendations.CategoryAddicted},
	}

	for _, tt := range tests {
		if got := recommendations.CategoryFor(tt.tier, tt.addicted); got != tt.want {
			t.Errorf("CategoryFor(%s, %v) = %s, want %s", tt.tier, tt.addicted, got, tt.want)
		}
	}
}

func TestBuildDefects(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		kind   usage.DefectKind
	}{
		{"arity", []float64{1, 2, 3}, usage.DefectArityMismatch},
		{"zero usage", []float64{0, 0, 0, 0}, usage.DefectZeroUsage},
		{"negative", []float64{100, -1, 5, 5}, usage.DefectNegativeValues},
		{"unrealistic", []float64{1500, 20, 10, 5}, usage.DefectUnrealisticScreenTime},
		{"night exceeds screen", []float64{100, 10, 5, 150}, usage.DefectInvalidNightActivity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assessor := assessing(false, 0.1)
			e := recommendations.NewEngine(assessor, seeded(), discardLogger())

			b, err := e.Analyze(context.Background(), tt.values)
			if b != nil {
				t.Error("bundle should be nil on defect")
			}
			d, ok := usage.AsDefect(err)
			if !ok {
				t.Fatalf("err = %v, want defect", err)
			}
			if d.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", d.Kind, tt.kind)
			}
			if assessor.calls != 0 {
				t.Errorf("assessor called %d times after defect", assessor.calls)
			}
		})
	}
}

func TestBuildLightUser(t *testing.T) {
	e := recommendations.NewEngine(assessing(false, 0.05), seeded(), discardLogger())

	b, err := e.Analyze(context.Background(), []float64{120, 10, 15, 5})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if b.Classification.Label != usage.TierLight {
		t.Errorf("label = %s, want light", b.Classification.Label)
	}
	if b.Classification.Score != 65.5 {
		t.Errorf("score = %v, want 65.5", b.Classification.Score)
	}
	if b.Category != recommendations.CategoryLight {
		t.Errorf("category = %s", b.Category)
	}
	if !reflect.DeepEqual(b.Suggestions, recommendations.Suggestions(recommendations.CategoryLight)) {
		t.Errorf("suggestions = %v", b.Suggestions)
	}
	if !slices.Contains(recommendations.Encouragements(recommendations.CategoryLight), b.Encouragement) {
		t.Errorf("encouragement %q not in light pool", b.Encouragement)
	}
	if b.ReclaimableTime != recommendations.DefaultReclaimable {
		t.Errorf("reclaimable = %d", b.ReclaimableTime)
	}
	if len(b.TargetedTips) != 0 {
		t.Errorf("targeted tips = %v, want none", b.TargetedTips)
	}
	if b.ID == uuid.Nil {
		t.Error("bundle id not set")
	}
	if b.GeneratedAt.IsZero() {
		t.Error("generated_at not set")
	}
}

func TestBuildAddictedOverridesTier(t *testing.T) {
	e := recommendations.NewEngine(assessing(true, 0.72), seeded(), discardLogger())

	b, err := e.Analyze(context.Background(), []float64{400, 35, 60, 50})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if b.Classification.Label != usage.TierModerate || b.Classification.Score != 224 {
		t.Errorf("classification = %+v", b.Classification)
	}
	if b.Category != recommendations.CategoryAddicted {
		t.Errorf("category = %s, want addicted", b.Category)
	}
	if !reflect.DeepEqual(b.Suggestions, recommendations.Suggestions(recommendations.CategoryAddicted)) {
		t.Errorf("suggestions = %v", b.Suggestions)
	}
	if !slices.Contains(recommendations.Encouragements(recommendations.CategoryAddicted), b.Encouragement) {
		t.Errorf("encouragement %q not in addicted pool", b.Encouragement)
	}
	if len(b.TargetedTips) != recommendations.MaxTargetedTips {
		t.Errorf("targeted tips = %d, want %d", len(b.TargetedTips), recommendations.MaxTargetedTips)
	}
	if len(b.AlternativeActivities) > recommendations.MaxActivities {
		t.Errorf("activities = %d", len(b.AlternativeActivities))
	}
	if b.ReclaimableTime != 60 {
		t.Errorf("reclaimable = %d, want 60", b.ReclaimableTime)
	}
}

func TestBuildIdempotent(t *testing.T) {
	p := usage.Profile{ScreenTime: 400, SessionDuration: 35, AppSwitches: 60, NightActivity: 50}

	id := uuid.MustParse("6f1c2d3e-4b5a-4c6d-8e7f-102132435465")
	at := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	build := func() *recommendations.Bundle {
		e := recommendations.NewEngine(assessing(false, 0.3), seeded(), discardLogger(),
			recommendations.WithIDs(func() uuid.UUID { return id }),
			recommendations.WithClock(func() time.Time { return at }),
		)
		b, err := e.Build(context.Background(), p)
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		return b
	}

	first, second := build(), build()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("bundles differ:\n%+v\n%+v", first, second)
	}
	if first.ID != id || !first.GeneratedAt.Equal(at) {
		t.Errorf("id/generated_at = %s/%s, want %s/%s", first.ID, first.GeneratedAt, id, at)
	}
}

func TestBuildDefaultStamps(t *testing.T) {
	e := recommendations.NewEngine(assessing(false, 0.3), seeded(), discardLogger())
	p := usage.Profile{ScreenTime: 240, SessionDuration: 20, AppSwitches: 30, NightActivity: 20}

	first, err := e.Build(context.Background(), p)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	second, err := e.Build(context.Background(), p)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if first.ID == uuid.Nil || first.ID == second.ID {
		t.Errorf("ids = %s, %s: want distinct non-nil", first.ID, second.ID)
	}
	if first.GeneratedAt.IsZero() {
		t.Error("generated_at not set")
	}
}

func TestBuildAssessorError(t *testing.T) {
	boom := errors.New("boom")
	e := recommendations.NewEngine(&stubAssessor{
		assessFn: func(context.Context, usage.Profile) (risk.Assessment, error) {
			return risk.Assessment{}, boom
		},
	}, nil, discardLogger())

	if _, err := e.Analyze(context.Background(), []float64{200, 20, 20, 20}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestBundleJSON(t *testing.T) {
	e := recommendations.NewEngine(assessing(false, 0.55), seeded(), discardLogger())
	b, err := e.Analyze(context.Background(), []float64{240, 20, 30, 20})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{
		"id", "classification", "risk", "suggestions", "targeted_tips", "goals",
		"reclaimable_time", "alternative_activities", "encouragement", "insights", "generated_at",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("bundle json missing %q", key)
		}
	}

	if decoded["category"] != "light" {
		t.Errorf("category = %v", decoded["category"])
	}
	riskJSON := decoded["risk"].(map[string]any)
	if riskJSON["risk_level"] != "MODERATE" {
		t.Errorf("risk_level = %v", riskJSON["risk_level"])
	}
}

func TestFormatReportSectionOrder(t *testing.T) {
	e := recommendations.NewEngine(assessing(true, 0.72), seeded(), discardLogger())

	report, err := e.Summarize(context.Background(), []float64{400, 35, 60, 50})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	sections := []string{
		recommendations.SectionClassification,
		recommendations.SectionRisk,
		recommendations.SectionInsights,
		recommendations.SectionGoals,
		recommendations.SectionRecommendation,
		recommendations.SectionTips,
		recommendations.SectionActivities,
		recommendations.SectionEncouragement,
	}

	last := -1
	for _, s := range sections {
		idx := strings.Index(report, s)
		if idx < 0 {
			t.Fatalf("report missing section %q", s)
		}
		if idx <= last {
			t.Errorf("section %q out of order", s)
		}
		last = idx
	}

	for _, want := range []string{
		"Overall Score: 224/500",
		"Category: MODERATE",
		"Status: ADDICTED",
		"Risk Level: HIGH",
		"Probability: 72.0%",
		"(60 minutes available)",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestFormatReportNoTips(t *testing.T) {
	e := recommendations.NewEngine(assessing(false, 0.05), seeded(), discardLogger())

	report, err := e.Summarize(context.Background(), []float64{120, 10, 15, 5})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !strings.Contains(report, "No targeted tips") {
		t.Error("report should note the absence of targeted tips")
	}
}

func TestSamplesWithDefaultModel(t *testing.T) {
	handle := model.NewHandle(model.EmbeddedSource(), discardLogger())
	e := recommendations.NewEngine(risk.New(handle, nil, discardLogger()), seeded(), discardLogger())

	for _, s := range usage.Samples() {
		t.Run(s.Description, func(t *testing.T) {
			b, err := e.Build(context.Background(), s.Profile)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			sum := b.Risk.Probabilities.Healthy + b.Risk.Probabilities.Addicted
			if sum < 0.99 || sum > 1.01 {
				t.Errorf("probabilities sum = %v", sum)
			}
			if len(b.Suggestions) != recommendations.SuggestionCount {
				t.Errorf("suggestions = %d", len(b.Suggestions))
			}
		})
	}
}
