package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/detox/internal/recommendations"
	"github.com/JaimeStill/detox/internal/usage"
)

// Output modes for the run command.
const (
	modeQuick    = "quick"
	modeDetailed = "detailed"
	modeReport   = "report"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type runOptions struct {
	mode   string
	format string
	user   []float64
	seed   uint64
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Analyze the sample users or a custom snapshot",
		Long: "Analyze the four reference sample users, or a single snapshot given with --user\n" +
			"in the order screen_time, session_duration, app_switches, night_activity.",
		Example: "  detox run --mode detailed\n  detox run --user 400,35,60,50 --mode report",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}

			s, err := root.open(cmd.Context(), opts.seed)
			if err != nil {
				return err
			}
			defer s.close()

			return opts.run(cmd, s.engine)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", modeQuick, "Output mode (quick, detailed, report)")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "Output format (text, json)")
	cmd.Flags().Float64SliceVar(&opts.user, "user", nil, "Custom usage: SCREEN,SESSION,SWITCHES,NIGHT")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for encouragement selection (0 draws randomly)")
	return cmd
}

func (o *runOptions) validate() error {
	switch o.mode {
	case modeQuick, modeDetailed, modeReport:
	default:
		return fmt.Errorf("unknown mode %q: use quick, detailed, or report", o.mode)
	}
	switch o.format {
	case formatText, formatJSON:
	default:
		return fmt.Errorf("unknown format %q: use text or json", o.format)
	}
	return nil
}

func (o *runOptions) run(cmd *cobra.Command, engine *recommendations.Engine) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	if o.user != nil {
		b, err := engine.Analyze(ctx, o.user)
		if err != nil {
			return describe(err)
		}
		if o.format == formatJSON {
			return writeJSON(out, b)
		}
		fmt.Fprintf(out, "\n%s\nCUSTOM USER INPUT\n%s\n", rule('='), rule('='))
		o.render(out, "Custom user", b)
		return nil
	}

	samples := usage.Samples()
	if o.format == formatJSON {
		results := make([]sampleBundle, 0, len(samples))
		for _, sample := range samples {
			b, err := engine.Build(ctx, sample.Profile)
			if err != nil {
				return describe(err)
			}
			results = append(results, sampleBundle{Description: sample.Description, Bundle: b})
		}
		return writeJSON(out, results)
	}

	fmt.Fprintf(out, "\n%s\nDIGITAL DETOX ANALYSIS\n%s\n", rule('='), rule('='))
	writePatterns(out)
	fmt.Fprintf(out, "\n--- %s MODE ---\n", strings.ToUpper(o.mode))

	for _, sample := range samples {
		b, err := engine.Build(ctx, sample.Profile)
		if err != nil {
			return describe(err)
		}
		o.render(out, sample.Description, b)
	}

	fmt.Fprintln(out, "\nAnalysis completed.")
	return nil
}

func (o *runOptions) render(out io.Writer, description string, b *recommendations.Bundle) {
	switch o.mode {
	case modeQuick:
		writeQuick(out, b)
	case modeDetailed:
		fmt.Fprintf(out, "\n%s\n", recommendations.FormatReport(b))
	case modeReport:
		fmt.Fprintf(out, "\n%s\n# %s\n# Input: %s\n%s\n", rule('#'), description, formatInput(b.Input), rule('#'))
		fmt.Fprint(out, recommendations.FormatReport(b))
	}
}

type sampleBundle struct {
	Description string                  `json:"description"`
	Bundle      *recommendations.Bundle `json:"bundle"`
}

func writeQuick(out io.Writer, b *recommendations.Bundle) {
	c := b.Classification
	parts := make([]string, 0, len(usage.FeatureNames()))
	for _, name := range usage.FeatureNames() {
		parts = append(parts, fmt.Sprintf("%s=%s", name, usage.FormatNumber(c.Breakdown[name])))
	}

	fmt.Fprintf(out, "\n--- User: %s ---\n", formatInput(b.Input))
	fmt.Fprintf(out, "Classification: %s\n", strings.ToUpper(c.Label.String()))
	fmt.Fprintf(out, "   Score: %s (%s)\n", usage.FormatNumber(c.Score), strings.Join(parts, ", "))
	fmt.Fprintf(out, "Prediction: %s (probability=%s, risk=%s)\n",
		b.Risk.Status(), usage.FormatNumber(b.Risk.Probability), b.Risk.Level)
	fmt.Fprintln(out, "Top Recommendations:")
	for i, s := range b.Suggestions {
		fmt.Fprintf(out, "   %d. %s\n", i+1, s)
	}
	fmt.Fprintln(out, rule('-'))
}

func formatInput(p usage.Profile) string {
	values := p.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = usage.FormatNumber(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func rule(c rune) string {
	return strings.Repeat(string(c), 70)
}

// describe renders validation defects with their suggestion.
func describe(err error) error {
	if d, ok := usage.AsDefect(err); ok {
		return fmt.Errorf("%s\nSuggestion: %s", d.Message, d.Suggestion)
	}
	return err
}
