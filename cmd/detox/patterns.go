package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/detox/internal/usage"
)

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Print the reference usage pattern for each tier",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			writePatterns(cmd.OutOrStdout())
		},
	}
}

func writePatterns(out io.Writer) {
	patterns := usage.ReferencePatterns()

	fmt.Fprintln(out, "\nREFERENCE USAGE PATTERNS:")
	for _, tier := range usage.Tiers() {
		p := patterns[tier]
		c := usage.Classify(p)
		fmt.Fprintf(out, "   %-9s %s (score %s)\n", tier.String()+":", formatInput(p), usage.FormatNumber(c.Score))
	}
}
