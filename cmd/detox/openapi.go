package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/detox/internal/analysis"
	"github.com/JaimeStill/detox/internal/api"
	"github.com/JaimeStill/detox/pkg/openapi"
)

func newOpenAPICmd(root *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Write the API's OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			routes := analysis.NewHandler(nil, root.logger(), int64(cfg.API.MaxBodySize)).Routes()
			spec := api.Spec(cfg, routes)

			if out == "" {
				data, err := openapi.MarshalJSON(spec)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if err := openapi.WriteJSON(spec, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (defaults to stdout)")
	return cmd
}
