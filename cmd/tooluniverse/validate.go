package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/June01/ToolUniverse/internal/evaluate"
	"github.com/June01/ToolUniverse/internal/extract"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a function call against the tool catalog",
		Long: `Validate a function call against its declared signature. The input
may be a bare call JSON or raw model output in any supported dialect;
the tool is resolved by name from --tools.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			input, err := readInput(path)
			if err != nil {
				return err
			}

			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			call, _ := newExtractor(cmd).Extract(extract.FromText(input))
			if call == nil {
				return fmt.Errorf("no function call found in input")
			}

			return printVerdict(evaluate.EvaluateFromRegistry(registry, *call))
		},
	}

	cmd.Flags().Bool("reasoning", false, "Use the reasoning-model dialect order (<think>/<tool_call>)")
	cmd.Flags().Bool("repair", false, "Attempt JSON repair on malformed payloads")
	return cmd
}
